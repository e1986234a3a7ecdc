// Package database provides the shared database client for fuelog.
//
// The package defines the [Store] interface, implemented by a BoltDB backend
// ([Bolt]) and a SQLite backend ([SQLite]). [Open] picks the backend from the
// scheme of the configured URL (bolt://, sqlite:// or file:).
//
// # Shared Client
//
// Use [GetDB] to obtain the process-wide client:
//
//	db, err := database.GetDB()
//	if err != nil {
//	    return err
//	}
//	entries, err := db.ListEntries("")
//
// The client is built by an [Accessor] on first use and reused afterwards.
// Outside production mode the accessor also parks the client in a process
// slot keyed by [DefaultKey]. [Reload] re-creates the package-level accessor
// as a hot reload would; the new accessor finds the parked client and does not
// open a second connection. [ResetSlot] lets the host drop the parked client.
//
// The environment mode also selects the client log levels: "development"
// logs queries, warnings and errors, every other mode logs errors only.
//
// A failed construction is returned to the caller unchanged and nothing is
// cached, so the next call tries again.
package database
