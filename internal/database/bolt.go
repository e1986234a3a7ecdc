package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/fuelog/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketEntries = "entries" // key: ID -> FuelEntry JSON
	boltBucketMeta    = "meta"    // key: "created_at" -> RFC3339 timestamp
)

// Bolt is the bbolt-backed Store.
type Bolt struct {
	storage *bbolt.DB
	levels  LogLevels
	log     clientLogger
}

// NewBolt opens (or creates) a Bolt database at path.
func NewBolt(path string, opts Options) (*Bolt, error) {
	log := newClientLogger("bolt", opts)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	started := time.Now()

	instance, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.error("open", err, "path", path)
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketEntries)); err != nil {
			return err
		}

		meta, err := tx.CreateBucketIfNotExists([]byte(boltBucketMeta))
		if err != nil {
			return err
		}

		if meta.Get([]byte("created_at")) == nil {
			return meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339)))
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		log.error("init buckets", err)

		return nil, err
	}

	log.observe("open", started, nil, "path", path)

	return &Bolt{storage: instance, levels: opts.LogLevels, log: log}, nil
}

func (b *Bolt) Backend() string {
	return "bolt"
}

func (b *Bolt) LogLevels() LogLevels {
	return b.levels
}

func (b *Bolt) Ping() error {
	started := time.Now()

	err := b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketEntries)) == nil {
			return errors.New("entries bucket missing")
		}

		return nil
	})
	b.log.observe("ping", started, err)

	return err
}

func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) AddEntry(entry *model.FuelEntry) error {
	if entry == nil {
		return errors.New("entry is required")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	if entry.FilledAt.IsZero() {
		entry.FilledAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	started := time.Now()

	err = b.storage.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(boltBucketEntries))

		if entries.Get([]byte(entry.ID)) != nil {
			b.log.warn("overwriting existing entry", "id", entry.ID)
		}

		return entries.Put([]byte(entry.ID), data)
	})
	b.log.observe("put", started, err, "id", entry.ID)

	return err
}

func (b *Bolt) GetEntry(id string) (*model.FuelEntry, error) {
	var entry *model.FuelEntry

	started := time.Now()

	err := b.storage.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucketEntries)).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}

		entry = &model.FuelEntry{}

		return json.Unmarshal(data, entry)
	})
	if !errors.Is(err, ErrNotFound) {
		b.log.observe("get", started, err, "id", id)
	}

	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (b *Bolt) ListEntries(vehicle string) ([]model.FuelEntry, error) {
	var entries []model.FuelEntry

	started := time.Now()

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketEntries)).ForEach(func(_, v []byte) error {
			var entry model.FuelEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}

			if vehicle == "" || entry.Vehicle == vehicle {
				entries = append(entries, entry)
			}

			return nil
		})
	})
	b.log.observe("list", started, err, "vehicle", vehicle)

	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FilledAt.Before(entries[j].FilledAt)
	})

	return entries, nil
}

func (b *Bolt) RemoveEntry(id string) error {
	started := time.Now()

	err := b.storage.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(boltBucketEntries))
		if entries.Get([]byte(id)) == nil {
			return ErrNotFound
		}

		return entries.Delete([]byte(id))
	})
	if !errors.Is(err, ErrNotFound) {
		b.log.observe("delete", started, err, "id", id)
	}

	return err
}
