// Package model defines the data structures used throughout fuelog.
//
// # FuelEntry
//
// The [FuelEntry] struct represents one refuelling stored by the database layer:
//
//	type FuelEntry struct {
//	    ID            string    // Unique identifier (UUID)
//	    Vehicle       string    // Vehicle name or plate
//	    Liters        float64   // Fuel added
//	    PricePerLiter float64   // Unit price
//	    Odometer      int64     // Odometer reading (km)
//	    Station       string    // Optional station name
//	    FilledAt      time.Time // When the refuel happened
//	}
package model
