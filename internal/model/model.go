package model

import "time"

// FuelEntry is a single refuelling record.
type FuelEntry struct {
	// ID is the unique identifier for the entry (UUID)
	ID string `json:"id"`

	// Vehicle identifies the vehicle that was refuelled
	Vehicle string `json:"vehicle"`

	// Liters is the amount of fuel added
	Liters float64 `json:"liters"`

	// PricePerLiter is the unit price paid
	PricePerLiter float64 `json:"price_per_liter"`

	// Odometer is the vehicle odometer reading in kilometres
	Odometer int64 `json:"odometer"`

	// Station is an optional free-form station name
	Station string `json:"station,omitempty"`

	// FilledAt is when the vehicle was refuelled
	FilledAt time.Time `json:"filled_at"`
}

// Total returns the amount paid for the entry.
func (e FuelEntry) Total() float64 {
	return e.Liters * e.PricePerLiter
}
