// Package mspb loads, cleans, and aggregates the CMS Medicare Spending
// per Beneficiary (MSPB) hospital-level dataset.
package mspb

// NotAvailable is the literal CMS uses for hospitals that did not
// report an MSPB score for the measurement period.
const NotAvailable = "Not Available"

// HospitalRecord is one row of the CMS spending dataset as loaded,
// before any type conversion.
type HospitalRecord struct {
	FacilityID   string
	FacilityName string
	State        string // two-letter USPS code
	Score        string // raw score text; NotAvailable when unreported
}

// ScoredHospital is a hospital whose score parsed as a number.
type ScoredHospital struct {
	FacilityID   string
	FacilityName string
	State        string
	Region       string // set by AssignRegions; empty for states outside the taxonomy
	Score        float64
}
