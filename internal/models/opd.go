package models

import (
	"time"
)

// Gender enum for OPD records
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// OpdRecord represents a single outpatient visit together with its
// billable service lines and payment detail.
type OpdRecord struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	PatientName  string    `gorm:"size:255;not null" json:"patientName"`
	FatherName   *string   `gorm:"size:255" json:"fatherName"`
	Age          *int      `json:"age"`
	Gender       Gender    `gorm:"size:10;not null" json:"gender"`
	DepartmentID *int      `json:"departmentId"`
	ConsultantID *int      `json:"consultantId"`
	ReferredBy   *string   `gorm:"size:255" json:"referredBy"`
	Date         time.Time `gorm:"not null" json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Children are lifecycle-bound to the record: the DB cascade removes
	// them when the parent row is deleted.
	CustomServices []CustomServiceLine `gorm:"foreignKey:OpdID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"customservice"`
	Payment        *PaymentDetail      `gorm:"foreignKey:OpdID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"payment"`

	// Derived on read; never stored.
	TotalPaid float64 `gorm:"-" json:"totalpaid"`
}

// ComputeTotalPaid returns the sum of the service line totals plus the
// payment fee (0 when no payment row exists).
func (r *OpdRecord) ComputeTotalPaid() float64 {
	var total float64
	for _, s := range r.CustomServices {
		total += s.TotalPrice
	}
	if r.Payment != nil {
		total += r.Payment.FeeRs
	}
	return total
}

// AttachTotalPaid refreshes the derived TotalPaid field in place.
func (r *OpdRecord) AttachTotalPaid() {
	r.TotalPaid = r.ComputeTotalPaid()
}

// CustomServiceLine is one billable service on a visit. TotalPrice is
// caller-supplied and deliberately not recomputed from price*quantity.
type CustomServiceLine struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	OpdID           int       `gorm:"index;not null" json:"-"`
	ServiceName     string    `gorm:"size:255;not null" json:"serviceName"`
	ServicePrice    float64   `gorm:"type:decimal(10,2)" json:"servicePrice"`
	ServiceQuantity int       `json:"serviceQuantity"`
	TotalPrice      float64   `gorm:"type:decimal(10,2)" json:"totalPrice"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PaymentDetail is the at-most-one payment row for a visit.
type PaymentDetail struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	OpdID     int       `gorm:"uniqueIndex;not null" json:"-"`
	RcptNo    string    `gorm:"size:100;not null" json:"rcptNo"`
	FeeRs     float64   `gorm:"type:decimal(10,2)" json:"feeRs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
