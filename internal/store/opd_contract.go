package store

import (
	"encoding/json"

	"clinic-opd-server/internal/models"
)

// CreateOpdInput is the accepted shape for creating an OPD record.
// patientName, date and gender are required; everything else is optional.
type CreateOpdInput struct {
	PatientName    string             `json:"patientName"`
	FatherName     *string            `json:"fatherName"`
	Age            *int               `json:"age"`
	Gender         string             `json:"gender"`
	DepartmentID   *int               `json:"departmentId"`
	ConsultantID   *int               `json:"consultantId"`
	ReferredBy     *string            `json:"referredBy"`
	Date           string             `json:"date"`
	CustomServices []ServiceLineInput `json:"customservice" binding:"omitempty,dive"`
	Payment        *PaymentInput      `json:"payment"`
}

// ServiceLineInput is one service line supplied on create.
type ServiceLineInput struct {
	ServiceName     string  `json:"serviceName" binding:"required"`
	ServicePrice    float64 `json:"servicePrice" binding:"min=0"`
	ServiceQuantity int     `json:"serviceQuantity" binding:"min=1"`
	TotalPrice      float64 `json:"totalPrice" binding:"min=0"`
}

// PaymentInput is the single payment supplied on create.
type PaymentInput struct {
	RcptNo string  `json:"rcptNo" binding:"required"`
	FeeRs  float64 `json:"feeRs" binding:"min=0"`
}

// Patch is a sparse update body. Key presence decides whether a field is
// applied; a key explicitly set to null is still "present".
type Patch map[string]json.RawMessage

// OpdPage is one page of filtered results. Total counts every matching
// record, not just the page slice.
type OpdPage struct {
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Results []models.OpdRecord `json:"results"`
}

// OpdRecordStore owns persistence and query logic for the OPD aggregate.
type OpdRecordStore interface {
	Create(in *CreateOpdInput) (*models.OpdRecord, error)
	FindPage(f OpdFilter) (*OpdPage, error)
	FindOne(id int) (*models.OpdRecord, error)
	Update(id int, patch Patch) (*models.OpdRecord, error)
	Remove(id int) error
}
