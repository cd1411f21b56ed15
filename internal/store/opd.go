package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"clinic-opd-server/internal/models"
)

// GormOpdStore is the gorm-backed OpdRecordStore.
type GormOpdStore struct {
	db *gorm.DB
}

var _ OpdRecordStore = (*GormOpdStore)(nil)

// NewGormOpdStore creates a new GormOpdStore.
func NewGormOpdStore(db *gorm.DB) *GormOpdStore {
	return &GormOpdStore{db: db}
}

func (in *CreateOpdInput) validate() (time.Time, error) {
	if strings.TrimSpace(in.PatientName) == "" || in.Date == "" || in.Gender == "" {
		return time.Time{}, &ValidationError{Message: "patientName, date, gender required"}
	}
	if !models.Gender(in.Gender).Valid() {
		return time.Time{}, validationErrorf("gender must be one of male, female, other")
	}
	if in.Age != nil && *in.Age < 0 {
		return time.Time{}, validationErrorf("age cannot be negative")
	}
	date, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		return time.Time{}, validationErrorf("date must be an ISO-8601 timestamp")
	}
	return date, nil
}

func (in *ServiceLineInput) validate() error {
	if strings.TrimSpace(in.ServiceName) == "" {
		return validationErrorf("customservice.serviceName cannot be empty")
	}
	if in.ServicePrice < 0 || in.TotalPrice < 0 {
		return validationErrorf("customservice prices cannot be negative")
	}
	if in.ServiceQuantity < 1 {
		return validationErrorf("customservice.serviceQuantity must be at least 1")
	}
	return nil
}

// Create persists a new OPD record together with any supplied children in
// a single transactional write and returns it with TotalPaid attached.
func (s *GormOpdStore) Create(in *CreateOpdInput) (*models.OpdRecord, error) {
	date, err := in.validate()
	if err != nil {
		return nil, err
	}

	rec := models.OpdRecord{
		PatientName:  in.PatientName,
		FatherName:   in.FatherName,
		Age:          in.Age,
		Gender:       models.Gender(in.Gender),
		DepartmentID: in.DepartmentID,
		ConsultantID: in.ConsultantID,
		ReferredBy:   in.ReferredBy,
		Date:         date,
	}

	for _, svc := range in.CustomServices {
		if err := svc.validate(); err != nil {
			return nil, err
		}
		rec.CustomServices = append(rec.CustomServices, models.CustomServiceLine{
			ServiceName:     svc.ServiceName,
			ServicePrice:    svc.ServicePrice,
			ServiceQuantity: svc.ServiceQuantity,
			TotalPrice:      svc.TotalPrice,
		})
	}

	if in.Payment != nil {
		if strings.TrimSpace(in.Payment.RcptNo) == "" {
			return nil, validationErrorf("payment.rcptNo cannot be empty")
		}
		if in.Payment.FeeRs < 0 {
			return nil, validationErrorf("payment.feeRs cannot be negative")
		}
		rec.Payment = &models.PaymentDetail{
			RcptNo: in.Payment.RcptNo,
			FeeRs:  in.Payment.FeeRs,
		}
	}

	// gorm writes the parent and its associations in one transaction.
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, err
	}

	rec.AttachTotalPaid()
	return &rec, nil
}

// FindPage returns one page of records matching the filter. The two
// filters compose with AND; no filter returns everything. Ordering is by
// id descending, newest rows first.
func (s *GormOpdStore) FindPage(f OpdFilter) (*OpdPage, error) {
	f.Normalize()

	var day string
	if f.Date != "" {
		t, err := ParseFilterDate(f.Date)
		if err != nil {
			return nil, err
		}
		day = t.Format("2006-01-02")
	}

	base := func() *gorm.DB {
		q := s.db.Model(&models.OpdRecord{})
		if f.Q != "" {
			like := "%" + f.Q + "%"
			q = q.Where("patient_name ILIKE ? OR father_name ILIKE ? OR referred_by ILIKE ?", like, like, like)
		}
		if day != "" {
			q = q.Where("DATE(date) = ?", day)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	var recs []models.OpdRecord
	err := base().
		Preload("CustomServices").
		Preload("Payment").
		Order("id DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	for i := range recs {
		recs[i].AttachTotalPaid()
	}

	return &OpdPage{
		Total:   total,
		Page:    f.Page,
		Limit:   f.Limit,
		Results: recs,
	}, nil
}

// FindOne loads a record with both child relations so TotalPaid stays
// self-consistent with what the caller sees.
func (s *GormOpdStore) FindOne(id int) (*models.OpdRecord, error) {
	var rec models.OpdRecord
	err := s.db.Preload("CustomServices").Preload("Payment").First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.AttachTotalPaid()
	return &rec, nil
}

// Update applies a sparse patch. Scalar fields follow key-presence
// semantics; the payment sub-patch partially updates or creates the row;
// service-line entries upsert by id or insert. Lines omitted from the
// patch are never deleted.
func (s *GormOpdStore) Update(id int, patch Patch) (*models.OpdRecord, error) {
	var rec models.OpdRecord
	err := s.db.Preload("CustomServices").Preload("Payment").First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates, err := scalarUpdates(patch)
	if err != nil {
		return nil, err
	}

	var payUpdates map[string]interface{}
	if raw, ok := patch["payment"]; ok {
		payUpdates, err = paymentUpdates(raw)
		if err != nil {
			return nil, err
		}
	}

	var linePatches []serviceLinePatch
	if raw, ok := patch["customservice"]; ok {
		linePatches, err = serviceLinePatches(raw)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.OpdRecord{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if _, ok := patch["payment"]; ok {
			if rec.Payment != nil {
				if len(payUpdates) > 0 {
					if err := tx.Model(&models.PaymentDetail{}).Where("id = ?", rec.Payment.ID).Updates(payUpdates).Error; err != nil {
						return err
					}
				}
			} else {
				pay := models.PaymentDetail{OpdID: id}
				if v, ok := payUpdates["rcpt_no"]; ok {
					pay.RcptNo = v.(string)
				}
				if v, ok := payUpdates["fee_rs"]; ok {
					pay.FeeRs = v.(float64)
				}
				if strings.TrimSpace(pay.RcptNo) == "" {
					return validationErrorf("payment.rcptNo cannot be empty")
				}
				if err := tx.Create(&pay).Error; err != nil {
					return err
				}
			}
		}

		for _, lp := range linePatches {
			if lp.ID != nil {
				if len(lp.Updates) == 0 {
					continue
				}
				if err := tx.Model(&models.CustomServiceLine{}).
					Where("id = ? AND opd_id = ?", *lp.ID, id).
					Updates(lp.Updates).Error; err != nil {
					return err
				}
			} else {
				line := *lp.Insert
				line.OpdID = id
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// Remove deletes the record; the storage-level cascade removes the owned
// service lines and payment row with it.
func (s *GormOpdStore) Remove(id int) error {
	var rec models.OpdRecord
	if err := s.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(&rec).Error
}
