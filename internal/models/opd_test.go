package models

import (
	"testing"
)

func TestComputeTotalPaid(t *testing.T) {
	rec := OpdRecord{
		CustomServices: []CustomServiceLine{
			{ServiceName: "Xray", ServicePrice: 100, ServiceQuantity: 1, TotalPrice: 100},
		},
		Payment: &PaymentDetail{RcptNo: "R1", FeeRs: 50},
	}
	if got := rec.ComputeTotalPaid(); got != 150 {
		t.Errorf("ComputeTotalPaid() = %v, want 150", got)
	}
}

func TestComputeTotalPaidNoPayment(t *testing.T) {
	rec := OpdRecord{
		CustomServices: []CustomServiceLine{
			{TotalPrice: 75},
			{TotalPrice: 25},
		},
	}
	if got := rec.ComputeTotalPaid(); got != 100 {
		t.Errorf("ComputeTotalPaid() = %v, want 100", got)
	}
}

func TestComputeTotalPaidEmptyRecord(t *testing.T) {
	var rec OpdRecord
	if got := rec.ComputeTotalPaid(); got != 0 {
		t.Errorf("ComputeTotalPaid() = %v, want 0", got)
	}
}

func TestComputeTotalPaidIgnoresPriceQuantity(t *testing.T) {
	// totalPrice is caller-supplied and never recomputed from price*quantity.
	rec := OpdRecord{
		CustomServices: []CustomServiceLine{
			{ServicePrice: 100, ServiceQuantity: 3, TotalPrice: 10},
		},
	}
	if got := rec.ComputeTotalPaid(); got != 10 {
		t.Errorf("ComputeTotalPaid() = %v, want 10", got)
	}
}

func TestAttachTotalPaid(t *testing.T) {
	rec := OpdRecord{Payment: &PaymentDetail{FeeRs: 20}}
	rec.AttachTotalPaid()
	if rec.TotalPaid != 20 {
		t.Errorf("TotalPaid = %v, want 20", rec.TotalPaid)
	}
}

func TestGenderValid(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderOther} {
		if !g.Valid() {
			t.Errorf("Gender(%q).Valid() = false, want true", g)
		}
	}
	if Gender("unknown").Valid() {
		t.Error("Gender(\"unknown\").Valid() = true, want false")
	}
}
