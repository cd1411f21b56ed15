package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"clinic-opd-server/internal/models"
)

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeString decodes a patch value into a string. A JSON null yields
// (nil, nil) so the caller can distinguish "set to null" from a bad value.
func decodeString(raw json.RawMessage, field string) (*string, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, validationErrorf("%s must be a string", field)
	}
	return &v, nil
}

func decodeInt(raw json.RawMessage, field string) (*int, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, validationErrorf("%s must be an integer", field)
	}
	return &v, nil
}

func decodeFloat(raw json.RawMessage, field string) (*float64, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, validationErrorf("%s must be a number", field)
	}
	return &v, nil
}

// scalarUpdates translates the parent-level keys of a patch into a gorm
// column update map. Only keys present in the patch are applied; nullable
// columns accept an explicit null, required columns reject it.
func scalarUpdates(patch Patch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if raw, ok := patch["patientName"]; ok {
		v, err := decodeString(raw, "patientName")
		if err != nil {
			return nil, err
		}
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, validationErrorf("patientName cannot be empty")
		}
		updates["patient_name"] = *v
	}

	if raw, ok := patch["fatherName"]; ok {
		v, err := decodeString(raw, "fatherName")
		if err != nil {
			return nil, err
		}
		if v == nil {
			updates["father_name"] = nil
		} else {
			updates["father_name"] = *v
		}
	}

	if raw, ok := patch["age"]; ok {
		v, err := decodeInt(raw, "age")
		if err != nil {
			return nil, err
		}
		if v == nil {
			updates["age"] = nil
		} else {
			if *v < 0 {
				return nil, validationErrorf("age cannot be negative")
			}
			updates["age"] = *v
		}
	}

	if raw, ok := patch["gender"]; ok {
		v, err := decodeString(raw, "gender")
		if err != nil {
			return nil, err
		}
		if v == nil || !models.Gender(*v).Valid() {
			return nil, validationErrorf("gender must be one of male, female, other")
		}
		updates["gender"] = *v
	}

	if raw, ok := patch["departmentId"]; ok {
		v, err := decodeInt(raw, "departmentId")
		if err != nil {
			return nil, err
		}
		if v == nil {
			updates["department_id"] = nil
		} else {
			updates["department_id"] = *v
		}
	}

	if raw, ok := patch["consultantId"]; ok {
		v, err := decodeInt(raw, "consultantId")
		if err != nil {
			return nil, err
		}
		if v == nil {
			updates["consultant_id"] = nil
		} else {
			updates["consultant_id"] = *v
		}
	}

	if raw, ok := patch["referredBy"]; ok {
		v, err := decodeString(raw, "referredBy")
		if err != nil {
			return nil, err
		}
		if v == nil {
			updates["referred_by"] = nil
		} else {
			updates["referred_by"] = *v
		}
	}

	if raw, ok := patch["date"]; ok {
		v, err := decodeString(raw, "date")
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, validationErrorf("date cannot be null")
		}
		t, err := time.Parse(time.RFC3339, *v)
		if err != nil {
			return nil, validationErrorf("date must be an ISO-8601 timestamp")
		}
		updates["date"] = t
	}

	return updates, nil
}

// paymentUpdates extracts the sub-fields present in a payment patch.
// Null sub-values are treated as absent so existing values are retained.
func paymentUpdates(raw json.RawMessage) (map[string]interface{}, error) {
	if isJSONNull(raw) {
		return nil, validationErrorf("payment must be an object")
	}
	var pm Patch
	if err := json.Unmarshal(raw, &pm); err != nil {
		return nil, validationErrorf("payment must be an object")
	}

	updates := map[string]interface{}{}
	if r, ok := pm["rcptNo"]; ok {
		v, err := decodeString(r, "payment.rcptNo")
		if err != nil {
			return nil, err
		}
		if v != nil {
			if strings.TrimSpace(*v) == "" {
				return nil, validationErrorf("payment.rcptNo cannot be empty")
			}
			updates["rcpt_no"] = *v
		}
	}
	if r, ok := pm["feeRs"]; ok {
		v, err := decodeFloat(r, "payment.feeRs")
		if err != nil {
			return nil, err
		}
		if v != nil {
			if *v < 0 {
				return nil, validationErrorf("payment.feeRs cannot be negative")
			}
			updates["fee_rs"] = *v
		}
	}
	return updates, nil
}

// serviceLinePatch is one decoded entry from a customservice patch array.
// A nil ID means insert; a set ID means sparse update of that line.
type serviceLinePatch struct {
	ID      *int
	Updates map[string]interface{}
	Insert  *models.CustomServiceLine
}

// serviceLinePatches decodes a customservice patch array. Entries carrying
// an id become sparse updates; entries without one become inserts. Lines
// absent from the array are deliberately left untouched.
func serviceLinePatches(raw json.RawMessage) ([]serviceLinePatch, error) {
	if isJSONNull(raw) {
		return nil, validationErrorf("customservice must be an array")
	}
	var items []Patch
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, validationErrorf("customservice must be an array of objects")
	}

	out := make([]serviceLinePatch, 0, len(items))
	for _, item := range items {
		var id *int
		if r, ok := item["id"]; ok && !isJSONNull(r) {
			v, err := decodeInt(r, "customservice.id")
			if err != nil {
				return nil, err
			}
			id = v
		}

		if id != nil {
			updates := map[string]interface{}{}
			if r, ok := item["serviceName"]; ok {
				v, err := decodeString(r, "customservice.serviceName")
				if err != nil {
					return nil, err
				}
				if v == nil || strings.TrimSpace(*v) == "" {
					return nil, validationErrorf("customservice.serviceName cannot be empty")
				}
				updates["service_name"] = *v
			}
			if r, ok := item["servicePrice"]; ok {
				v, err := decodeFloat(r, "customservice.servicePrice")
				if err != nil {
					return nil, err
				}
				if v == nil || *v < 0 {
					return nil, validationErrorf("customservice.servicePrice cannot be negative")
				}
				updates["service_price"] = *v
			}
			if r, ok := item["serviceQuantity"]; ok {
				v, err := decodeInt(r, "customservice.serviceQuantity")
				if err != nil {
					return nil, err
				}
				if v == nil || *v < 1 {
					return nil, validationErrorf("customservice.serviceQuantity must be at least 1")
				}
				updates["service_quantity"] = *v
			}
			if r, ok := item["totalPrice"]; ok {
				v, err := decodeFloat(r, "customservice.totalPrice")
				if err != nil {
					return nil, err
				}
				if v == nil || *v < 0 {
					return nil, validationErrorf("customservice.totalPrice cannot be negative")
				}
				updates["total_price"] = *v
			}
			out = append(out, serviceLinePatch{ID: id, Updates: updates})
			continue
		}

		// No id: a complete new line, inserted as a new row.
		var in ServiceLineInput
		b, _ := json.Marshal(item)
		if err := json.Unmarshal(b, &in); err != nil {
			return nil, validationErrorf("invalid customservice entry")
		}
		if err := in.validate(); err != nil {
			return nil, err
		}
		out = append(out, serviceLinePatch{Insert: &models.CustomServiceLine{
			ServiceName:     in.ServiceName,
			ServicePrice:    in.ServicePrice,
			ServiceQuantity: in.ServiceQuantity,
			TotalPrice:      in.TotalPrice,
		}})
	}
	return out, nil
}
