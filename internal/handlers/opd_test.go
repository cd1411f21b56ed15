package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-opd-server/internal/models"
	"clinic-opd-server/internal/store"
)

func opdRouter(s store.OpdRecordStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOpdHandler(s)
	r := gin.New()
	r.POST("/opd", h.CreateOpdRecord)
	r.GET("/opd", h.ListOpdRecords)
	r.GET("/opd/:id", h.GetOpdRecordByID)
	r.PUT("/opd/:id", h.UpdateOpdRecord)
	r.DELETE("/opd/:id", h.DeleteOpdRecord)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOpdRecordValidationError(t *testing.T) {
	mock := &mockOpdStore{
		CreateFunc: func(in *store.CreateOpdInput) (*models.OpdRecord, error) {
			return nil, &store.ValidationError{Message: "patientName, date, gender required"}
		},
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodPost, "/opd", `{"gender":"female"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "required") {
		t.Errorf("body = %s, want required-fields message", w.Body.String())
	}
}

func TestCreateOpdRecordSuccess(t *testing.T) {
	var got *store.CreateOpdInput
	mock := &mockOpdStore{
		CreateFunc: func(in *store.CreateOpdInput) (*models.OpdRecord, error) {
			got = in
			return &models.OpdRecord{
				ID:          1,
				PatientName: in.PatientName,
				Gender:      models.Gender(in.Gender),
				Date:        time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
				CustomServices: []models.CustomServiceLine{
					{ID: 1, ServiceName: "Xray", ServicePrice: 100, ServiceQuantity: 1, TotalPrice: 100},
				},
				Payment:   &models.PaymentDetail{ID: 1, RcptNo: "R1", FeeRs: 50},
				TotalPaid: 150,
			}, nil
		},
	}
	r := opdRouter(mock)

	body := `{"patientName":"Asha","date":"2024-01-31T10:00:00Z","gender":"female",` +
		`"customservice":[{"serviceName":"Xray","servicePrice":100,"serviceQuantity":1,"totalPrice":100}],` +
		`"payment":{"rcptNo":"R1","feeRs":50}}`
	w := doJSON(t, r, http.MethodPost, "/opd", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if got == nil || got.PatientName != "Asha" || len(got.CustomServices) != 1 || got.Payment == nil {
		t.Fatalf("store received %+v", got)
	}

	var resp struct {
		Data models.OpdRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.TotalPaid != 150 {
		t.Errorf("totalpaid = %v, want 150", resp.Data.TotalPaid)
	}
}

func TestListOpdRecordsPassesFilter(t *testing.T) {
	var got store.OpdFilter
	mock := &mockOpdStore{
		FindPageFunc: func(f store.OpdFilter) (*store.OpdPage, error) {
			got = f
			return &store.OpdPage{Total: 0, Page: 1, Limit: 10, Results: []models.OpdRecord{}}, nil
		},
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodGet, "/opd?q=asha&date=31%2F01%2F2024&page=2&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.Q != "asha" || got.Date != "31/01/2024" || got.Page != 2 || got.Limit != 5 {
		t.Errorf("filter = %+v", got)
	}
}

func TestListOpdRecordsBadDate(t *testing.T) {
	mock := &mockOpdStore{
		FindPageFunc: func(f store.OpdFilter) (*store.OpdPage, error) {
			return nil, &store.ValidationError{Message: "date must be in DD/MM/YYYY format"}
		},
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodGet, "/opd?date=not-a-date", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListOpdRecordsCoercesBadPaging(t *testing.T) {
	var got store.OpdFilter
	mock := &mockOpdStore{
		FindPageFunc: func(f store.OpdFilter) (*store.OpdPage, error) {
			got = f
			return &store.OpdPage{Page: 1, Limit: 10}, nil
		},
	}
	r := opdRouter(mock)

	// Non-numeric paging inputs are coerced, not rejected.
	w := doJSON(t, r, http.MethodGet, "/opd?page=abc&limit=xyz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.Page != 0 || got.Limit != 0 {
		t.Errorf("filter = %+v, want zero values for the store to normalize", got)
	}
}

func TestGetOpdRecordByIDNotFound(t *testing.T) {
	mock := &mockOpdStore{
		FindOneFunc: func(id int) (*models.OpdRecord, error) {
			return nil, store.ErrNotFound
		},
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodGet, "/opd/99", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetOpdRecordByIDInvalid(t *testing.T) {
	called := false
	mock := &mockOpdStore{
		FindOneFunc: func(id int) (*models.OpdRecord, error) {
			called = true
			return nil, store.ErrNotFound
		},
	}
	r := opdRouter(mock)

	for _, path := range []string{"/opd/abc", "/opd/0", "/opd/-5"} {
		w := doJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, w.Code)
		}
	}
	if called {
		t.Error("store called for invalid ids")
	}
}

func TestUpdateOpdRecordForwardsPatch(t *testing.T) {
	var gotID int
	var gotPatch store.Patch
	mock := &mockOpdStore{
		UpdateFunc: func(id int, patch store.Patch) (*models.OpdRecord, error) {
			gotID = id
			gotPatch = patch
			return &models.OpdRecord{ID: id, PatientName: "Asha"}, nil
		},
	}
	r := opdRouter(mock)

	body := `{"customservice":[{"serviceName":"X","servicePrice":10,"serviceQuantity":1,"totalPrice":10}]}`
	w := doJSON(t, r, http.MethodPut, "/opd/7", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if gotID != 7 {
		t.Errorf("id = %d, want 7", gotID)
	}
	if _, ok := gotPatch["customservice"]; !ok {
		t.Error("customservice key missing from forwarded patch")
	}
	if _, ok := gotPatch["patientName"]; ok {
		t.Error("patch contains a key the client never sent")
	}
}

func TestDeleteOpdRecord(t *testing.T) {
	mock := &mockOpdStore{
		RemoveFunc: func(id int) error { return nil },
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodDelete, "/opd/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Record deleted") {
		t.Errorf("body = %s, want deletion message", w.Body.String())
	}
}

func TestDeleteOpdRecordNotFound(t *testing.T) {
	mock := &mockOpdStore{
		RemoveFunc: func(id int) error { return store.ErrNotFound },
	}
	r := opdRouter(mock)

	w := doJSON(t, r, http.MethodDelete, "/opd/99", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
