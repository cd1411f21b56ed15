package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-opd-server/internal/store"
	"clinic-opd-server/internal/utils"
)

// OpdHandler handles OPD record related requests.
type OpdHandler struct {
	Store store.OpdRecordStore
}

// NewOpdHandler creates a new OpdHandler.
func NewOpdHandler(s store.OpdRecordStore) *OpdHandler {
	return &OpdHandler{Store: s}
}

func respondStoreError(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.BadRequest(c, ve.Message)
	case errors.Is(err, store.ErrNotFound):
		utils.NotFound(c, "Record not found")
	default:
		utils.InternalServerError(c, "Database error: "+err.Error())
	}
}

// CreateOpdRecord handles creating a new OPD record with its service lines
// and payment detail.
func (h *OpdHandler) CreateOpdRecord(c *gin.Context) {
	var in store.CreateOpdInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rec, err := h.Store.Create(&in)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Created(c, "OPD record created successfully", rec)
}

// ListOpdRecords handles fetching OPD records with free-text search, a
// DD/MM/YYYY date filter and pagination.
func (h *OpdHandler) ListOpdRecords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	f := store.OpdFilter{
		Q:     c.Query("q"),
		Date:  c.Query("date"),
		Page:  page,
		Limit: limit,
	}

	result, err := h.Store.FindPage(f)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, "OPD records fetched successfully", result)
}

// GetOpdRecordByID handles fetching a single OPD record by its ID.
func (h *OpdHandler) GetOpdRecordByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.BadRequest(c, "Invalid record ID")
		return
	}

	rec, err := h.Store.FindOne(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, "OPD record fetched successfully", rec)
}

// UpdateOpdRecord handles a sparse update of an OPD record. Only keys
// present in the body are applied.
func (h *OpdHandler) UpdateOpdRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.BadRequest(c, "Invalid record ID")
		return
	}

	var patch store.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rec, err := h.Store.Update(id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, "OPD record updated successfully", rec)
}

// DeleteOpdRecord handles deleting an OPD record; owned service lines and
// the payment row go with it.
func (h *OpdHandler) DeleteOpdRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.Store.Remove(id); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, "Record deleted", nil)
}
