package handler

import (
	"net/http"
	"strconv"

	"github.com/cisclab/registrar-backend/internal/response"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SectionHandler handles registrar-facing section management (CRUD).
type SectionHandler struct {
	sectionService *service.SectionService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// ListSections godoc
// GET /api/v1/registrar/sections
func (h *SectionHandler) ListSections(c *gin.Context) {
	sections, err := h.sectionService.List()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// GetSection godoc
// GET /api/v1/registrar/sections/:id
func (h *SectionHandler) GetSection(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	section, err := h.sectionService.GetByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if section == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// CreateSection godoc
// POST /api/v1/registrar/sections
// The payload is passed to the repository as-is; field validation
// (required fields, enums, capacity) happens there so API and any
// future callers share one rule set.
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	section, err := h.sectionService.Create(payload)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// UpdateSection godoc
// PATCH /api/v1/registrar/sections/:id
// Accepts a partial payload; only the supplied fields are validated
// and merged.
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	section, err := h.sectionService.Update(id, payload)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// DeleteSection godoc
// DELETE /api/v1/registrar/sections/:id
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.sectionService.Delete(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section deleted successfully"})
}

// SearchSections godoc
// GET /api/v1/registrar/sections/search?program=...&year=...
// Exact-match AND over all supplied query parameters.
func (h *SectionHandler) SearchSections(c *gin.Context) {
	filters := queryFilters(c.Request.URL.Query(), "id", "capacity")

	sections, err := h.sectionService.Search(filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}
