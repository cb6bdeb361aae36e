package handler

import (
	"net/http"
	"strconv"

	"github.com/cisclab/registrar-backend/internal/response"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ClassHandler handles registrar-facing class management (CRUD plus
// schedule conflict handling).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/registrar/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/registrar/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if class == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ListSectionClasses godoc
// GET /api/v1/registrar/sections/:id/classes
func (h *ClassHandler) ListSectionClasses(c *gin.Context) {
	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	classes, err := h.classService.GetBySection(sectionID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClass godoc
// POST /api/v1/registrar/classes?force=true
// Rejects with 409 and the full conflict list when the schedules
// collide with another class in the same room; force=true skips the
// check (administrative override).
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	class, err := h.classService.Create(payload, !forceRequested(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PATCH /api/v1/registrar/classes/:id?force=true
// Accepts a partial payload; conflict checking uses the payload's
// schedules/room when present and the stored values otherwise,
// excluding the class itself.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
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

	class, err := h.classService.Update(id, payload, !forceRequested(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// DeleteClass godoc
// DELETE /api/v1/registrar/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.classService.Delete(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// SearchClasses godoc
// GET /api/v1/registrar/classes/search?instructor=...&section_id=...
// Exact-match AND over all supplied query parameters.
func (h *ClassHandler) SearchClasses(c *gin.Context) {
	filters := queryFilters(c.Request.URL.Query(), "id", "units", "section_id")

	classes, err := h.classService.Search(filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

func forceRequested(c *gin.Context) bool {
	return c.Query("force") == "true"
}
