package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/cisclab/registrar-backend/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the standardized API response envelope.
type Response struct {
	Data     interface{} `json:"data"`
	Error    *ErrorBody  `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorBody represents a structured error response.
type ErrorBody struct {
	Code      ErrCode           `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Conflicts []string          `json:"conflicts,omitempty"`
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Data:     data,
		Metadata: buildMetadata(c),
	})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{
		Data:     nil,
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Metadata: buildMetadata(c),
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, Response{
		Data:     nil,
		Error:    &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Data:     nil,
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Metadata: buildMetadata(c),
	})
}

// FromError maps a repository error onto the matching HTTP status and
// error body. The three business kinds keep their own codes and
// payloads; everything else is surfaced as a storage failure.
func FromError(c *gin.Context, err error) {
	var (
		validationErr *apperror.ValidationError
		notFoundErr   *apperror.NotFoundError
		conflictErr   *apperror.ScheduleConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		fields := make(map[string]string, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields[f] = validationErr.Message
		}
		c.JSON(http.StatusBadRequest, Response{
			Error: &ErrorBody{
				Code:    ErrValidation,
				Message: validationErr.Message,
				Fields:  fields,
			},
			Metadata: buildMetadata(c),
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, Response{
			Error: &ErrorBody{
				Code:    ErrNotFound,
				Message: notFoundErr.Error(),
			},
			Metadata: buildMetadata(c),
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, Response{
			Error: &ErrorBody{
				Code:      ErrScheduleConflict,
				Message:   GetMessage(ErrScheduleConflict),
				Conflicts: conflictErr.Conflicts,
			},
			Metadata: buildMetadata(c),
		})
	default:
		Fail(c, http.StatusInternalServerError, ErrStorage)
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func buildMetadata(c *gin.Context) Metadata {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String() // Fallback if middleware not applied
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
