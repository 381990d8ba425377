package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/auth"
	"github.com/mrlokans/tracker/internal/logger"
	"github.com/mrlokans/tracker/internal/query"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps one page of a listing.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages"`
}

func newPaginatedResponse[T any](result query.Result[T], q query.QueryBase) PaginatedResponse {
	n := q.Normalize("")
	totalPages := int((result.TotalCount + int64(n.Limit()) - 1) / int64(n.Limit()))
	return PaginatedResponse{
		Data:       result.Data,
		Total:      result.TotalCount,
		Limit:      n.Limit(),
		Page:       n.Page(),
		HasMore:    n.Page() < totalPages,
		TotalPages: totalPages,
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "validation"})
}

// respondAppError maps an application error to its status code. Internal
// errors are logged, never exposed.
func respondAppError(c *gin.Context, log *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internalw("http", err)
	}

	switch appErr.Kind {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: appErr.Message, Code: "not_found"})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Error: appErr.Message, Code: "conflict"})
	case apperr.KindValidation:
		resp := ErrorResponse{Error: appErr.Message, Code: "validation"}
		if appErr.Err != nil {
			resp.Details = appErr.Err.Error()
		}
		c.JSON(http.StatusBadRequest, resp)
	default:
		logger.WithRequestID(c.Request.Context(), log).Error("internal error",
			zap.String("op", appErr.Op), zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
	}
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseListQuery reads the declarative query from the URL.
func parseListQuery(c *gin.Context, log *zap.Logger) (query.QueryBase, bool) {
	q, err := query.ParseValues(c.Request.URL.Query())
	if err != nil {
		respondAppError(c, log, err)
		return query.QueryBase{}, false
	}
	return q, true
}

// parseDate reads an optional YYYY-MM-DD value. Empty yields the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, apperr.Validationf("http.parseDate", "invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// parseWindow reads the from/to query parameters of a statistics window.
func parseWindow(c *gin.Context, log *zap.Logger) (time.Time, time.Time, bool) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		respondAppError(c, log, err)
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		respondAppError(c, log, err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// bindJSON decodes the request body or responds with 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "validation", Details: err.Error()})
		return false
	}
	return true
}
