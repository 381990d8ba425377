package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/progress"
)

// UserBooksController exposes reading progress of the caller.
type UserBooksController struct {
	progress BookProgress
	log      *zap.Logger
}

func NewUserBooksController(p BookProgress, log *zap.Logger) *UserBooksController {
	return &UserBooksController{progress: p, log: log}
}

type startBookRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// logReadingRequest is one reading submission. Date defaults to today.
type logReadingRequest struct {
	Date    string  `json:"date"`
	Pages   int     `json:"pages"`
	Minutes int     `json:"minutes"`
	Notes   *string `json:"notes"`
}

// StartBook handles POST /api/user-books
func (uc *UserBooksController) StartBook(c *gin.Context) {
	var req startBookRequest
	if !bindJSON(c, &req) {
		return
	}
	ub, err := uc.progress.StartBook(c.Request.Context(), GetUserID(c), req.BookID)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	respondCreated(c, ub)
}

// ListUserBooks handles GET /api/user-books
func (uc *UserBooksController) ListUserBooks(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	result, err := uc.progress.ListUserBooks(c.Request.Context(), GetUserID(c), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// GetUserBook handles GET /api/user-books/:id
func (uc *UserBooksController) GetUserBook(c *gin.Context) {
	ub, err := uc.progress.GetUserBook(c.Request.Context(), GetUserID(c), c.Param("id"))
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, ub)
}

// LogReading handles POST /api/user-books/:id/recordings
func (uc *UserBooksController) LogReading(c *gin.Context) {
	var req logReadingRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	result, err := uc.progress.LogBookActivity(c.Request.Context(), progress.LogBookActivityInput{
		UserBookID: c.Param("id"),
		OwnerID:    GetUserID(c),
		Date:       date,
		Pages:      req.Pages,
		Minutes:    req.Minutes,
		Notes:      req.Notes,
	})
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRecordings handles GET /api/user-books/:id/recordings
func (uc *UserBooksController) ListRecordings(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	result, err := uc.progress.ListBookRecordings(c.Request.Context(), GetUserID(c), c.Param("id"), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// DailyHistory handles GET /api/user-books/:id/daily
func (uc *UserBooksController) DailyHistory(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	history, err := uc.progress.BookDailyHistory(c.Request.Context(), GetUserID(c), c.Param("id"), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Stats handles GET /api/user-books/stats?from=&to=
func (uc *UserBooksController) Stats(c *gin.Context) {
	from, to, ok := parseWindow(c, uc.log)
	if !ok {
		return
	}
	stats, err := uc.progress.BookStats(c.Request.Context(), GetUserID(c), from, to)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
