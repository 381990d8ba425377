package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/progress"
)

// UserCoursesController exposes course progress of the caller.
type UserCoursesController struct {
	progress CourseProgress
	log      *zap.Logger
}

func NewUserCoursesController(p CourseProgress, log *zap.Logger) *UserCoursesController {
	return &UserCoursesController{progress: p, log: log}
}

type startCourseRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

type logStudyRequest struct {
	Date     string  `json:"date"`
	Category string  `json:"category" binding:"required"`
	Minutes  int     `json:"minutes"`
	Notes    *string `json:"notes"`
}

type completeCourseRequest struct {
	Date string `json:"date"`
}

// StartCourse handles POST /api/user-courses
func (uc *UserCoursesController) StartCourse(c *gin.Context) {
	var req startCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := uc.progress.StartCourse(c.Request.Context(), GetUserID(c), req.CourseID)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	respondCreated(c, course)
}

// ListUserCourses handles GET /api/user-courses
func (uc *UserCoursesController) ListUserCourses(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	result, err := uc.progress.ListUserCourses(c.Request.Context(), GetUserID(c), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// GetUserCourse handles GET /api/user-courses/:id
func (uc *UserCoursesController) GetUserCourse(c *gin.Context) {
	course, err := uc.progress.GetUserCourse(c.Request.Context(), GetUserID(c), c.Param("id"))
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// LogStudy handles POST /api/user-courses/:id/recordings
func (uc *UserCoursesController) LogStudy(c *gin.Context) {
	var req logStudyRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := entities.ParseRecordType(req.Category)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	result, err := uc.progress.LogCourseActivity(c.Request.Context(), progress.LogCourseActivityInput{
		UserCourseID: c.Param("id"),
		OwnerID:      GetUserID(c),
		Date:         date,
		Category:     category,
		Minutes:      req.Minutes,
		Notes:        req.Notes,
	})
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Complete handles POST /api/user-courses/:id/complete
func (uc *UserCoursesController) Complete(c *gin.Context) {
	var req completeCourseRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	course, err := uc.progress.CompleteCourse(c.Request.Context(), GetUserID(c), c.Param("id"), date)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// ListRecordings handles GET /api/user-courses/:id/recordings
func (uc *UserCoursesController) ListRecordings(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	result, err := uc.progress.ListCourseRecordings(c.Request.Context(), GetUserID(c), c.Param("id"), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// DailyHistory handles GET /api/user-courses/:id/daily
func (uc *UserCoursesController) DailyHistory(c *gin.Context) {
	q, ok := parseListQuery(c, uc.log)
	if !ok {
		return
	}
	history, err := uc.progress.CourseDailyHistory(c.Request.Context(), GetUserID(c), c.Param("id"), q)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Stats handles GET /api/user-courses/stats?from=&to=
func (uc *UserCoursesController) Stats(c *gin.Context) {
	from, to, ok := parseWindow(c, uc.log)
	if !ok {
		return
	}
	stats, err := uc.progress.CourseStats(c.Request.Context(), GetUserID(c), from, to)
	if err != nil {
		respondAppError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
