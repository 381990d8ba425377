package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/entities"
)

// CoursesController exposes the course catalogue.
type CoursesController struct {
	store CourseStore
	log   *zap.Logger
}

func NewCoursesController(store CourseStore, log *zap.Logger) *CoursesController {
	return &CoursesController{store: store, log: log}
}

type createCourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Provider     string `json:"provider"`
	TotalMinutes int    `json:"total_minutes"`
}

// CreateCourse handles POST /api/courses
func (cc *CoursesController) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course := &entities.Course{
		Title:        req.Title,
		Provider:     req.Provider,
		TotalMinutes: entities.Minutes(req.TotalMinutes),
	}
	if err := cc.store.Create(c.Request.Context(), course); err != nil {
		respondAppError(c, cc.log, err)
		return
	}
	respondCreated(c, course)
}

// GetAllCourses handles GET /api/courses
func (cc *CoursesController) GetAllCourses(c *gin.Context) {
	q, ok := parseListQuery(c, cc.log)
	if !ok {
		return
	}
	result, err := cc.store.FindAll(c.Request.Context(), q)
	if err != nil {
		respondAppError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// GetCourse handles GET /api/courses/:id
func (cc *CoursesController) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	course, err := cc.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
