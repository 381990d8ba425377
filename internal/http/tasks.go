package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/progress"
	"github.com/mrlokans/tracker/internal/tasks"
)

// TasksController handles task queue endpoints.
type TasksController struct {
	queue TaskQueue
	log   *zap.Logger
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue, log *zap.Logger) *TasksController {
	return &TasksController{queue: queue, log: log}
}

// ReconcileRequest selects a single aggregate; an empty body reconciles all.
type ReconcileRequest struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondAppError(c, tc.log, err)
		return
	}
	if status == backlite.TaskStatusNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "task not found", Code: "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// Reconcile handles POST /api/admin/reconcile
func (tc *TasksController) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	var task backlite.Task
	switch {
	case req.Entity == "" && req.ID == "":
		task = tasks.ReconcileAllTask{Reason: "admin"}
	case req.Entity != progress.EntityUserBook && req.Entity != progress.EntityUserCourse:
		respondBadRequest(c, "entity must be user_book or user_course")
		return
	case req.ID == "":
		respondBadRequest(c, "id is required")
		return
	default:
		task = tasks.RebuildProgressTask{Entity: req.Entity, ID: req.ID}
	}

	ids, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondAppError(c, tc.log, err)
		return
	}

	respondAccepted(c, "task enqueued", gin.H{
		"task_id": ids[0],
		"queue":   task.Config().Name,
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
