package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// AuditReader lists audit events.
type AuditReader interface {
	FindAll(ctx context.Context, userID uint, q query.QueryBase) (query.Result[entities.AuditEvent], error)
}

type AuditController struct {
	audit AuditReader
	log   *zap.Logger
}

func NewAuditController(audit AuditReader, log *zap.Logger) *AuditController {
	return &AuditController{audit: audit, log: log}
}

// GetAuditEvents handles GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	q, ok := parseListQuery(c, ac.log)
	if !ok {
		return
	}
	result, err := ac.audit.FindAll(c.Request.Context(), GetUserID(c), q)
	if err != nil {
		respondAppError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}
