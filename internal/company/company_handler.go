package company

import (
	"net/http"

	"go-hrms/internal/access"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := access.FromGin(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthenticated)
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), actor.CompanyID)
	if err != nil {
		h.logger.Warn("get company failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}
