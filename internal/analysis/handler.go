package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/server/middleware"
	"cvmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
	Env string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis", h.submitAnalysis)
	rg.GET("/analysis/:id", h.getAnalysis)
}

type submitAnalysisRequest struct {
	JobDescriptionID string `json:"jobDescriptionId"`
	JobDescription   string `json:"jobDescription"`
}

func (h *Handler) submitAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	job, err := h.Svc.Submit(ctx, userID, req.JobDescriptionID, req.JobDescription)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}

	c.Set("analysisId", job.ID)
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	job, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, job)
}
