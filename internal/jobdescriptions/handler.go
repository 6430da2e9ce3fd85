package jobdescriptions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/server/middleware"
	"cvmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the job descriptions service.
type Handler struct {
	Svc *Service
	Env string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// RegisterRoutes attaches job description routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.createJob)
	rg.GET("/jobs", h.listJobs)
}

type createJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

func (h *Handler) createJob(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	jd, err := h.Svc.Create(c.Request.Context(), userID, req.Title, req.Company, req.Description)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}

	respond.JSON(c, http.StatusCreated, jd)
}

func (h *Handler) listJobs(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}

	respond.OK(c, items)
}
