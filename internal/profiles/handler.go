package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/server/middleware"
	"cvmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profiles service.
type Handler struct {
	Svc *Service
	Env string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.saveProfile)
	rg.PUT("/profile/education", h.replaceEducation)
	rg.PUT("/profile/languages", h.replaceLanguages)
	rg.PUT("/profile/skills", h.replaceSkills)
	rg.PUT("/profile/work-experiences", h.replaceWorkExperiences)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	p, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) saveProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Save(c.Request.Context(), userID, req)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, p)
}

type replaceResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type replaceEducationRequest struct {
	ProfileID string      `json:"profileId"`
	Education []Education `json:"education"`
}

func (h *Handler) replaceEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req replaceEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	n, err := h.Svc.ReplaceEducation(c.Request.Context(), userID, req.ProfileID, req.Education)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, replaceResponse{Success: true, Count: n})
}

type replaceLanguagesRequest struct {
	ProfileID string     `json:"profileId"`
	Languages []Language `json:"languages"`
}

func (h *Handler) replaceLanguages(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req replaceLanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	n, err := h.Svc.ReplaceLanguages(c.Request.Context(), userID, req.ProfileID, req.Languages)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, replaceResponse{Success: true, Count: n})
}

type replaceSkillsRequest struct {
	ProfileID string  `json:"profileId"`
	Skills    []Skill `json:"skills"`
}

func (h *Handler) replaceSkills(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req replaceSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	n, err := h.Svc.ReplaceSkills(c.Request.Context(), userID, req.ProfileID, req.Skills)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, replaceResponse{Success: true, Count: n})
}

type replaceWorkExperiencesRequest struct {
	ProfileID   string           `json:"profileId"`
	Experiences []WorkExperience `json:"experiences"`
}

func (h *Handler) replaceWorkExperiences(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req replaceWorkExperiencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	n, err := h.Svc.ReplaceWorkExperiences(c.Request.Context(), userID, req.ProfileID, req.Experiences)
	if err != nil {
		respond.FromError(c, h.Env, err)
		return
	}
	respond.OK(c, replaceResponse{Success: true, Count: n})
}
