package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/lung-visualizer/internal/domain/advice"
	"github.com/yanqian/lung-visualizer/internal/domain/assessment"
	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/internal/domain/quitplan"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	assessSvc   assessment.Service
	renderSvc   lungviz.Service
	adviceSvc   advice.Service
	quitPlanSvc quitplan.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(assessSvc assessment.Service, renderSvc lungviz.Service, adviceSvc advice.Service, quitPlanSvc quitplan.Service, logger *slog.Logger) *Handler {
	return &Handler{
		assessSvc:   assessSvc,
		renderSvc:   renderSvc,
		adviceSvc:   adviceSvc,
		quitPlanSvc: quitPlanSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

type progressionRequest struct {
	Profile health.SmokingProfile `json:"profile"`
	Format  string                `json:"format"`
}

// Assess returns the full report for a smoking profile.
func (h *Handler) Assess(c *gin.Context) {
	var req assessment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	report, err := h.assessSvc.Assess(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "assessment_failed"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// Illustration renders the lung image for a health score.
func (h *Handler) Illustration(c *gin.Context) {
	raw := c.Query("health")
	if raw == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "health query parameter is required", nil))
		return
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "health must be a number", err))
		return
	}
	format, err := lungviz.ParseFormat(c.Query("format"), "")
	if err != nil {
		abortWithError(c, fromDomainError(err, "render_failed"))
		return
	}

	img, err := h.renderSvc.Render(c.Request.Context(), lungviz.RenderRequest{Health: score, Format: format})
	if err != nil {
		abortWithError(c, fromDomainError(err, "render_failed"))
		return
	}

	c.Header("X-Damage-Stage", strconv.Itoa(int(img.Stage)))
	c.Header("X-Render-Seed", strconv.FormatInt(img.Seed, 10))
	c.Header("Cache-Control", "public, max-age=86400")
	if img.Cached {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// Progression renders the yearly illustrations for a profile.
func (h *Handler) Progression(c *gin.Context) {
	var req progressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	format, err := lungviz.ParseFormat(req.Format, lungviz.FormatPNG)
	if err != nil {
		abortWithError(c, fromDomainError(err, "progression_failed"))
		return
	}

	gallery, err := h.assessSvc.Progression(c.Request.Context(), req.Profile, format)
	if err != nil {
		abortWithError(c, fromDomainError(err, "progression_failed"))
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// Advice returns personalised cessation advice. Upstream failures still
// produce a 200 with fallback content.
func (h *Handler) Advice(c *gin.Context) {
	var req advice.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if err := req.Profile.Validate(); err != nil {
		abortWithError(c, fromDomainError(err, "advice_failed"))
		return
	}

	resp := h.adviceSvc.Advise(c.Request.Context(), req)
	if resp.Source != advice.SourceModel {
		h.logger.Info("advice served without model output", "source", resp.Source)
	}
	c.JSON(http.StatusOK, resp)
}

// Resources lists hotlines, apps, websites and treatments.
func (h *Handler) Resources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": h.adviceSvc.Resources()})
}

// QuitPlan builds a tapering plan.
func (h *Handler) QuitPlan(c *gin.Context) {
	var req quitplan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	plan, err := h.quitPlanSvc.Plan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "quit_plan_failed"))
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
