package api

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	generation service.GenerationService
	orders     service.WorkOrderService
	plans      service.PlanService
}

func NewHandler(generation service.GenerationService, orders service.WorkOrderService, plans service.PlanService) *Handler {
	return &Handler{generation: generation, orders: orders, plans: plans}
}

type GenerateRequest struct {
	Mode string `json:"mode"`
	// Now overrides the reference instant, RFC 3339.
	Now string `json:"now"`
}

// Generate runs the pipeline on demand. Mode defaults to manual, the mode of
// the "generate now" button.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	// Chunked bodies report ContentLength -1, so bind unconditionally; an
	// empty body keeps the defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Mode == "" {
		req.Mode = string(domain.ModeManual)
	}

	run := app.NewRunRequest(domain.RunMode(req.Mode), app.TriggerAPI)
	if req.Now != "" {
		now, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			BadRequest(c, "now must be RFC 3339")
			return
		}
		run.Now = &now
	}

	res, err := h.generation.Run(c.Request.Context(), run)
	if err != nil {
		var genErr *app.GenerationError
		if errors.As(err, &genErr) && genErr.Code == app.GenerationErrInvalidMode {
			BadRequest(c, genErr.Message)
			return
		}
		InternalError(c, err.Error())
		return
	}
	if !res.Success {
		code := CodeInternal
		if res.Error == service.ErrRunInProgress {
			code = CodeConflict
		}
		ErrorWithData(c, code, res.Error, res)
		return
	}
	Success(c, res)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	AdvancedPlan string     `json:"advanced_plan,omitempty"`
	NextDue      *time.Time `json:"next_occurrence,omitempty"`
}

func (h *Handler) ChangeOrderStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	res, err := h.orders.ChangeStatus(c.Request.Context(), app.ChangeStatusRequest{
		Number: c.Param("number"),
		Status: status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "work order not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	out := OrderResponse{
		Number:      res.Order.Number,
		Status:      string(res.Order.Status),
		Type:        res.Order.Type,
		Description: res.Order.Description,
		CompletedAt: res.Order.CompletedAt,
	}
	if res.AdvancedPlan != nil {
		out.AdvancedPlan = res.AdvancedPlan.Code
		out.NextDue = res.AdvancedPlan.NextOccurrence
	}
	Success(c, out)
}

// PreviewPlan lists the upcoming occurrences of a plan.
func (h *Handler) PreviewPlan(c *gin.Context) {
	count := 5
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			BadRequest(c, "count must be an integer")
			return
		}
		count = n
	}

	dates, err := h.plans.Preview(c.Request.Context(), c.Param("code"), time.Time{}, count)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "maintenance plan not found")
		case errors.Is(err, service.ErrInvalidPreviewCount):
			BadRequest(c, err.Error())
		default:
			InternalError(c, err.Error())
		}
		return
	}
	Success(c, gin.H{"code": strings.ToUpper(c.Param("code")), "occurrences": dates})
}

func (h *Handler) Live(c *gin.Context) {
	Success(c, gin.H{"status": "ok"})
}
