package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coreselect/internal/budget"
	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/server/middleware"
	"coreselect/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommend service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the recommendation routes.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/recommend", h.recommend)
	rg.GET("/recommendations/:id", h.get)
}

func (h *Handler) recommend(c *gin.Context) {
	var req contract.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	rec, err := h.Svc.Recommend(c.Request.Context(), req)
	if err != nil {
		var missing *contract.MissingFieldsError
		switch {
		case errors.Is(err, ErrBudgetRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Budget is required", nil)
		case errors.Is(err, ErrPrioritiesRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "At least one priority is required", nil)
		case errors.Is(err, budget.ErrBudgetTooLow), errors.Is(err, budget.ErrNoPriorities):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.As(err, &missing):
			respond.Error(c, http.StatusInternalServerError, "invalid_recommendation", missing.Error(), nil)
		case errors.Is(err, ErrInvalidLLMResponse):
			respond.Error(c, http.StatusInternalServerError, "invalid_recommendation", ErrInvalidLLMResponse.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		}
		return
	}

	c.Set(middleware.RecommendationIDKey, rec.ID)
	c.Set(middleware.RecommendationSourceKey, rec.Source)
	c.Header("X-Recommendation-Id", rec.ID)
	respond.OK(c, rec.Result)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recommendation", nil)
		return
	}
	respond.OK(c, rec)
}
