package handlers

import (
	"model-registry-ops/internal/core/domain"
	"model-registry-ops/internal/core/services"

	"github.com/gin-gonic/gin"
)

// Priorities are the configured stage orders the "promotion" and
// "evaluation" keywords of the priority query parameter refer to.
type Priorities struct {
	Promotion  domain.StagePriority
	Evaluation domain.StagePriority
}

type Handler struct {
	resolver      *services.StageResolver
	promotionSvc  *services.PromotionService
	registerSvc   *services.RegistrationService
	evaluationSvc *services.EvaluationService
	transitions   *services.TransitionRecorder
	priorities    Priorities
}

func New(
	resolver *services.StageResolver,
	promotionSvc *services.PromotionService,
	registerSvc *services.RegistrationService,
	evaluationSvc *services.EvaluationService,
	transitions *services.TransitionRecorder,
	priorities Priorities,
) *Handler {
	if len(priorities.Promotion) == 0 {
		priorities.Promotion = domain.PromotionPriority
	}
	if len(priorities.Evaluation) == 0 {
		priorities.Evaluation = domain.EvaluationPriority
	}
	return &Handler{
		resolver:      resolver,
		promotionSvc:  promotionSvc,
		registerSvc:   registerSvc,
		evaluationSvc: evaluationSvc,
		transitions:   transitions,
		priorities:    priorities,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Resolution
	r.GET("/models/:name/current", h.ResolveCurrentVersion)

	// Workflows
	r.POST("/models/:name/promote", h.PromoteModel)
	r.POST("/models/:name/register", h.RegisterModel)
	r.POST("/models/:name/evaluate", h.EvaluateModel)

	// Audit trail
	r.GET("/models/:name/transitions", h.ListTransitions)
}
