package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"model-registry-ops/internal/adapters/primary/http/dto"
	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ResolveCurrentVersion(c *gin.Context) {
	priority, err := h.parsePriority(c.DefaultQuery("priority", "evaluation"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.resolver.Resolve(c.Request.Context(), c.Param("name"), priority)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	order := make([]string, len(priority))
	for i, st := range priority {
		order[i] = st.String()
	}
	c.JSON(http.StatusOK, dto.ResolveResponse{
		Priority: order,
		Version:  dto.ToModelVersionResponse(version),
	})
}

func (h *Handler) PromoteModel(c *gin.Context) {
	name := c.Param("name")

	result, err := h.promotionSvc.Promote(c.Request.Context(), name)
	if err != nil {
		log.WithError(err).WithField("model", name).Error("promote model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PromotionResponse{
		PromotionResult: result,
		Message:         "model version " + strconv.Itoa(result.Version) + " promoted to Production",
	})
}

func (h *Handler) RegisterModel(c *gin.Context) {
	name := c.Param("name")

	var req dto.RegisterModelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var (
		version *domain.ModelVersion
		err     error
	)
	if req.IsEmpty() {
		version, err = h.registerSvc.RegisterFromArtifact(c.Request.Context(), name)
	} else {
		version, err = h.registerSvc.Register(c.Request.Context(), name, req.ToModelInfo())
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToModelVersionResponse(version))
}

func (h *Handler) EvaluateModel(c *gin.Context) {
	name := c.Param("name")

	report, err := h.evaluationSvc.Evaluate(c.Request.Context(), name)
	if err != nil {
		log.WithError(err).WithField("model", name).Error("evaluate model failed")
		mapDomainError(c, err)
		return
	}

	status := http.StatusOK
	if !report.Passed() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.EvaluationResponse{EvaluationReport: report, Passed: report.Passed()})
}

func (h *Handler) ListTransitions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := services.NormalizeTransitionFilter(ports.TransitionListFilter{
		ModelName: c.Param("name"),
		Limit:     limit,
		Offset:    offset,
	})

	transitions, total, err := h.transitions.List(c.Request.Context(), filter)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.TransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		items = append(items, dto.ToTransitionResponse(t))
	}

	c.JSON(http.StatusOK, dto.ListTransitionsResponse{
		Items:      items,
		Total:      total,
		PageSize:   filter.Limit,
		NextOffset: filter.Offset + len(items),
	})
}

func (h *Handler) parsePriority(raw string) (domain.StagePriority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "promotion":
		return h.priorities.Promotion, nil
	case "evaluation":
		return h.priorities.Evaluation, nil
	}
	return domain.ParseStagePriority(raw)
}
