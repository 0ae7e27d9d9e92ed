package handlers

import (
	"errors"
	"net/http"

	"model-registry-ops/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrNoVersionFound),
		errors.Is(err, domain.ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidStagePriority),
		errors.Is(err, domain.ErrInvalidModelInfo):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Workflow state errors
	case errors.Is(err, domain.ErrArchiveFailed),
		errors.Is(err, domain.ErrRegistrationFailed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Upstream errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrRegistry),
		errors.Is(err, domain.ErrPredictor):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrRegistrationTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrTransitionLogOff):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrArtifact):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
