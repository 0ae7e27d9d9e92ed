package domain

import "errors"

// ============================================================================
// Configuration Errors
// ============================================================================

var (
	ErrConfiguration        = errors.New("configuration error")
	ErrInvalidStage         = errors.New("invalid stage")
	ErrInvalidStagePriority = errors.New("stage priority must list at least one stage")
	ErrInvalidModelName     = errors.New("model name is required")
)

// ============================================================================
// Registry Errors
// ============================================================================

// Not found errors
var (
	ErrNoVersionFound = errors.New("no model version found in any probed stage")
	ErrModelNotFound  = errors.New("registered model not found")
)

// Service errors
var (
	ErrRegistry           = errors.New("model registry request failed")
	ErrUnauthorized       = errors.New("model registry rejected credentials")
	ErrModelAlreadyExists = errors.New("registered model already exists")
)

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifact         = errors.New("artifact could not be read")
	ErrInvalidModelInfo = errors.New("model info requires run_id and model_path")
)

// ============================================================================
// Workflow Errors
// ============================================================================

var (
	ErrArchiveFailed       = errors.New("archiving previous production version failed")
	ErrRegistrationFailed  = errors.New("model version registration failed")
	ErrRegistrationTimeout = errors.New("timed out waiting for model version to become ready")
	ErrPredictor           = errors.New("model scoring request failed")
	ErrCheckFailed         = errors.New("evaluation check failed")
	ErrTransitionLogOff    = errors.New("transition log is not configured")
)
