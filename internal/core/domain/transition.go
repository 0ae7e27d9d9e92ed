package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransitionAction string

const (
	TransitionActionRegister TransitionAction = "register"
	TransitionActionArchive  TransitionAction = "archive"
	TransitionActionPromote  TransitionAction = "promote"
)

// StageTransition is an audit record of a stage change requested by this
// service.
type StageTransition struct {
	ID        uuid.UUID        `json:"id"`
	ModelName string           `json:"model_name"`
	Version   int              `json:"version"`
	FromStage Stage            `json:"from_stage"`
	ToStage   Stage            `json:"to_stage"`
	Action    TransitionAction `json:"action"`
	RequestID string           `json:"request_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewStageTransition(name string, version int, from, to Stage, action TransitionAction, requestID string) *StageTransition {
	return &StageTransition{
		ID:        uuid.New(),
		ModelName: name,
		Version:   version,
		FromStage: from,
		ToStage:   to,
		Action:    action,
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}
}

// ArchiveFailure records a Production version that could not be archived
// during a best-effort promotion.
type ArchiveFailure struct {
	Version int    `json:"version"`
	Error   string `json:"error"`
}

type PromotionResult struct {
	ModelName       string           `json:"model_name"`
	Version         int              `json:"version"`
	PreviousStage   Stage            `json:"previous_stage"`
	Archived        []int            `json:"archived"`
	ArchiveFailures []ArchiveFailure `json:"archive_failures,omitempty"`
}
