package domain

import (
	"fmt"
	"strings"
)

// Stage is the lifecycle label the registry attaches to a model version.
type Stage string

const (
	StageNone       Stage = "None"
	StageStaging    Stage = "Staging"
	StageProduction Stage = "Production"
	StageArchived   Stage = "Archived"
)

var stagesByKey = map[string]Stage{
	"none":       StageNone,
	"staging":    StageStaging,
	"production": StageProduction,
	"archived":   StageArchived,
}

// ParseStage accepts any casing of the four registry stages.
func ParseStage(s string) (Stage, error) {
	st, ok := stagesByKey[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}
	return st, nil
}

// IsValid accepts only the canonical spelling sent to the registry.
func (s Stage) IsValid() bool {
	switch s {
	case StageNone, StageStaging, StageProduction, StageArchived:
		return true
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}

// StagePriority is the order in which stages are probed when looking for
// the current version of a model.
type StagePriority []Stage

var (
	// PromotionPriority picks the newest candidate for promotion: a version
	// waiting in Staging, then an unstaged one, then the live one.
	PromotionPriority = StagePriority{StageStaging, StageNone, StageProduction}

	// EvaluationPriority picks the model that is actually serving.
	EvaluationPriority = StagePriority{StageProduction, StageStaging, StageNone}
)

// ParseStagePriority parses a comma separated list such as
// "Staging,None,Production". The keywords "promotion" and "evaluation"
// select the named defaults.
func ParseStagePriority(s string) (StagePriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "promotion":
		return append(StagePriority(nil), PromotionPriority...), nil
	case "evaluation":
		return append(StagePriority(nil), EvaluationPriority...), nil
	}

	var p StagePriority
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := ParseStage(part)
		if err != nil {
			return nil, err
		}
		p = append(p, st)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate rejects empty lists and repeated stages.
func (p StagePriority) Validate() error {
	if len(p) == 0 {
		return ErrInvalidStagePriority
	}
	seen := make(map[Stage]bool, len(p))
	for _, st := range p {
		if !st.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStage, st)
		}
		if seen[st] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidStagePriority, st)
		}
		seen[st] = true
	}
	return nil
}

func (p StagePriority) String() string {
	parts := make([]string, len(p))
	for i, st := range p {
		parts[i] = string(st)
	}
	return strings.Join(parts, ",")
}
