package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

const schema = `
	CREATE TABLE IF NOT EXISTS stage_transition (
		id          UUID PRIMARY KEY,
		model_name  TEXT        NOT NULL,
		version     INTEGER     NOT NULL,
		from_stage  TEXT        NOT NULL,
		to_stage    TEXT        NOT NULL,
		action      TEXT        NOT NULL,
		request_id  TEXT        NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS stage_transition_model_created_idx
		ON stage_transition (model_name, created_at DESC);
`

type transitionRepo struct {
	pool *pgxpool.Pool
}

func NewTransitionRepository(pool *pgxpool.Pool) ports.TransitionRepository {
	return &transitionRepo{pool: pool}
}

// EnsureSchema creates the audit table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure stage_transition schema: %w", err)
	}
	return nil
}

func (r *transitionRepo) Record(ctx context.Context, t *domain.StageTransition) error {
	query := `
		INSERT INTO stage_transition
			(id, model_name, version, from_stage, to_stage, action, request_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.ModelName, t.Version,
		string(t.FromStage), string(t.ToStage), string(t.Action),
		t.RequestID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record stage transition: %w", err)
	}
	return nil
}

func (r *transitionRepo) ListByModel(ctx context.Context, filter ports.TransitionListFilter) ([]*domain.StageTransition, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM stage_transition WHERE model_name = $1`
	if err := r.pool.QueryRow(ctx, countQuery, filter.ModelName).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stage transitions: %w", err)
	}

	query := `
		SELECT id, model_name, version, from_stage, to_stage, action, request_id, created_at
		FROM stage_transition
		WHERE model_name = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.ModelName, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stage transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*domain.StageTransition
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stage transition: %w", err)
		}
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate stage transitions: %w", err)
	}

	return transitions, total, nil
}

func scanTransition(row pgx.Row) (*domain.StageTransition, error) {
	var t domain.StageTransition
	var from, to, action string
	err := row.Scan(&t.ID, &t.ModelName, &t.Version, &from, &to, &action, &t.RequestID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.FromStage = domain.Stage(from)
	t.ToStage = domain.Stage(to)
	t.Action = domain.TransitionAction(action)
	return &t, nil
}
