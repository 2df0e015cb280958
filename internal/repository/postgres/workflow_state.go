package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ideaforge/internal/domain/workflow"
	"ideaforge/pkg/errors"
)

var _ workflow.StateStore = (*WorkflowStateRepository)(nil)

// WorkflowStateRepository stores the latest result per workflow key as JSONB
type WorkflowStateRepository struct {
	db DBTX
}

func NewWorkflowStateRepository(db DBTX) *WorkflowStateRepository {
	return &WorkflowStateRepository{db: db}
}

// Save overwrites the state stored under the result's key
func (r *WorkflowStateRepository) Save(ctx context.Context, result *workflow.Result) error {
	if result == nil {
		return errors.ErrInvalidInput
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal workflow state")
	}

	query := `
		INSERT INTO workflow_states (state_key, company_name, idea_title, current_step, success, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (state_key) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			idea_title = EXCLUDED.idea_title,
			current_step = EXCLUDED.current_step,
			success = EXCLUDED.success,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		workflow.Key(result.CompanyName, result.IdeaTitle),
		result.CompanyName, result.IdeaTitle, result.CurrentStep, result.Success,
		payload, time.Now().UTC(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to save workflow state")
	}
	return nil
}

// Load returns the state stored under key
func (r *WorkflowStateRepository) Load(ctx context.Context, key string) (*workflow.Result, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM workflow_states WHERE state_key = $1`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "workflow state not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load workflow state")
	}

	var result workflow.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal workflow state")
	}
	return &result, nil
}
