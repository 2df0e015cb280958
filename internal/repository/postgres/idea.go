package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"ideaforge/internal/domain/idea"
	"ideaforge/pkg/errors"
)

// Compile-time check that we implement the interface
var _ idea.Repository = (*IdeaRepository)(nil)

// IdeaRepository implements idea.Repository using sqlx
type IdeaRepository struct {
	db DBTX
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(db DBTX) *IdeaRepository {
	return &IdeaRepository{db: db}
}

const ideaColumns = `
	id, session_id, title, original_idea, rephrased_idea, submitted_by, department,
	ai_score, ai_feedback, ai_strengths, ai_improvements, research_data,
	status, reviewer_feedback, created_at, updated_at`

// ideaRow carries the JSONB columns as raw bytes
type ideaRow struct {
	idea.Idea
	StrengthsJSON    []byte `db:"ai_strengths"`
	ImprovementsJSON []byte `db:"ai_improvements"`
	ResearchJSON     []byte `db:"research_data"`
}

func (row *ideaRow) decode() (*idea.Idea, error) {
	out := row.Idea
	out.AIStrengths = []string{}
	out.AIImprovements = []string{}
	if len(row.StrengthsJSON) > 0 {
		if err := json.Unmarshal(row.StrengthsJSON, &out.AIStrengths); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal ai_strengths")
		}
	}
	if len(row.ImprovementsJSON) > 0 {
		if err := json.Unmarshal(row.ImprovementsJSON, &out.AIImprovements); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal ai_improvements")
		}
	}
	if len(row.ResearchJSON) > 0 && string(row.ResearchJSON) != "null" {
		out.ResearchData = &idea.ResearchData{}
		if err := json.Unmarshal(row.ResearchJSON, out.ResearchData); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal research_data")
		}
	}
	return &out, nil
}

// Upsert inserts the idea or updates the row with the same session id
func (r *IdeaRepository) Upsert(ctx context.Context, i *idea.Idea) error {
	strengths, err := json.Marshal(nonNil(i.AIStrengths))
	if err != nil {
		return errors.Wrap(err, "failed to marshal ai_strengths")
	}
	improvements, err := json.Marshal(nonNil(i.AIImprovements))
	if err != nil {
		return errors.Wrap(err, "failed to marshal ai_improvements")
	}
	var researchJSON []byte
	if !i.ResearchData.Empty() {
		if researchJSON, err = json.Marshal(i.ResearchData); err != nil {
			return errors.Wrap(err, "failed to marshal research_data")
		}
	}

	query := `
		INSERT INTO ideas (` + ideaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (session_id) DO UPDATE SET
			title = EXCLUDED.title,
			original_idea = EXCLUDED.original_idea,
			rephrased_idea = EXCLUDED.rephrased_idea,
			submitted_by = EXCLUDED.submitted_by,
			department = EXCLUDED.department,
			ai_score = EXCLUDED.ai_score,
			ai_feedback = EXCLUDED.ai_feedback,
			ai_strengths = EXCLUDED.ai_strengths,
			ai_improvements = EXCLUDED.ai_improvements,
			research_data = EXCLUDED.research_data,
			status = EXCLUDED.status,
			reviewer_feedback = EXCLUDED.reviewer_feedback,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		i.ID, i.SessionID, i.Title, i.OriginalIdea, i.RephrasedIdea, i.SubmittedBy, i.Department,
		i.AIScore, i.AIFeedback, strengths, improvements, researchJSON,
		i.Status, i.ReviewerFeedback, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to upsert idea")
	}
	return nil
}

// GetBySession retrieves an idea by its session id
func (r *IdeaRepository) GetBySession(ctx context.Context, sessionID string) (*idea.Idea, error) {
	var row ideaRow
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE session_id = $1`

	err := r.db.GetContext(ctx, &row, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "idea not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get idea")
	}
	return row.decode()
}

// List returns the newest ideas first
func (r *IdeaRepository) List(ctx context.Context, limit int) ([]idea.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas ORDER BY created_at DESC LIMIT $1`
	return r.selectIdeas(ctx, query, limit)
}

// ListByStatus returns the newest ideas in status first
func (r *IdeaRepository) ListByStatus(ctx context.Context, status idea.Status, limit int) ([]idea.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
	return r.selectIdeas(ctx, query, status, limit)
}

func (r *IdeaRepository) selectIdeas(ctx context.Context, query string, args ...interface{}) ([]idea.Idea, error) {
	var rows []ideaRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list ideas")
	}

	ideas := make([]idea.Idea, 0, len(rows))
	for k := range rows {
		i, err := rows[k].decode()
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *i)
	}
	return ideas, nil
}

// UpdateStatus sets the status and, when non-empty, the reviewer feedback
func (r *IdeaRepository) UpdateStatus(ctx context.Context, sessionID string, status idea.Status, feedback string) error {
	query := `
		UPDATE ideas
		SET status = $2,
			reviewer_feedback = CASE WHEN $3 = '' THEN reviewer_feedback ELSE $3 END,
			updated_at = NOW()
		WHERE session_id = $1`

	res, err := r.db.ExecContext(ctx, query, sessionID, status, feedback)
	if err != nil {
		return errors.Wrap(err, "failed to update idea status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.Wrap(errors.ErrNotFound, "idea not found")
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
