package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/testsupport"
)

// IdeaBuilder provides a fluent API for creating Idea entities
type IdeaBuilder struct {
	db     DBTX
	ctx    context.Context
	entity *idea.Idea
}

// NewIdeaBuilder creates a builder with a submitted, unscored idea
func NewIdeaBuilder(db DBTX, ctx context.Context) *IdeaBuilder {
	now := time.Now().UTC()
	return &IdeaBuilder{
		db:  db,
		ctx: ctx,
		entity: &idea.Idea{
			ID:             uuid.New(),
			SessionID:      testsupport.UniqueSessionID(),
			Title:          testsupport.UniqueName("Idea"),
			OriginalIdea:   "Automate a manual process",
			Department:     idea.DefaultDepartment,
			Status:         idea.StatusSubmitted,
			AIStrengths:    []string{},
			AIImprovements: []string{},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func (b *IdeaBuilder) WithTitle(title string) *IdeaBuilder {
	b.entity.Title = title
	return b
}

func (b *IdeaBuilder) WithDepartment(dept string) *IdeaBuilder {
	b.entity.Department = dept
	return b
}

func (b *IdeaBuilder) WithScore(score int) *IdeaBuilder {
	b.entity.AIScore = &score
	return b
}

func (b *IdeaBuilder) WithStatus(status idea.Status) *IdeaBuilder {
	b.entity.Status = status
	return b
}

func (b *IdeaBuilder) WithResearch(data *idea.ResearchData) *IdeaBuilder {
	b.entity.ResearchData = data
	return b
}

// WithCreatedAt sets both timestamps
func (b *IdeaBuilder) WithCreatedAt(at time.Time) *IdeaBuilder {
	b.entity.CreatedAt = at
	b.entity.UpdatedAt = at
	return b
}

// Build returns the built entity without inserting to DB
func (b *IdeaBuilder) Build() *idea.Idea {
	return b.entity
}

// Insert writes the idea and returns it
func (b *IdeaBuilder) Insert() (*idea.Idea, error) {
	e := b.entity

	var research []byte
	if !e.ResearchData.Empty() {
		data, err := json.Marshal(e.ResearchData)
		if err != nil {
			return nil, fmt.Errorf("marshal research_data: %w", err)
		}
		research = data
	}

	query := `
		INSERT INTO ideas (
			id, session_id, title, original_idea, department, ai_score, research_data,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := b.db.ExecContext(b.ctx, query,
		e.ID, e.SessionID, e.Title, e.OriginalIdea, e.Department, e.AIScore, research,
		e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert idea: %w", err)
	}
	return e, nil
}

// MustInsert inserts and panics on error
func (b *IdeaBuilder) MustInsert() *idea.Idea {
	e, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return e
}
