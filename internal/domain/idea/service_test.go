package idea

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/domain/research"
	"ideaforge/pkg/errors"
)

type fakeRepo struct {
	ideas map[string]*Idea
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{ideas: map[string]*Idea{}}
}

func (f *fakeRepo) Upsert(ctx context.Context, idea *Idea) error {
	cp := *idea
	f.ideas[idea.SessionID] = &cp
	return nil
}

func (f *fakeRepo) GetBySession(ctx context.Context, sessionID string) (*Idea, error) {
	idea, ok := f.ideas[sessionID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *idea
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, limit int) ([]Idea, error) {
	out := make([]Idea, 0, len(f.ideas))
	for _, i := range f.ideas {
		out = append(out, *i)
	}
	return out, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status Status, limit int) ([]Idea, error) {
	var out []Idea
	for _, i := range f.ideas {
		if i.Status == status {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, sessionID string, status Status, feedback string) error {
	idea, ok := f.ideas[sessionID]
	if !ok {
		return errors.ErrNotFound
	}
	idea.Status = status
	if feedback != "" {
		idea.ReviewerFeedback = feedback
	}
	return nil
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Save(ctx, &Idea{SessionID: "s-1", Title: "Inventory bot"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusSubmitted, created.Status)
	assert.Equal(t, DefaultDepartment, created.Department)

	firstID, firstCreated := created.ID, created.CreatedAt
	time.Sleep(time.Millisecond)

	updated, err := svc.Save(ctx, &Idea{SessionID: "s-1", Title: "Inventory bot v2", Department: "IT"})
	require.NoError(t, err)
	assert.Equal(t, firstID, updated.ID)
	assert.Equal(t, firstCreated, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(firstCreated))
	assert.Len(t, repo.ideas, 1)
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	bad := 120

	tests := []struct {
		name  string
		idea  *Idea
		field string
	}{
		{"missing session", &Idea{Title: "x"}, "session_id"},
		{"missing title", &Idea{SessionID: "s"}, "title"},
		{"score out of range", &Idea{SessionID: "s", Title: "x", AIScore: &bad}, "ai_score"},
		{"unknown status", &Idea{SessionID: "s", Title: "x", Status: "archived"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.idea)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput))
			var ve *errors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestReviewAndComplete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, &Idea{SessionID: "s-2", Title: "Claims triage"})
	require.NoError(t, err)

	require.NoError(t, svc.Review(ctx, "s-2", StatusApproved, "go ahead"))
	require.NoError(t, svc.MarkCompleted(ctx, "s-2"))

	got, err := svc.GetBySession(ctx, "s-2")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "go ahead", got.ReviewerFeedback)

	approved, err := svc.ListByStatus(ctx, StatusApproved, 0)
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestApplyScore(t *testing.T) {
	var i Idea
	i.ApplyScore(&research.Score{Success: false, Score: 90})
	assert.Nil(t, i.AIScore)

	i.ApplyScore(&research.Score{Success: true, Score: 72, Feedback: "solid", Strengths: []string{"clear"}})
	require.NotNil(t, i.AIScore)
	assert.Equal(t, 72, *i.AIScore)
	assert.Equal(t, []string{"clear"}, i.AIStrengths)
}

func TestResearchDataEmpty(t *testing.T) {
	var rd *ResearchData
	assert.True(t, rd.Empty())
	assert.True(t, (&ResearchData{}).Empty())
	assert.False(t, (&ResearchData{IdeaResearch: &research.IdeaResearch{}}).Empty())
}
