package workflow

import "context"

// StateStore persists completed workflow results keyed by Key(company, title).
// Save overwrites, last write wins.
type StateStore interface {
	Save(ctx context.Context, result *Result) error
	Load(ctx context.Context, key string) (*Result, error)
}

// Callbacks observe stage completions. Any of them may be nil.
type Callbacks struct {
	OnCompanyResearch  func(*Result)
	OnIdeaResearch     func(*Result)
	OnResourceEstimate func(*Result)
	OnQuestions        func(*Result)
}

// CompletedEvent is published after a run reaches the completed step
type CompletedEvent struct {
	Key           string `json:"key"`
	CompanyName   string `json:"company_name"`
	IdeaTitle     string `json:"idea_title"`
	QuestionCount int    `json:"question_count"`
	TeamRoles     int    `json:"team_roles"`
	Workable      string `json:"workability_verdict"`
	CompletedAt   int64  `json:"completed_at"`
}

type ctxKey struct{}

// ContextWithKey tags ctx with the workflow key for logging, usage records and error tracking
func ContextWithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// KeyFromContext returns the workflow key attached to ctx, or ""
func KeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(ctxKey{}).(string)
	return key
}
