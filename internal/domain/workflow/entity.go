package workflow

import (
	"strings"
	"time"

	"ideaforge/internal/domain/research"
)

// Step is a position in the fixed pipeline
type Step string

const (
	StepNotStarted         Step = "not_started"
	StepCompanyResearch    Step = "company_research"
	StepIdeaResearch       Step = "idea_research"
	StepResourceEstimation Step = "resource_estimation"
	StepQuestionGeneration Step = "question_generation"
	StepCompleted          Step = "completed"
)

var stepOrder = map[Step]int{
	StepNotStarted:         0,
	StepCompanyResearch:    1,
	StepIdeaResearch:       2,
	StepResourceEstimation: 3,
	StepQuestionGeneration: 4,
	StepCompleted:          5,
}

// Ordinal returns the position of s in the pipeline, -1 for unknown steps
func (s Step) Ordinal() int {
	if n, ok := stepOrder[s]; ok {
		return n
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Ordinal() >= 0
}

// Result is the record of one workflow run
type Result struct {
	Success              bool                       `json:"success"`
	CompanyName          string                     `json:"company_name"`
	IdeaTitle            string                     `json:"idea_title"`
	IdeaDescription      string                     `json:"idea_description"`
	CurrentStep          Step                       `json:"current_step"`
	CompanyResearch      *research.CompanyResearch  `json:"company_research"`
	IdeaResearch         *research.IdeaResearch     `json:"idea_research"`
	ResourceEstimation   *research.ResourceEstimate `json:"resource_estimation"`
	DevelopmentQuestions []research.Question        `json:"development_questions"`
	Errors               []string                   `json:"errors"`
	StartedAt            time.Time                  `json:"started_at"`
	CompletedAt          *time.Time                 `json:"completed_at,omitempty"`
}

// NewResult creates a result in the not_started step
func NewResult(company, title, description string) *Result {
	return &Result{
		Success:         true,
		CompanyName:     company,
		IdeaTitle:       title,
		IdeaDescription: description,
		CurrentStep:     StepNotStarted,
		Errors:          []string{},
		StartedAt:       time.Now().UTC(),
	}
}

// Key returns the persistence key for this run
func (r *Result) Key() string {
	return Key(r.CompanyName, r.IdeaTitle)
}

// Halted reports whether an error stopped the pipeline
func (r *Result) Halted() bool {
	return len(r.Errors) > 0
}

// Key normalizes (company, title) into "<company>_<title>", lowercased with spaces as underscores
func Key(company, title string) string {
	return normalize(company) + "_" + normalize(title)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Advance moves the run to s. Steps never move backwards.
func (r *Result) Advance(s Step) {
	if s.Ordinal() > r.CurrentStep.Ordinal() {
		r.CurrentStep = s
	}
}

// Fail records a stage failure and marks the run unsuccessful
func (r *Result) Fail(message string) {
	r.Success = false
	r.Errors = append(r.Errors, message)
}

// Complete moves the run to the completed step
func (r *Result) Complete() {
	r.Advance(StepCompleted)
	now := time.Now().UTC()
	r.CompletedAt = &now
}
