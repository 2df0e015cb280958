package idea

import (
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/domain/research"
)

// Status of an idea in the review lifecycle
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusImplemented Status = "implemented"
	StatusCompleted   Status = "completed"
	StatusInProgress  Status = "in_progress"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected,
		StatusImplemented, StatusCompleted, StatusInProgress:
		return true
	}
	return false
}

// Departments an idea may be filed under
var Departments = []string{
	"Engineering", "Manufacturing", "Sales", "Marketing", "Finance",
	"Human Resources", "IT", "Operations", "Supply Chain", "Other",
}

// DefaultDepartment is used when none was declared
const DefaultDepartment = "General"

// ResearchData is the research attached to a saved idea
type ResearchData struct {
	CompanyResearch    *research.CompanyResearch  `json:"company_research,omitempty"`
	IdeaResearch       *research.IdeaResearch     `json:"idea_research,omitempty"`
	ResourceEstimation *research.ResourceEstimate `json:"resource_estimation,omitempty"`
}

// Empty reports whether no research record is attached
func (r *ResearchData) Empty() bool {
	return r == nil || (r.CompanyResearch == nil && r.IdeaResearch == nil && r.ResourceEstimation == nil)
}

// Idea is a saved catalog entry
type Idea struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	SessionID        string        `db:"session_id" json:"session_id"`
	Title            string        `db:"title" json:"title"`
	OriginalIdea     string        `db:"original_idea" json:"original_idea"`
	RephrasedIdea    string        `db:"rephrased_idea" json:"rephrased_idea"`
	SubmittedBy      string        `db:"submitted_by" json:"submitted_by"`
	Department       string        `db:"department" json:"department"`
	AIScore          *int          `db:"ai_score" json:"ai_score"`
	AIFeedback       string        `db:"ai_feedback" json:"ai_feedback"`
	AIStrengths      []string      `db:"-" json:"ai_strengths"`
	AIImprovements   []string      `db:"-" json:"ai_improvements"`
	ResearchData     *ResearchData `db:"-" json:"research_data,omitempty"`
	Status           Status        `db:"status" json:"status"`
	ReviewerFeedback string        `db:"reviewer_feedback" json:"reviewer_feedback"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// DepartmentOrDefault returns the declared department or "General"
func (i *Idea) DepartmentOrDefault() string {
	if i.Department == "" {
		return DefaultDepartment
	}
	return i.Department
}

// ApplyScore copies an AI evaluation onto the idea
func (i *Idea) ApplyScore(s *research.Score) {
	if s == nil || !s.Success {
		return
	}
	score := s.Score
	i.AIScore = &score
	i.AIFeedback = s.Feedback
	i.AIStrengths = s.Strengths
	i.AIImprovements = s.Improvements
}

// ValidDepartment reports whether name is one of Departments or the default
func ValidDepartment(name string) bool {
	if name == DefaultDepartment {
		return true
	}
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
