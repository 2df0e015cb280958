// Package submission runs the research workflow for a submitted idea and,
// when the submission carries a session id, scores it and saves it to the catalog.
package submission

import (
	"context"
	"strings"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/domain/workflow"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// Runner executes the research pipeline
type Runner interface {
	Run(ctx context.Context, company, title, description string, cb *workflow.Callbacks) *workflow.Result
}

// Scorer evaluates an idea with its research attached
type Scorer interface {
	Score(ctx context.Context, i *idea.Idea) *research.Score
}

// Catalog saves ideas keyed by session id
type Catalog interface {
	Save(ctx context.Context, i *idea.Idea) (*idea.Idea, error)
}

type Request struct {
	CompanyName     string `json:"company_name"`
	IdeaTitle       string `json:"idea_title"`
	IdeaDescription string `json:"idea_description"`
	SessionID       string `json:"session_id,omitempty"`
	SubmittedBy     string `json:"submitted_by,omitempty"`
	Department      string `json:"department,omitempty"`
}

// Validate rejects requests the pipeline cannot key
func (r Request) Validate() error {
	var errs errors.MultiError
	if strings.TrimSpace(r.CompanyName) == "" {
		errs.Add(errors.NewValidationError("company_name", "is required", r.CompanyName))
	}
	if strings.TrimSpace(r.IdeaTitle) == "" {
		errs.Add(errors.NewValidationError("idea_title", "is required", r.IdeaTitle))
	}
	if r.Department != "" && !idea.ValidDepartment(r.Department) {
		errs.Add(errors.NewValidationError("department", "unknown department", r.Department))
	}
	return errs.ToError()
}

// Outcome is the workflow result plus the saved idea and its score when the
// submission was cataloged
type Outcome struct {
	Result *workflow.Result `json:"workflow"`
	Idea   *idea.Idea       `json:"idea,omitempty"`
	Score  *research.Score  `json:"score,omitempty"`
}

type Service struct {
	runner  Runner
	scorer  Scorer  // optional
	catalog Catalog // optional
	log     *logger.Logger
}

func NewService(runner Runner, scorer Scorer, catalog Catalog) *Service {
	return &Service{
		runner:  runner,
		scorer:  scorer,
		catalog: catalog,
		log:     logger.Get().With("component", "submission"),
	}
}

// Submit runs the workflow. A failed run is returned as an Outcome, not an
// error; errors are reserved for invalid requests and catalog failures.
func (s *Service) Submit(ctx context.Context, req Request, cb *workflow.Callbacks) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := s.runner.Run(ctx, req.CompanyName, req.IdeaTitle, req.IdeaDescription, cb)
	out := &Outcome{Result: result}
	if req.SessionID == "" || s.catalog == nil {
		return out, nil
	}

	entry := &idea.Idea{
		SessionID:    req.SessionID,
		Title:        req.IdeaTitle,
		OriginalIdea: req.IdeaDescription,
		SubmittedBy:  req.SubmittedBy,
		Department:   req.Department,
		Status:       idea.StatusSubmitted,
		ResearchData: researchData(result),
	}

	if s.scorer != nil && result.Success {
		out.Score = s.scorer.Score(ctx, entry)
		if out.Score.Success {
			entry.ApplyScore(out.Score)
		} else {
			s.log.Warnw("Idea scoring failed", "session_id", req.SessionID, "error", out.Score.Error)
		}
	}

	saved, err := s.catalog.Save(ctx, entry)
	if err != nil {
		return out, errors.Wrap(err, "catalog idea")
	}
	out.Idea = saved
	return out, nil
}

// researchData keeps only the successful stages
func researchData(r *workflow.Result) *idea.ResearchData {
	rd := &idea.ResearchData{}
	if r.CompanyResearch != nil && r.CompanyResearch.Success {
		rd.CompanyResearch = r.CompanyResearch
	}
	if r.IdeaResearch != nil && r.IdeaResearch.Success {
		rd.IdeaResearch = r.IdeaResearch
	}
	if r.ResourceEstimation != nil && r.ResourceEstimation.Success {
		rd.ResourceEstimation = r.ResourceEstimation
	}
	if rd.Empty() {
		return nil
	}
	return rd
}
