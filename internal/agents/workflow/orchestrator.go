// Package workflow runs the idea pipeline: company research, idea research,
// resource estimation and question generation, strictly in that order.
package workflow

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"ideaforge/internal/domain/research"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// DefaultCompanyTimeout caps the company research stage
const DefaultCompanyTimeout = 120 * time.Second

type CompanyResearcher interface {
	Research(ctx context.Context, companyName string) *research.CompanyResearch
}

type IdeaResearcher interface {
	Research(ctx context.Context, title, description string) *research.IdeaResearch
}

type ResourceEstimator interface {
	Estimate(ctx context.Context, company, title, description string, cr *research.CompanyResearch, ir *research.IdeaResearch) *research.ResourceEstimate
}

type QuestionGenerator interface {
	Generate(ctx context.Context, company, title, description string, cr *research.CompanyResearch, ir *research.IdeaResearch) []research.Question
}

// EventPublisher announces completed runs
type EventPublisher interface {
	PublishWorkflowCompleted(ctx context.Context, r *workflow.Result) error
}

// Deps are the stage implementations. Store and Events may be nil.
type Deps struct {
	Company   CompanyResearcher
	Idea      IdeaResearcher
	Resources ResourceEstimator
	Questions QuestionGenerator
	Store     workflow.StateStore
	Events    EventPublisher
}

type Config struct {
	CompanyTimeout time.Duration
}

// Orchestrator is stateless between runs; one Run call owns its Result
type Orchestrator struct {
	deps           Deps
	companyTimeout time.Duration
	log            *logger.Logger
}

func NewOrchestrator(deps Deps, cfg Config) *Orchestrator {
	if cfg.CompanyTimeout <= 0 {
		cfg.CompanyTimeout = DefaultCompanyTimeout
	}
	return &Orchestrator{
		deps:           deps,
		companyTimeout: cfg.CompanyTimeout,
		log:            logger.Get().With("component", "workflow_orchestrator"),
	}
}

// Run executes the pipeline and halts at the first failing stage.
// The returned result is never nil; failures are recorded in its Errors.
func (o *Orchestrator) Run(ctx context.Context, company, title, description string, cb *workflow.Callbacks) *workflow.Result {
	if cb == nil {
		cb = &workflow.Callbacks{}
	}
	result := workflow.NewResult(company, title, description)
	ctx = workflow.ContextWithKey(ctx, result.Key())
	log := o.log.With("workflow", result.Key())

	log.Infow("starting workflow", "company", company, "title", title)
	defer func() {
		metrics.RecordWorkflow(result.Success && result.CurrentStep == workflow.StepCompleted, string(result.CurrentStep))
	}()

	// 1. company research
	ok := o.stage(ctx, result, workflow.StepCompanyResearch, "Company research", func() string {
		cr := o.researchCompany(ctx, company)
		if cr == nil || !cr.Success {
			msg := "Failed to research company."
			if cr != nil && cr.FailureReason() != "" {
				msg = cr.FailureReason()
			}
			return "Company Research Failed: " + msg
		}
		result.CompanyResearch = cr
		return ""
	})
	if !ok {
		return result
	}
	o.notify(log, cb.OnCompanyResearch, result)

	// 2. idea research
	ok = o.stage(ctx, result, workflow.StepIdeaResearch, "Idea research", func() string {
		ir := o.deps.Idea.Research(ctx, title, description)
		if ir == nil || !ir.Success {
			msg := "Failed to research idea."
			if ir != nil && ir.FailureReason() != "" {
				msg = ir.FailureReason()
			}
			return "Idea Research Failed: " + msg
		}
		result.IdeaResearch = ir
		return ""
	})
	if !ok {
		return result
	}
	o.notify(log, cb.OnIdeaResearch, result)

	// 3. resource estimation
	ok = o.stage(ctx, result, workflow.StepResourceEstimation, "Resource estimation", func() string {
		est := o.deps.Resources.Estimate(ctx, company, title, description, result.CompanyResearch, result.IdeaResearch)
		if est == nil || !est.Success {
			msg := "Failed to estimate resources."
			if est != nil && est.Error != "" {
				msg = est.Error
			}
			return "Resource Estimation Failed: " + msg
		}
		result.ResourceEstimation = est
		return ""
	})
	if !ok {
		return result
	}
	o.notify(log, cb.OnResourceEstimate, result)

	// 4. questions
	ok = o.stage(ctx, result, workflow.StepQuestionGeneration, "Question generation", func() string {
		qs := o.deps.Questions.Generate(ctx, company, title, description, result.CompanyResearch, result.IdeaResearch)
		if len(qs) == 0 {
			return "Failed to generate development questions"
		}
		result.DevelopmentQuestions = qs
		return ""
	})
	if !ok {
		return result
	}
	o.notify(log, cb.OnQuestions, result)

	result.Complete()
	o.persist(ctx, log, result)
	log.Infow("workflow completed", "questions", len(result.DevelopmentQuestions))
	return result
}

// stage advances the step, runs fn and records a failure when fn returns a message or panics
func (o *Orchestrator) stage(ctx context.Context, result *workflow.Result, step workflow.Step, label string, fn func() string) (ok bool) {
	result.Advance(step)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.log.Errorw("stage panicked", "step", step, "panic", r, "stack", string(debug.Stack()))
			result.Fail(fmt.Sprintf("%s error: %v", label, r))
			ok = false
		}
		metrics.RecordStage(string(step), time.Since(start), ok)
	}()

	if msg := fn(); msg != "" {
		o.log.Warnw("stage failed", "step", step, "error", msg, "workflow", workflow.KeyFromContext(ctx))
		result.Fail(msg)
		return false
	}
	return true
}

// researchCompany applies the hard timeout. A late result is discarded.
func (o *Orchestrator) researchCompany(parent context.Context, company string) *research.CompanyResearch {
	ctx, cancel := context.WithTimeout(parent, o.companyTimeout)
	defer cancel()

	type outcome struct {
		cr    *research.CompanyResearch
		panic any
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panic: r}
			}
		}()
		done <- outcome{cr: o.deps.Company.Research(ctx, company)}
	}()

	select {
	case out := <-done:
		if out.panic != nil {
			panic(out.panic)
		}
		return out.cr
	case <-ctx.Done():
		msg := "Company research timed out after " + humanDuration(o.companyTimeout)
		if parent.Err() != nil {
			msg = "Company research cancelled: " + parent.Err().Error()
		}
		o.log.Errorw("company research did not finish", "company", company, "reason", msg)
		return &research.CompanyResearch{Success: false, CompanyName: company, Error: msg}
	}
}

func (o *Orchestrator) notify(log *logger.Logger, fn func(*workflow.Result), result *workflow.Result) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warnw("stage callback panicked", "panic", r)
		}
	}()
	fn(result)
}

func (o *Orchestrator) persist(ctx context.Context, log *logger.Logger, result *workflow.Result) {
	if o.deps.Store != nil {
		if err := o.deps.Store.Save(ctx, result); err != nil {
			log.Warnf("failed to save workflow state: %v", err)
		}
	}
	if o.deps.Events != nil {
		if err := o.deps.Events.PublishWorkflowCompleted(ctx, result); err != nil {
			log.Warnf("failed to publish workflow event: %v", err)
		}
	}
}

// Load returns the last completed result saved for (company, title)
func (o *Orchestrator) Load(ctx context.Context, company, title string) (*workflow.Result, error) {
	if o.deps.Store == nil {
		return nil, errors.Wrap(errors.ErrUnavailable, "no workflow state store configured")
	}
	result, err := o.deps.Store.Load(ctx, workflow.Key(company, title))
	if err != nil {
		return nil, errors.Wrapf(err, "load workflow %s", workflow.Key(company, title))
	}
	return result, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
