package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/services/portfolio"
	"ideaforge/internal/services/submission"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

type Submitter interface {
	Submit(ctx context.Context, req submission.Request, cb *workflow.Callbacks) (*submission.Outcome, error)
}

type WorkflowLoader interface {
	Load(ctx context.Context, company, title string) (*workflow.Result, error)
}

type PortfolioAnalyzer interface {
	Analyze(ctx context.Context) (*portfolio.Analytics, error)
}

type IdeaCatalog interface {
	GetBySession(ctx context.Context, sessionID string) (*idea.Idea, error)
	List(ctx context.Context, limit int) ([]idea.Idea, error)
	ListByStatus(ctx context.Context, status idea.Status, limit int) ([]idea.Idea, error)
	Review(ctx context.Context, sessionID string, status idea.Status, feedback string) error
}

// Handlers serves the workflow, portfolio and idea endpoints
type Handlers struct {
	submitter Submitter
	workflows WorkflowLoader
	portfolio PortfolioAnalyzer
	ideas     IdeaCatalog
	log       *logger.Logger
}

func NewHandlers(submitter Submitter, workflows WorkflowLoader, analyzer PortfolioAnalyzer, ideas IdeaCatalog) *Handlers {
	return &Handlers{
		submitter: submitter,
		workflows: workflows,
		portfolio: analyzer,
		ideas:     ideas,
		log:       logger.Get().With("component", "api"),
	}
}

// Register mounts the routes on mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/workflows", h.SubmitWorkflow)
	mux.HandleFunc("GET /api/workflows", h.GetWorkflow)
	mux.HandleFunc("GET /api/portfolio", h.GetPortfolio)
	mux.HandleFunc("GET /api/ideas", h.ListIdeas)
	mux.HandleFunc("GET /api/ideas/{session_id}", h.GetIdea)
	mux.HandleFunc("POST /api/ideas/{session_id}/review", h.ReviewIdea)
}

// SubmitWorkflow runs the full pipeline synchronously. A failed run still
// answers 200 with success=false in the body.
func (h *Handlers) SubmitWorkflow(w http.ResponseWriter, r *http.Request) {
	var req submission.Request
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.submitter.Submit(r.Context(), req, nil)
	if err != nil {
		if out != nil {
			h.log.Errorw("Workflow finished but idea was not cataloged", "session_id", req.SessionID, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if company == "" || title == "" {
		writeError(w, errors.NewValidationError("company,title", "both query parameters are required", company+"/"+title))
		return
	}

	result, err := h.workflows.Load(r.Context(), company, title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.portfolio.Analyze(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handlers) ListIdeas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errors.NewValidationError("limit", "must be a non-negative integer", raw))
			return
		}
		limit = n
	}

	var (
		ideas []idea.Idea
		err   error
	)
	if status := q.Get("status"); status != "" {
		ideas, err = h.ideas.ListByStatus(r.Context(), idea.Status(status), limit)
	} else {
		ideas, err = h.ideas.List(r.Context(), limit)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas, "count": len(ideas)})
}

func (h *Handlers) GetIdea(w http.ResponseWriter, r *http.Request) {
	found, err := h.ideas.GetBySession(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

type reviewRequest struct {
	Status   idea.Status `json:"status"`
	Feedback string      `json:"feedback"`
}

func (h *Handlers) ReviewIdea(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sessionID := r.PathValue("session_id")
	if err := h.ideas.Review(r.Context(), sessionID, req.Status, req.Feedback); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "status": req.Status})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "decode request body: %v", err)
	}
	return nil
}
