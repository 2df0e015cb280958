package research

import "time"

type Implementer struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type ProsCons struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

type Insight struct {
	Type    string `json:"type"`
	Insight string `json:"insight"`
	Details string `json:"details"`
	Source  string `json:"source"`
}

type ImplementationMetrics struct {
	ImplementationTimelines []string `json:"implementation_timelines"`
	ScaleMetrics            []string `json:"scale_metrics"`
	AdoptionRates           []string `json:"adoption_rates"`
	TechnologyMaturity      []string `json:"technology_maturity"`
}

// Verdict values
const (
	VerdictWorkable        = "WORKABLE"
	VerdictNotWorkable     = "NOT WORKABLE"
	VerdictNeedsValidation = "NEEDS VALIDATION"
)

// Confidence labels
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

type Workability struct {
	IsWorkable             bool     `json:"is_workable"`
	Confidence             string   `json:"confidence"`
	Verdict                string   `json:"verdict"`
	Reasoning              string   `json:"reasoning"`
	SimilarImplementations []string `json:"similar_implementations"`
	KeyChallenges          []string `json:"key_challenges"`
	SuccessFactors         []string `json:"success_factors"`
}

type POCApproach struct {
	ApproachName         string   `json:"approach_name"`
	Description          string   `json:"description"`
	ToolsAndTechnologies []string `json:"tools_and_technologies"`
	Architecture         string   `json:"architecture"`
	Pros                 []string `json:"pros"`
	Cons                 []string `json:"cons"`
	Complexity           string   `json:"complexity"`
	BestFor              string   `json:"best_for"`
}

type Improvements struct {
	OverallRecommendation string   `json:"overall_recommendation"`
	DoThisInstead         []string `json:"do_this_instead"`
	AddTheseFeatures      []string `json:"add_these_features"`
	LearnFromOthers       []string `json:"learn_from_others"`
	QuickWins             []string `json:"quick_wins"`
	AvoidTheseMistakes    []string `json:"avoid_these_mistakes"`
	DifferentiationTips   []string `json:"differentiation_tips"`
}

// IdeaSource is an attribution entry gathered from market research findings
type IdeaSource struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	DateAccessed string `json:"date_accessed"`
}

// IdeaResearch is the result of the idea research stage
type IdeaResearch struct {
	Success               bool                  `json:"success"`
	Error                 string                `json:"error,omitempty"`
	IdeaTitle             string                `json:"idea_title"`
	ResearchTimestamp     time.Time             `json:"research_timestamp"`
	WhoIsImplementing     []Implementer         `json:"who_is_implementing"`
	ProsAndCons           ProsCons              `json:"pros_and_cons"`
	UsefulInsights        []Insight             `json:"useful_insights"`
	ImplementationMetrics ImplementationMetrics `json:"implementation_metrics"`
	Workability           Workability           `json:"workability_assessment"`
	POCApproaches         []POCApproach         `json:"poc_approaches"`
	Improvements          Improvements          `json:"improvement_suggestions"`
	Sources               []IdeaSource          `json:"sources"`
}

func (r *IdeaResearch) FailureReason() string {
	return r.Error
}
