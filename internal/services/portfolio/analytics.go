package portfolio

// Analytics is the portfolio view derived from the saved ideas
type Analytics struct {
	Summary           Summary                `json:"summary"`
	Clusters          []Cluster              `json:"clusters"`
	DepartmentHeatmap map[string]HeatmapCell `json:"department_heatmap"`
	Projections       []Projection           `json:"budget_roi_projections"`
	RiskDistribution  RiskDistribution       `json:"risk_distribution"`
	Timeline          TimelineAnalysis       `json:"timeline_analysis"`
	Recommendations   []Recommendation       `json:"recommendations"`
}

type Summary struct {
	TotalIdeas          int            `json:"total_ideas"`
	TotalDepartments    int            `json:"total_departments"`
	Departments         []string       `json:"departments_list"`
	AvgScore            float64        `json:"avg_score"`
	ApprovalRate        float64        `json:"approval_rate"`
	EstimatedTotalValue float64        `json:"estimated_total_value"`
	IdeasByStatus       map[string]int `json:"ideas_by_status"`
	HighPotentialCount  int            `json:"high_potential_count"`
}

// Cluster types
const (
	ClusterDomain = "domain"
	ClusterImpact = "impact"
	ClusterRisk   = "risk"
)

type ClusterMember struct {
	Title  string `json:"title"`
	Score  *int   `json:"score"`
	Status string `json:"status"`
}

type Cluster struct {
	Type            string          `json:"cluster_type"`
	Name            string          `json:"name"`
	IdeaCount       int             `json:"idea_count"`
	AvgScore        float64         `json:"avg_score"`
	Ideas           []ClusterMember `json:"ideas"`
	HealthIndicator string          `json:"health_indicator,omitempty"`
	Color           string          `json:"color,omitempty"`
}

type HeatmapCell struct {
	IdeaCount       int      `json:"idea_count"`
	AvgScore        float64  `json:"avg_score"`
	ApprovedCount   int      `json:"approved_count"`
	RejectedCount   int      `json:"rejected_count"`
	InProgressCount int      `json:"in_progress_count"`
	InnovationIndex float64  `json:"innovation_index"`
	HeatLevel       string   `json:"heat_level"`
	HeatColor       string   `json:"heat_color"`
	SuccessRate     float64  `json:"success_rate"`
	TopIdeas        []string `json:"top_ideas"`
}

type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type TimelineAnalysis struct {
	MonthlySubmissions    map[string]int `json:"monthly_submissions"`
	MonthlyApprovals      map[string]int `json:"monthly_approvals"`
	Trend                 string         `json:"trend"`
	AvgTimeToApprovalDays int            `json:"avg_time_to_approval_days"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TeamLine is the cost of one role in a budget
type TeamLine struct {
	Role           string  `json:"role"`
	Count          int     `json:"count"`
	RatePerMonth   float64 `json:"rate_per_month"`
	DurationMonths int     `json:"duration_months"`
	AllocationPct  int     `json:"allocation_pct"`
	TotalCost      float64 `json:"total_cost"`
}

// InfraLine is the cost of one infrastructure item over the project
type InfraLine struct {
	Item        string  `json:"item"`
	ServiceType string  `json:"service_type"`
	MonthlyCost float64 `json:"monthly_cost"`
	TotalCost   float64 `json:"total_cost"`
}

type Budget struct {
	Total               float64     `json:"total"`
	TeamCosts           float64     `json:"team_costs"`
	InfrastructureCosts float64     `json:"infrastructure_costs"`
	ToolsCosts          float64     `json:"tools_costs"`
	Contingency         float64     `json:"contingency"`
	Team                []TeamLine  `json:"team_details"`
	Infrastructure      []InfraLine `json:"infrastructure_details"`
	HasRealData         bool        `json:"has_budget_data"`
}

type IndustryComparison struct {
	Industry       string  `json:"industry"`
	AvgROI         float64 `json:"industry_avg_roi"`
	ROIRange       string  `json:"industry_roi_range"`
	TypicalPayback int     `json:"typical_payback_months"`
	VsIndustry     string  `json:"vs_industry"`
	VsIndustryNote string  `json:"vs_industry_label"`
}

type ROI struct {
	Industry        string             `json:"-"`
	Benchmark       Benchmark          `json:"-"`
	ProjectedValue  float64            `json:"roi_projection"`
	Percentage      float64            `json:"roi_percentage"`
	NetValue        float64            `json:"net_value"`
	PaybackMonths   int                `json:"payback_months"`
	ValueDrivers    []string           `json:"value_drivers"`
	Differentiators []string           `json:"differentiators"`
	Comparison      IndustryComparison `json:"industry_comparison"`
	HasRealData     bool               `json:"has_roi_data"`
}

// Confidence levels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

type Confidence struct {
	Level       string   `json:"confidence"`
	Score       int      `json:"confidence_score"`
	Factors     []string `json:"confidence_factors"`
	MissingData []string `json:"missing_data"`
}

type Phase struct {
	Name          string `json:"name"`
	DurationWeeks int    `json:"duration_weeks"`
	Deliverables  string `json:"deliverables"`
}

type Timeline struct {
	TotalMonths int     `json:"timeline_months"`
	Phases      []Phase `json:"timeline_phases"`
	HasRealData bool    `json:"has_timeline_data"`
}

// Projection is the budget and ROI outlook of one idea
type Projection struct {
	IdeaID     string     `json:"idea_id"`
	Title      string     `json:"title"`
	Department string     `json:"department"`
	Score      int        `json:"score"`
	Status     string     `json:"status"`
	Budget     Budget     `json:"budget_breakdown"`
	ROI        ROI        `json:"roi"`
	Confidence Confidence `json:"confidence"`
	Timeline   Timeline   `json:"timeline"`
	RiskLevel  string     `json:"risk_level"`
}

// Empty returns the zeroed result used for an empty portfolio
func Empty() *Analytics {
	return &Analytics{
		Summary:           Summary{Departments: []string{}, IdeasByStatus: map[string]int{}},
		Clusters:          []Cluster{},
		DepartmentHeatmap: map[string]HeatmapCell{},
		Projections:       []Projection{},
		Timeline:          TimelineAnalysis{MonthlySubmissions: map[string]int{}, MonthlyApprovals: map[string]int{}, Trend: TrendStable},
		Recommendations:   []Recommendation{},
	}
}
