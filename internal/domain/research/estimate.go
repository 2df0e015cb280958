package research

// TeamResource is one role line of a resource plan
type TeamResource struct {
	Role           FlexString `json:"role"`
	NumberOfPeople FlexString `json:"number_of_people"`
	RequiredSkills FlexString `json:"required_skills"`
	Allocation     FlexString `json:"allocation"`
	Description    FlexString `json:"description"`
}

type TimelinePhase struct {
	Phase           FlexString `json:"phase"`
	Duration        FlexString `json:"duration"`
	KeyDeliverables FlexString `json:"key_deliverables"`
	Dependencies    FlexString `json:"dependencies"`
}

type Risk struct {
	Risk               FlexString `json:"risk"`
	ImpactLevel        FlexString `json:"impact_level"`
	MitigationStrategy FlexString `json:"mitigation_strategy"`
}

type SuccessMetric struct {
	Metric               FlexString `json:"metric"`
	TargetValue          FlexString `json:"target_value"`
	MeasurementFrequency FlexString `json:"measurement_frequency"`
}

// ResourceEstimate is the resource plan. Every list is non-nil once Normalize has run.
type ResourceEstimate struct {
	Success                 bool            `json:"success"`
	Error                   string          `json:"error,omitempty"`
	TeamResources           []TeamResource  `json:"team_resources"`
	Timeline                []TimelinePhase `json:"timeline"`
	TechnicalInfrastructure []FlexString    `json:"technical_infrastructure"`
	Risks                   []Risk          `json:"risks"`
	SuccessMetrics          []SuccessMetric `json:"success_metrics"`
	RawResponse             string          `json:"raw_response,omitempty"`
}

// Normalize replaces absent lists with empty ones
func (e *ResourceEstimate) Normalize() {
	if e.TeamResources == nil {
		e.TeamResources = []TeamResource{}
	}
	if e.Timeline == nil {
		e.Timeline = []TimelinePhase{}
	}
	if e.TechnicalInfrastructure == nil {
		e.TechnicalInfrastructure = []FlexString{}
	}
	if e.Risks == nil {
		e.Risks = []Risk{}
	}
	if e.SuccessMetrics == nil {
		e.SuccessMetrics = []SuccessMetric{}
	}
}

// NewFailedEstimate returns a failed estimate with empty lists
func NewFailedEstimate(reason string) *ResourceEstimate {
	e := &ResourceEstimate{Success: false, Error: reason}
	e.Normalize()
	return e
}
