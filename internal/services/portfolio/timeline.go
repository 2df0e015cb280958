package portfolio

import (
	"ideaforge/internal/domain/idea"
)

const defaultPhaseWeeks = 4

var (
	fastTrackPhases = []Phase{
		{Name: "Discovery & Planning", DurationWeeks: 2, Deliverables: "Requirements, Architecture"},
		{Name: "Development", DurationWeeks: 10, Deliverables: "Core Features"},
		{Name: "Testing & Launch", DurationWeeks: 4, Deliverables: "QA, Deployment"},
	}
	standardPhases = []Phase{
		{Name: "Discovery & Planning", DurationWeeks: 4, Deliverables: "Requirements, Architecture"},
		{Name: "Development", DurationWeeks: 16, Deliverables: "Core Features"},
		{Name: "Testing & Launch", DurationWeeks: 4, Deliverables: "QA, Deployment"},
	}
	validationPhases = []Phase{
		{Name: "Discovery & Validation", DurationWeeks: 6, Deliverables: "Requirements, Proof of Concept"},
		{Name: "Development", DurationWeeks: 20, Deliverables: "Core Features"},
		{Name: "Testing & Launch", DurationWeeks: 6, Deliverables: "QA, Deployment"},
	}
)

// estimateTimeline uses the phases of the resource estimate, or a canned plan by score
func estimateTimeline(i *idea.Idea, score int) Timeline {
	if est := estimate(i); est != nil && len(est.Timeline) > 0 {
		t := Timeline{HasRealData: true, Phases: make([]Phase, 0, len(est.Timeline))}
		weeks := 0
		for _, p := range est.Timeline {
			n, ok := phaseWeeks(p.Duration.String())
			if !ok {
				n = defaultPhaseWeeks
			}
			name := p.Phase.String()
			if name == "" {
				name = "Phase"
			}
			weeks += n
			t.Phases = append(t.Phases, Phase{Name: name, DurationWeeks: n, Deliverables: p.KeyDeliverables.String()})
		}
		t.TotalMonths = max(3, weeks/4)
		return t
	}

	switch {
	case score >= 75:
		return Timeline{TotalMonths: 4, Phases: clonePhases(fastTrackPhases)}
	case score >= 50:
		return Timeline{TotalMonths: 6, Phases: clonePhases(standardPhases)}
	}
	return Timeline{TotalMonths: 8, Phases: clonePhases(validationPhases)}
}

func clonePhases(p []Phase) []Phase {
	return append([]Phase(nil), p...)
}
