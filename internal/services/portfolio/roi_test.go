package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
)

func intPtr(n int) *int { return &n }

func implementers(n int) []research.Implementer {
	out := make([]research.Implementer, n)
	for j := range out {
		out[j] = research.Implementer{Name: "Company"}
	}
	return out
}

func withMarket(title string, ir *research.IdeaResearch) *idea.Idea {
	ir.Success = true
	return &idea.Idea{Title: title, ResearchData: &idea.ResearchData{IdeaResearch: ir}}
}

func TestDetectIndustry(t *testing.T) {
	e := NewEngine(DefaultTables())
	tests := []struct {
		title string
		want  string
		avg   float64
	}{
		{"Clinical trial patient matching", "clinical_trial", 220},
		{"Hospital bed planning", "healthcare", 180},
		{"Warehouse delivery routing", "logistics", 120},
		{"Invoice payment reminders", "fintech", 190},
		{"Nothing special here", GeneralIndustry, 100},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			industry, bench := e.DetectIndustry(&idea.Idea{Title: tt.title})
			assert.Equal(t, tt.want, industry)
			assert.Equal(t, tt.avg, bench.Avg)
		})
	}
}

func TestProjectROI_ClinicalTrial(t *testing.T) {
	e := NewEngine(DefaultTables())
	i := withMarket("Clinical trial patient matching", &research.IdeaResearch{
		WhoIsImplementing: implementers(6),
		ProsAndCons: research.ProsCons{
			Pros: []string{"Shorter recruitment cycles", "Better cohort fit", "Lower screening cost", "Audit trail", "Reusable"},
			Cons: []string{"Data access"},
		},
		UsefulInsights: []research.Insight{{Insight: "Screening time reduction", Details: "60% faster"}},
	})

	roi := e.projectROI(i, 85, 100000)

	require.True(t, roi.HasRealData)
	assert.Equal(t, "clinical_trial", roi.Industry)
	assert.Equal(t, 335.0, roi.Percentage)
	assert.Equal(t, 435000.0, roi.ProjectedValue)
	assert.Equal(t, 335000.0, roi.NetValue)
	assert.Equal(t, 11, roi.PaybackMonths)
	assert.Equal(t, "above_average", roi.Comparison.VsIndustry)
	assert.Equal(t, "+115% above industry avg", roi.Comparison.VsIndustryNote)
	assert.Equal(t, "Clinical Trial", roi.Comparison.Industry)
	assert.Equal(t, "150% - 400%", roi.Comparison.ROIRange)
	assert.Equal(t, []string{
		"6+ companies already implementing - validated market",
		"Shorter recruitment cycles",
		"Better cohort fit",
		"Lower screening cost",
	}, roi.ValueDrivers)
	assert.Len(t, roi.Differentiators, 3)
}

func TestProjectROI_ClampedToBand(t *testing.T) {
	e := NewEngine(DefaultTables())
	claim := research.Insight{Insight: "50% cost reduction"}
	i := withMarket("Warehouse delivery routing", &research.IdeaResearch{
		WhoIsImplementing: implementers(10),
		ProsAndCons:       research.ProsCons{Pros: []string{"a", "b", "c", "d"}},
		UsefulInsights:    []research.Insight{claim, claim, claim},
	})

	roi := e.projectROI(i, 95, 50000)
	assert.Equal(t, 200.0, roi.Percentage)
	assert.Equal(t, 100000.0, roi.NetValue)
}

func TestProjectROI_BelowAverage(t *testing.T) {
	e := NewEngine(DefaultTables())
	i := withMarket("Nothing special here", &research.IdeaResearch{
		ProsAndCons: research.ProsCons{Cons: []string{"x", "y", "z"}},
	})

	roi := e.projectROI(i, 30, 100000)
	assert.Equal(t, 55.0, roi.Percentage)
	assert.Equal(t, "below_average", roi.Comparison.VsIndustry)
	assert.Equal(t, "45% below industry avg", roi.Comparison.VsIndustryNote)
	assert.Equal(t, 20, roi.PaybackMonths)
}

func TestProjectROI_WithoutResearch(t *testing.T) {
	e := NewEngine(DefaultTables())
	tests := []struct {
		score   int
		pct     float64
		payback int
	}{
		{score: 80, pct: 150, payback: 14},
		{score: 60, pct: 100, payback: 20},
		{score: 30, pct: 70, payback: 20},
	}
	for _, tt := range tests {
		roi := e.projectROI(&idea.Idea{Title: "Nothing special here"}, tt.score, 10000)
		assert.False(t, roi.HasRealData)
		assert.Equal(t, tt.pct, roi.Percentage, "score %d", tt.score)
		assert.Equal(t, tt.payback, roi.PaybackMonths, "score %d", tt.score)
		assert.Equal(t, "estimated", roi.Comparison.VsIndustry)
	}
}

func TestProjectROI_StaysInBand(t *testing.T) {
	e := NewEngine(DefaultTables())
	titles := []string{"Clinical trial patient matching", "Retail shelf audit", "Factory line monitoring", "Nothing special here"}
	for _, title := range titles {
		_, bench := e.DetectIndustry(&idea.Idea{Title: title})
		for score := 0; score <= 100; score += 5 {
			for _, n := range []int{0, 3, 8} {
				i := withMarket(title, &research.IdeaResearch{
					WhoIsImplementing: implementers(n),
					ProsAndCons:       research.ProsCons{Pros: make([]string, n), Cons: make([]string, 8-n)},
					UsefulInsights:    []research.Insight{{Insight: "35% efficiency gain"}},
				})
				for _, ii := range []*idea.Idea{i, {Title: title}} {
					roi := e.projectROI(ii, score, 1000)
					assert.GreaterOrEqual(t, roi.Percentage, bench.Min)
					assert.LessOrEqual(t, roi.Percentage, bench.Max)
					assert.GreaterOrEqual(t, roi.PaybackMonths, 3)
					assert.LessOrEqual(t, roi.PaybackMonths, 36)
				}
			}
		}
	}
}

func TestEfficiencyBonus(t *testing.T) {
	tests := map[string]float64{
		"Screening 60% faster":                25,
		"30% efficiency gain":                 15,
		"Throughput improved by 12%":          8,
		"5% reduction":                        0,
		"Big reduction in manual work":        0,
		"Cut costs by 55% through automation": 0,
	}
	for text, want := range tests {
		assert.Equal(t, want, efficiencyBonus(text), text)
	}
}

func TestPayback(t *testing.T) {
	general := DefaultTables().GeneralBenchmark
	assert.Equal(t, 18, payback(0, 100, general))
	assert.Equal(t, 14, payback(10, 300, general))
	assert.Equal(t, 16, payback(10, 110, general))
	assert.Equal(t, 20, payback(10, 90, general))
	assert.Equal(t, 36, payback(10, 10, Benchmark{Avg: 100, TypicalPayback: 40}))
	assert.Equal(t, 3, payback(10, 500, Benchmark{Avg: 100, TypicalPayback: 5}))
}

func TestConfidence(t *testing.T) {
	e := NewEngine(DefaultTables())
	full := &idea.ResearchData{
		CompanyResearch:    &research.CompanyResearch{Success: true},
		IdeaResearch:       &research.IdeaResearch{Success: true},
		ResourceEstimation: &research.ResourceEstimate{Success: true},
	}

	tests := []struct {
		name    string
		idea    idea.Idea
		score   int
		level   string
		missing []string
	}{
		{
			name:    "nothing known",
			idea:    idea.Idea{},
			level:   ConfidenceLow,
			missing: []string{"No research data - estimates are rough approximations", "No AI evaluation performed"},
		},
		{
			name:    "fully researched and approved",
			idea:    idea.Idea{ResearchData: full, AIScore: intPtr(75), Status: idea.StatusApproved},
			score:   100,
			level:   ConfidenceHigh,
			missing: []string{},
		},
		{
			name: "company context only",
			idea: idea.Idea{
				ResearchData: &idea.ResearchData{CompanyResearch: &research.CompanyResearch{Success: true}},
				AIScore:      intPtr(55),
				Status:       idea.StatusUnderReview,
			},
			score:   30,
			level:   ConfidenceLow,
			missing: []string{"Resource estimation not performed", "Market research not available"},
		},
		{
			name: "estimate and market research with a weak score",
			idea: idea.Idea{
				ResearchData: &idea.ResearchData{
					IdeaResearch:       &research.IdeaResearch{Success: true},
					ResourceEstimation: &research.ResourceEstimate{Success: true},
				},
				AIScore: intPtr(40),
			},
			score:   45,
			level:   ConfidenceMedium,
			missing: []string{"Low AI score (40/100) indicates uncertainty"},
		},
		{
			name: "failed research counts as missing",
			idea: idea.Idea{
				ResearchData: &idea.ResearchData{ResourceEstimation: research.NewFailedEstimate("down")},
			},
			level:   ConfidenceLow,
			missing: []string{"Resource estimation not performed", "Market research not available", "No AI evaluation performed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.confidence(&tt.idea)
			assert.Equal(t, tt.score, c.Score)
			assert.Equal(t, tt.level, c.Level)
			assert.Equal(t, tt.missing, c.MissingData)
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Ai Ml", titleCase("ai_ml"))
	assert.Equal(t, "General", titleCase("general"))
}
