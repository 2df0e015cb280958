package portfolio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ideaforge/internal/domain/idea"
)

// Efficiency claims in insights with a percentage and one of these words raise the ROI
var efficiencyWords = []string{"reduction", "save", "faster", "efficiency", "improve"}

const maxScannedInsights = 5

// DetectIndustry matches the idea text against the industry keyword table
func (e *Engine) DetectIndustry(i *idea.Idea) (string, Benchmark) {
	return e.tables.industry(strings.Join([]string{i.Title, i.OriginalIdea, i.RephrasedIdea}, " "))
}

func (e *Engine) projectROI(i *idea.Idea, score int, budget float64) ROI {
	industry, bench := e.DetectIndustry(i)
	roi := ROI{
		Industry:        industry,
		Benchmark:       bench,
		PaybackMonths:   12,
		ValueDrivers:    []string{},
		Differentiators: []string{},
		Comparison: IndustryComparison{
			Industry:       titleCase(industry),
			AvgROI:         bench.Avg,
			ROIRange:       fmt.Sprintf("%g%% - %g%%", bench.Min, bench.Max),
			TypicalPayback: bench.TypicalPayback,
		},
	}

	var pct float64
	if ir := marketResearch(i); ir != nil {
		roi.HasRealData = true
		adjustment := 0.0

		switch n := len(ir.WhoIsImplementing); {
		case n >= 5:
			adjustment += 40
			roi.ValueDrivers = append(roi.ValueDrivers, fmt.Sprintf("%d+ companies already implementing - validated market", n))
			roi.Differentiators = append(roi.Differentiators, "Higher than avg: Strong market validation")
		case n >= 2:
			adjustment += 20
			roi.ValueDrivers = append(roi.ValueDrivers, fmt.Sprintf("%d companies have validated this approach", n))
		default:
			adjustment -= 10
			roi.ValueDrivers = append(roi.ValueDrivers, "Early-stage market opportunity - higher risk/reward")
		}

		switch {
		case score >= 80:
			adjustment += 35
			roi.Differentiators = append(roi.Differentiators, "Higher than avg: Exceptional idea score (80+)")
		case score >= 70:
			adjustment += 20
			roi.Differentiators = append(roi.Differentiators, "Higher than avg: Strong idea score (70+)")
		case score >= 50:
			adjustment += 5
		default:
			adjustment -= 20
		}

		pros, cons := ir.ProsAndCons.Pros, ir.ProsAndCons.Cons
		switch {
		case len(pros) > len(cons)+2:
			adjustment += 15
			roi.Differentiators = append(roi.Differentiators, "Higher than avg: Strong benefit profile")
		case len(cons) > len(pros):
			adjustment -= 15
		}

		insights := ir.UsefulInsights
		if len(insights) > maxScannedInsights {
			insights = insights[:maxScannedInsights]
		}
		for _, in := range insights {
			adjustment += efficiencyBonus(in.Insight + " " + in.Details)
		}

		pct = clamp(bench.Avg+adjustment, bench.Min, bench.Max)

		for j, pro := range pros {
			if j == 3 {
				break
			}
			if len(pro) > 10 {
				roi.ValueDrivers = append(roi.ValueDrivers, pro)
			}
		}

		switch {
		case pct > bench.Avg*1.2:
			roi.Comparison.VsIndustry = "above_average"
			roi.Comparison.VsIndustryNote = fmt.Sprintf("+%d%% above industry avg", int(math.Round(pct-bench.Avg)))
		case pct < bench.Avg*0.8:
			roi.Comparison.VsIndustry = "below_average"
			roi.Comparison.VsIndustryNote = fmt.Sprintf("%d%% below industry avg", int(math.Round(bench.Avg-pct)))
		default:
			roi.Comparison.VsIndustry = "on_par"
			roi.Comparison.VsIndustryNote = "On par with industry average"
		}
	} else {
		switch {
		case score >= 75:
			pct = bench.Avg + 50
			roi.ValueDrivers = append(roi.ValueDrivers, "High-scoring idea with strong potential")
		case score >= 50:
			pct = bench.Avg
			roi.ValueDrivers = append(roi.ValueDrivers, "Moderate potential based on AI assessment")
		default:
			pct = math.Max(20, bench.Avg-30)
			roi.ValueDrivers = append(roi.ValueDrivers, "Conservative estimate - needs more validation")
		}
		pct = clamp(pct, bench.Min, bench.Max)
		roi.Comparison.VsIndustry = "estimated"
		roi.Comparison.VsIndustryNote = "Based on AI score (no research data)"
	}

	roi.Percentage = round(pct, 1)
	roi.ProjectedValue = round(budget*(1+pct/100), 2)
	roi.NetValue = round(roi.ProjectedValue-budget, 2)
	roi.PaybackMonths = payback(roi.NetValue, roi.Percentage, bench)
	return roi
}

// efficiencyBonus scores a quantified efficiency claim: >=50% +25, >=30% +15, >=10% +8
func efficiencyBonus(text string) float64 {
	lower := strings.ToLower(text)
	m := percentRe.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	mentioned := false
	for _, w := range efficiencyWords {
		if strings.Contains(lower, w) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return 0
	}

	n, _ := strconv.Atoi(m[1])
	switch {
	case n >= 50:
		return 25
	case n >= 30:
		return 15
	case n >= 10:
		return 8
	}
	return 0
}

// payback shortens the industry baseline for ROI above average and lengthens it below, within [3,36]
func payback(net, pct float64, bench Benchmark) int {
	if net <= 0 {
		return bench.TypicalPayback
	}
	months := bench.TypicalPayback + 2
	switch {
	case pct > bench.Avg*1.3:
		months = max(3, bench.TypicalPayback-4)
	case pct > bench.Avg:
		months = bench.TypicalPayback - 2
	}
	return min(36, max(3, months))
}

func (e *Engine) confidence(i *idea.Idea) Confidence {
	c := Confidence{Factors: []string{}, MissingData: []string{}}

	if i.ResearchData.Empty() {
		c.MissingData = append(c.MissingData, "No research data - estimates are rough approximations")
	} else {
		if estimate(i) != nil {
			c.Score += 25
			c.Factors = append(c.Factors, "Detailed resource estimation available")
		} else {
			c.MissingData = append(c.MissingData, "Resource estimation not performed")
		}
		if marketResearch(i) != nil {
			c.Score += 20
			c.Factors = append(c.Factors, "Market research completed")
		} else {
			c.MissingData = append(c.MissingData, "Market research not available")
		}
		if companyResearch(i) {
			c.Score += 15
			c.Factors = append(c.Factors, "Company context analyzed")
		}
	}

	switch score := scoreOf(i); {
	case score == 0:
		c.MissingData = append(c.MissingData, "No AI evaluation performed")
	case score >= 70:
		c.Score += 20
		c.Factors = append(c.Factors, fmt.Sprintf("Strong AI score (%d/100)", score))
	case score >= 50:
		c.Score += 10
		c.Factors = append(c.Factors, fmt.Sprintf("Moderate AI score (%d/100)", score))
	default:
		c.MissingData = append(c.MissingData, fmt.Sprintf("Low AI score (%d/100) indicates uncertainty", score))
	}

	switch i.Status {
	case idea.StatusApproved:
		c.Score += 20
		c.Factors = append(c.Factors, "Idea approved by reviewers")
	case idea.StatusUnderReview:
		c.Score += 5
		c.Factors = append(c.Factors, "Currently under review")
	}

	switch {
	case c.Score >= 70:
		c.Level = ConfidenceHigh
	case c.Score >= 40:
		c.Level = ConfidenceMedium
	default:
		c.Level = ConfidenceLow
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for j, w := range words {
		words[j] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
