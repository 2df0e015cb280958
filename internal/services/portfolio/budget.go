package portfolio

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	percentRe = regexp.MustCompile(`(\d+)\s*%`)
	monthRe   = regexp.MustCompile(`(\d+)\s*month`)
	weekRe    = regexp.MustCompile(`(\d+)\s*week`)
)

// Fallback budgets by complexity tier, gated by the idea score
type fallbackTier struct {
	minScore int
	team     int
	rate     float64
	months   int
	infra    float64
}

var fallbackTiers = []fallbackTier{
	{minScore: 70, team: 5, rate: 9000, months: 6, infra: 800},
	{minScore: 40, team: 3, rate: 8500, months: 4, infra: 400},
	{minScore: 0, team: 2, rate: 8000, months: 3, infra: 200},
}

func (e *Engine) estimateBudget(i *idea.Idea) Budget {
	b := Budget{Team: []TeamLine{}, Infrastructure: []InfraLine{}}

	est := estimate(i)
	if est == nil {
		tier := fallbackTiers[len(fallbackTiers)-1]
		score := effectiveScore(i)
		for _, t := range fallbackTiers {
			if score >= t.minScore {
				tier = t
				break
			}
		}
		b.TeamCosts = float64(tier.team) * tier.rate * float64(tier.months)
		b.InfrastructureCosts = tier.infra * float64(tier.months)
		b.ToolsCosts = float64(tier.team) * e.tables.ToolCostPerPerson * float64(tier.months)
		return e.withContingency(b)
	}

	b.HasRealData = true
	totalMonths := projectMonths(est.Timeline)

	teamSize := 0
	for _, res := range est.TeamResources {
		role := strings.TrimSpace(res.Role.String())
		if role == "" {
			role = "Developer"
		}
		people := parsePeople(res.NumberOfPeople.String())
		pct, months, ok := parseAllocation(res.Allocation.String())
		if !ok {
			months = totalMonths
		}
		rate := e.tables.roleRate(role)
		cost := rate * float64(people) * float64(months) * float64(pct) / 100

		teamSize += people
		b.TeamCosts += cost
		b.Team = append(b.Team, TeamLine{
			Role:           role,
			Count:          people,
			RatePerMonth:   rate,
			DurationMonths: months,
			AllocationPct:  pct,
			TotalCost:      round(cost, 2),
		})
	}

	for _, item := range est.TechnicalInfrastructure {
		text := item.String()
		monthly, service := e.tables.infraCost(text)
		total := monthly * float64(totalMonths)
		b.InfrastructureCosts += total
		b.Infrastructure = append(b.Infrastructure, InfraLine{
			Item:        text,
			ServiceType: service,
			MonthlyCost: monthly,
			TotalCost:   round(total, 2),
		})
	}

	b.ToolsCosts = float64(teamSize) * e.tables.ToolCostPerPerson * float64(totalMonths)
	return e.withContingency(b)
}

// withContingency adds the contingency share and rounds the total to cents
func (e *Engine) withContingency(b Budget) Budget {
	subtotal := decimal.NewFromFloat(b.TeamCosts).
		Add(decimal.NewFromFloat(b.InfrastructureCosts)).
		Add(decimal.NewFromFloat(b.ToolsCosts))
	contingency := subtotal.Mul(decimal.NewFromFloat(e.tables.ContingencyPercent)).Div(decimal.NewFromInt(100))

	b.Contingency = contingency.Round(2).InexactFloat64()
	b.Total = subtotal.Add(contingency).Round(2).InexactFloat64()
	return b
}

// parsePeople reads "2", "2 developers" or a range "2-3" (floor of the mean). Defaults to 1.
func parsePeople(text string) int {
	nums := digitsRe.FindAllString(text, 2)
	switch len(nums) {
	case 0:
		return 1
	case 1:
		n, _ := strconv.Atoi(nums[0])
		return n
	}
	a, _ := strconv.Atoi(nums[0])
	b, _ := strconv.Atoi(nums[1])
	return (a + b) / 2
}

// parseAllocation reads "Full-time for 8 months", "50% for 3 months" or "part-time, 6 weeks".
// ok is false when no duration is stated.
func parseAllocation(text string) (pct, months int, ok bool) {
	lower := strings.ToLower(text)
	pct = 100
	if strings.Contains(lower, "part-time") || strings.Contains(lower, "part time") || strings.Contains(lower, "half") {
		pct = 50
	}
	if m := percentRe.FindStringSubmatch(lower); m != nil {
		pct, _ = strconv.Atoi(m[1])
	}

	if m := monthRe.FindStringSubmatch(lower); m != nil {
		months, _ = strconv.Atoi(m[1])
		if months > 0 {
			return pct, months, true
		}
	}
	if m := weekRe.FindStringSubmatch(lower); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		return pct, max(1, weeks/4), true
	}
	return pct, 0, false
}

// phaseWeeks reads "4 weeks" or "2 months" (as 8 weeks). ok is false when neither is present.
func phaseWeeks(duration string) (int, bool) {
	lower := strings.ToLower(duration)
	if m := weekRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := monthRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 4, true
	}
	return 0, false
}

// projectMonths sums the phase durations: at least 3 months, 6 when nothing parses
func projectMonths(phases []research.TimelinePhase) int {
	weeks := 0
	for _, p := range phases {
		if n, ok := phaseWeeks(p.Duration.String()); ok {
			weeks += n
		}
	}
	if weeks == 0 {
		return 6
	}
	return max(3, weeks/4)
}

func round(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}
