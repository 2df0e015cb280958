// Package portfolio derives portfolio analytics from saved ideas: clusters,
// department heatmap, budget and ROI projections, and recommendations.
package portfolio

import (
	"fmt"
	"sort"
	"time"

	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/logger"
)

// Score and risk thresholds
const (
	highImpactScore    = 70
	mediumImpactScore  = 40
	highPotentialScore = 75
	lowRiskMax         = 33
	mediumRiskMax      = 66
	healthyScore       = 70
	moderateScore      = 50
	hotIndex           = 60
	warmIndex          = 30
	maxTopIdeas        = 5
	maxClusterPreview  = 5
	timelineMonths     = 6
	valuePerScorePoint = 1000
	approvedValueBoost = 1.5
	neutralScore       = 50
)

// Trends of monthly submissions
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

const (
	colorGreen  = "#28a745"
	colorYellow = "#ffc107"
	colorRed    = "#dc3545"
	colorBlue   = "#17a2b8"
)

// Engine is stateless apart from its lookup tables and safe for concurrent use
type Engine struct {
	tables Tables
	log    *logger.Logger
}

func NewEngine(tables Tables) *Engine {
	return &Engine{
		tables: tables,
		log:    logger.Get().With("component", "portfolio_engine"),
	}
}

// Analyze recomputes the full analytics for ideas. It never mutates them.
func (e *Engine) Analyze(ideas []idea.Idea) *Analytics {
	if len(ideas) == 0 {
		return Empty()
	}

	start := time.Now()
	out := &Analytics{
		Summary:           e.summary(ideas),
		Clusters:          e.clusters(ideas),
		DepartmentHeatmap: heatmap(ideas),
		Projections:       e.projections(ideas),
		RiskDistribution:  riskDistribution(ideas),
		Timeline:          timelineAnalysis(ideas),
		Recommendations:   recommendations(ideas),
	}
	e.log.Debugw("portfolio analyzed", "ideas", len(ideas), "projections", len(out.Projections), "took", time.Since(start))
	return out
}

func (e *Engine) summary(ideas []idea.Idea) Summary {
	s := Summary{TotalIdeas: len(ideas), IdeasByStatus: map[string]int{}}

	depts := map[string]bool{}
	scored, scoreSum := 0, 0
	approved, reviewed := 0, 0
	for j := range ideas {
		i := &ideas[j]
		dept := i.DepartmentOrDefault()
		if !depts[dept] {
			depts[dept] = true
			s.Departments = append(s.Departments, dept)
		}
		if i.AIScore != nil {
			scored++
			scoreSum += *i.AIScore
		}
		switch i.Status {
		case idea.StatusApproved:
			approved++
			reviewed++
		case idea.StatusRejected:
			reviewed++
		}
		s.IdeasByStatus[statusOf(i)]++
		if scoreOf(i) >= highPotentialScore {
			s.HighPotentialCount++
		}
	}

	s.TotalDepartments = len(depts)
	if scored > 0 {
		s.AvgScore = round(float64(scoreSum)/float64(scored), 1)
	}
	if reviewed > 0 {
		s.ApprovalRate = round(float64(approved)/float64(reviewed)*100, 1)
	}
	s.EstimatedTotalValue = estimatedValue(ideas)
	return s
}

// estimatedValue is $1000 per score point, 1.5x for approved ideas
func estimatedValue(ideas []idea.Idea) float64 {
	total := 0.0
	for j := range ideas {
		v := float64(effectiveScore(&ideas[j]) * valuePerScorePoint)
		if ideas[j].Status == idea.StatusApproved {
			v *= approvedValueBoost
		}
		total += v
	}
	return round(total, 2)
}

func (e *Engine) clusters(ideas []idea.Idea) []Cluster {
	var out []Cluster

	// domain, in order of first appearance
	var order []string
	byDept := map[string][]*idea.Idea{}
	for j := range ideas {
		dept := ideas[j].DepartmentOrDefault()
		if _, ok := byDept[dept]; !ok {
			order = append(order, dept)
		}
		byDept[dept] = append(byDept[dept], &ideas[j])
	}
	for _, dept := range order {
		c := newCluster(ClusterDomain, dept, byDept[dept])
		c.HealthIndicator = healthIndicator(c.AvgScore)
		out = append(out, c)
	}

	impact := [3][]*idea.Idea{}
	risk := [3][]*idea.Idea{}
	for j := range ideas {
		i := &ideas[j]
		switch score := scoreOf(i); {
		case score >= highImpactScore:
			impact[0] = append(impact[0], i)
		case score >= mediumImpactScore:
			impact[1] = append(impact[1], i)
		default:
			impact[2] = append(impact[2], i)
		}
		switch riskLevel(i) {
		case "low":
			risk[0] = append(risk[0], i)
		case "medium":
			risk[1] = append(risk[1], i)
		default:
			risk[2] = append(risk[2], i)
		}
	}

	impactNames := [3]string{"High Impact", "Medium Impact", "Low Impact"}
	impactColors := [3]string{colorGreen, colorYellow, colorRed}
	for k, members := range impact {
		if len(members) == 0 {
			continue
		}
		c := newCluster(ClusterImpact, impactNames[k], members)
		c.Color = impactColors[k]
		out = append(out, c)
	}

	riskNames := [3]string{"Low Risk", "Medium Risk", "High Risk"}
	riskColors := [3]string{colorGreen, colorYellow, colorRed}
	for k, members := range risk {
		if len(members) == 0 {
			continue
		}
		c := newCluster(ClusterRisk, riskNames[k], members)
		c.Color = riskColors[k]
		out = append(out, c)
	}
	return out
}

func newCluster(kind, name string, members []*idea.Idea) Cluster {
	c := Cluster{Type: kind, Name: name, IdeaCount: len(members), Ideas: make([]ClusterMember, 0, min(len(members), maxClusterPreview))}
	sum := 0
	for _, i := range members {
		sum += scoreOf(i)
		if len(c.Ideas) < maxClusterPreview {
			c.Ideas = append(c.Ideas, ClusterMember{Title: i.Title, Score: i.AIScore, Status: statusOf(i)})
		}
	}
	if len(members) > 0 {
		c.AvgScore = round(float64(sum)/float64(len(members)), 1)
	}
	return c
}

func healthIndicator(avg float64) string {
	switch {
	case avg >= healthyScore:
		return "healthy"
	case avg >= moderateScore:
		return "moderate"
	}
	return "needs_attention"
}

func heatmap(ideas []idea.Idea) map[string]HeatmapCell {
	type acc struct {
		cell  HeatmapCell
		total int
	}
	accs := map[string]*acc{}
	for j := range ideas {
		i := &ideas[j]
		dept := i.DepartmentOrDefault()
		a, ok := accs[dept]
		if !ok {
			a = &acc{cell: HeatmapCell{TopIdeas: []string{}}}
			accs[dept] = a
		}
		a.cell.IdeaCount++
		a.total += scoreOf(i)
		if len(a.cell.TopIdeas) < maxTopIdeas {
			a.cell.TopIdeas = append(a.cell.TopIdeas, i.Title)
		}
		switch i.Status {
		case idea.StatusApproved:
			a.cell.ApprovedCount++
		case idea.StatusRejected:
			a.cell.RejectedCount++
		case idea.StatusInProgress, idea.StatusUnderReview:
			a.cell.InProgressCount++
		}
	}

	out := make(map[string]HeatmapCell, len(accs))
	for dept, a := range accs {
		c := a.cell
		avg := float64(a.total) / float64(c.IdeaCount)
		index := (float64(c.IdeaCount)*10 + avg) / 2

		c.AvgScore = round(avg, 1)
		c.InnovationIndex = round(index, 1)
		c.SuccessRate = round(float64(c.ApprovedCount)/float64(c.IdeaCount)*100, 1)
		switch {
		case index >= hotIndex:
			c.HeatLevel, c.HeatColor = "hot", colorRed
		case index >= warmIndex:
			c.HeatLevel, c.HeatColor = "warm", colorYellow
		default:
			c.HeatLevel, c.HeatColor = "cool", colorBlue
		}
		out[dept] = c
	}
	return out
}

// projections skips rejected ideas and orders by net value, highest first
func (e *Engine) projections(ideas []idea.Idea) []Projection {
	out := []Projection{}
	for j := range ideas {
		i := &ideas[j]
		if i.Status == idea.StatusRejected {
			continue
		}
		score := effectiveScore(i)
		budget := e.estimateBudget(i)
		out = append(out, Projection{
			IdeaID:     i.SessionID,
			Title:      i.Title,
			Department: i.DepartmentOrDefault(),
			Score:      score,
			Status:     statusOf(i),
			Budget:     budget,
			ROI:        e.projectROI(i, score, budget.Total),
			Confidence: e.confidence(i),
			Timeline:   estimateTimeline(i, score),
			RiskLevel:  riskLevel(i),
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ROI.NetValue > out[b].ROI.NetValue
	})
	return out
}

// RiskScore is 0-100, higher is riskier
func RiskScore(i *idea.Idea) int {
	risk := 50.0
	if score := scoreOf(i); score != 0 {
		risk -= float64(score-neutralScore) * 0.5
	}
	if i.ResearchData.Empty() {
		risk += 15
	}
	if i.Status == idea.StatusApproved {
		risk -= 10
	}
	return min(100, max(0, int(risk)))
}

func riskLevel(i *idea.Idea) string {
	switch r := RiskScore(i); {
	case r <= lowRiskMax:
		return "low"
	case r <= mediumRiskMax:
		return "medium"
	}
	return "high"
}

func riskDistribution(ideas []idea.Idea) RiskDistribution {
	var d RiskDistribution
	for j := range ideas {
		switch riskLevel(&ideas[j]) {
		case "low":
			d.Low++
		case "medium":
			d.Medium++
		default:
			d.High++
		}
	}
	return d
}

func timelineAnalysis(ideas []idea.Idea) TimelineAnalysis {
	submissions := map[string]int{}
	approvals := map[string]int{}
	for j := range ideas {
		i := &ideas[j]
		if i.CreatedAt.IsZero() {
			continue
		}
		month := i.CreatedAt.UTC().Format("2006-01")
		submissions[month]++
		if i.Status == idea.StatusApproved {
			approvals[month]++
		}
	}

	months := make([]string, 0, len(submissions))
	for m := range submissions {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > timelineMonths {
		months = months[len(months)-timelineMonths:]
	}

	t := TimelineAnalysis{
		MonthlySubmissions:    make(map[string]int, len(months)),
		MonthlyApprovals:      make(map[string]int, len(months)),
		Trend:                 trend(submissions, months),
		AvgTimeToApprovalDays: avgApprovalDays(ideas),
	}
	for _, m := range months {
		t.MonthlySubmissions[m] = submissions[m]
		t.MonthlyApprovals[m] = approvals[m]
	}
	return t
}

// trend compares the last two months against the months before them
func trend(monthly map[string]int, months []string) string {
	if len(months) < 2 {
		return TrendStable
	}
	recent, earlier := 0, 0
	for k, m := range months {
		if k >= len(months)-2 {
			recent += monthly[m]
		} else {
			earlier += monthly[m]
		}
	}
	switch {
	case float64(recent) > float64(earlier)*1.2:
		return TrendIncreasing
	case float64(recent) < float64(earlier)*0.8:
		return TrendDecreasing
	}
	return TrendStable
}

// avgApprovalDays averages created-to-updated time of approved ideas.
// 14 days when nothing is approved, 7 when approved ideas carry no usable timestamps.
func avgApprovalDays(ideas []idea.Idea) int {
	approved, measured := 0, 0
	var total time.Duration
	for j := range ideas {
		i := &ideas[j]
		if i.Status != idea.StatusApproved {
			continue
		}
		approved++
		if !i.CreatedAt.IsZero() && i.UpdatedAt.After(i.CreatedAt) {
			measured++
			total += i.UpdatedAt.Sub(i.CreatedAt)
		}
	}
	switch {
	case approved == 0:
		return 14
	case measured == 0:
		return 7
	}
	return int((total / time.Duration(measured)).Hours()/24 + 0.5)
}

func recommendations(ideas []idea.Idea) []Recommendation {
	out := []Recommendation{}
	if len(ideas) == 0 {
		return out
	}

	sum, highPotential, pending := 0, 0, 0
	depts := map[string]bool{}
	for j := range ideas {
		i := &ideas[j]
		score := scoreOf(i)
		sum += score
		if score >= highPotentialScore {
			highPotential++
		}
		// only an explicit submitted status counts as awaiting review
		if i.Status == idea.StatusSubmitted {
			pending++
		}
		depts[i.DepartmentOrDefault()] = true
	}
	avg := float64(sum) / float64(len(ideas))

	if highPotential >= 3 {
		out = append(out, Recommendation{
			Type:        "opportunity",
			Priority:    "high",
			Title:       fmt.Sprintf("%d High-Potential Ideas Identified", highPotential),
			Description: "Consider fast-tracking these ideas for POC development.",
		})
	}
	if pending >= 5 {
		out = append(out, Recommendation{
			Type:        "warning",
			Priority:    "medium",
			Title:       fmt.Sprintf("%d Ideas Awaiting Review", pending),
			Description: "Review backlog detected. Consider allocating more reviewer resources.",
		})
	}
	if len(depts) < 3 {
		out = append(out, Recommendation{
			Type:        "insight",
			Priority:    "low",
			Title:       "Limited Department Diversity",
			Description: fmt.Sprintf("Only %d departments are contributing. Consider cross-departmental innovation workshops.", len(depts)),
		})
	}
	if avg < 50 {
		out = append(out, Recommendation{
			Type:        "action",
			Priority:    "medium",
			Title:       "Quality Improvement Needed",
			Description: "Average idea score is below 50. Consider providing idea development training.",
		})
	}
	return out
}

// scoreOf is the AI score, 0 when unscored
func scoreOf(i *idea.Idea) int {
	if i.AIScore == nil {
		return 0
	}
	return *i.AIScore
}

// effectiveScore treats unscored ideas as neutral
func effectiveScore(i *idea.Idea) int {
	if s := scoreOf(i); s != 0 {
		return s
	}
	return neutralScore
}

func statusOf(i *idea.Idea) string {
	if i.Status == "" {
		return string(idea.StatusSubmitted)
	}
	return string(i.Status)
}

// estimate returns the successful resource estimate attached to i, or nil
func estimate(i *idea.Idea) *research.ResourceEstimate {
	if i.ResearchData == nil || i.ResearchData.ResourceEstimation == nil || !i.ResearchData.ResourceEstimation.Success {
		return nil
	}
	return i.ResearchData.ResourceEstimation
}

// marketResearch returns the successful idea research attached to i, or nil
func marketResearch(i *idea.Idea) *research.IdeaResearch {
	if i.ResearchData == nil || i.ResearchData.IdeaResearch == nil || !i.ResearchData.IdeaResearch.Success {
		return nil
	}
	return i.ResearchData.IdeaResearch
}

func companyResearch(i *idea.Idea) bool {
	return i.ResearchData != nil && i.ResearchData.CompanyResearch != nil && i.ResearchData.CompanyResearch.Success
}
