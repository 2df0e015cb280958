package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/services/portfolio"
	"ideaforge/internal/services/submission"
)

func newTable(w io.Writer, title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle(title)
	}
	return tw
}

// money formats whole dollars with thousands separators
func money(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func stageStatus(ok bool, present bool) string {
	switch {
	case !present:
		return "-"
	case ok:
		return "ok"
	}
	return "failed"
}

func renderWorkflow(w io.Writer, r *workflow.Result) {
	if r == nil {
		return
	}

	tw := newTable(w, fmt.Sprintf("%s / %s", r.CompanyName, r.IdeaTitle))
	tw.AppendHeader(table.Row{"Stage", "Status", "Detail"})

	cr := r.CompanyResearch
	tw.AppendRow(table.Row{"Company research", stageStatus(cr != nil && cr.Success, cr != nil), errorOf(cr != nil, func() string { return cr.Error })})

	ir := r.IdeaResearch
	detail := errorOf(ir != nil, func() string { return ir.Error })
	if ir != nil && ir.Success {
		detail = ir.Workability.Verdict
	}
	tw.AppendRow(table.Row{"Idea research", stageStatus(ir != nil && ir.Success, ir != nil), detail})

	re := r.ResourceEstimation
	detail = errorOf(re != nil, func() string { return re.Error })
	if re != nil && re.Success {
		detail = fmt.Sprintf("%d roles, %d phases", len(re.TeamResources), len(re.Timeline))
	}
	tw.AppendRow(table.Row{"Resource estimation", stageStatus(re != nil && re.Success, re != nil), detail})

	questionsDone := r.CurrentStep.Ordinal() >= workflow.StepQuestionGeneration.Ordinal() && r.Success
	tw.AppendRow(table.Row{"Question generation", stageStatus(questionsDone, questionsDone || len(r.DevelopmentQuestions) > 0), fmt.Sprintf("%d questions", len(r.DevelopmentQuestions))})

	tw.AppendFooter(table.Row{"Step", r.CurrentStep, successLabel(r.Success)})
	tw.Render()

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	if len(r.DevelopmentQuestions) > 0 {
		qt := newTable(w, "Development questions")
		qt.AppendHeader(table.Row{"#", "Priority", "Category", "Question"})
		for i, q := range r.DevelopmentQuestions {
			qt.AppendRow(table.Row{i + 1, q.Priority, q.Category, q.Question})
		}
		qt.Render()
	}
}

func errorOf(present bool, get func() string) string {
	if !present {
		return ""
	}
	return get()
}

func successLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failed"
}

func renderScore(w io.Writer, out *submission.Outcome) {
	if out == nil || out.Score == nil {
		return
	}
	if !out.Score.Success {
		fmt.Fprintf(w, "Scoring failed: %s\n", out.Score.Error)
		return
	}
	fmt.Fprintf(w, "AI score: %d/100\n%s\n", out.Score.Score, out.Score.Feedback)
	if out.Idea != nil {
		fmt.Fprintf(w, "Saved as %s (%s)\n", out.Idea.SessionID, out.Idea.Status)
	}
}

func renderPortfolio(w io.Writer, a *portfolio.Analytics, top int) {
	s := a.Summary
	st := newTable(w, "Portfolio")
	st.AppendRows([]table.Row{
		{"Ideas", s.TotalIdeas},
		{"Departments", s.TotalDepartments},
		{"Average score", fmt.Sprintf("%.1f", s.AvgScore)},
		{"Approval rate", fmt.Sprintf("%.1f%%", s.ApprovalRate)},
		{"High potential", s.HighPotentialCount},
		{"Estimated value", money(s.EstimatedTotalValue)},
		{"Risk (low/medium/high)", fmt.Sprintf("%d/%d/%d", a.RiskDistribution.Low, a.RiskDistribution.Medium, a.RiskDistribution.High)},
		{"Trend", a.Timeline.Trend},
	})
	st.Render()

	if len(a.DepartmentHeatmap) > 0 {
		names := make([]string, 0, len(a.DepartmentHeatmap))
		for name := range a.DepartmentHeatmap {
			names = append(names, name)
		}
		sort.Strings(names)

		ht := newTable(w, "Departments")
		ht.AppendHeader(table.Row{"Department", "Ideas", "Avg score", "Innovation", "Heat"})
		for _, name := range names {
			c := a.DepartmentHeatmap[name]
			ht.AppendRow(table.Row{name, c.IdeaCount, fmt.Sprintf("%.1f", c.AvgScore), fmt.Sprintf("%.1f", c.InnovationIndex), c.HeatLevel})
		}
		ht.Render()
	}

	if len(a.Projections) > 0 {
		pt := newTable(w, "Budget and ROI")
		pt.AppendHeader(table.Row{"Idea", "Score", "Budget", "ROI", "Payback", "Months", "Confidence"})
		for i, p := range a.Projections {
			if top > 0 && i >= top {
				break
			}
			pt.AppendRow(table.Row{
				p.Title,
				p.Score,
				money(p.Budget.Total),
				fmt.Sprintf("%.0f%%", p.ROI.Percentage),
				fmt.Sprintf("%d mo", p.ROI.PaybackMonths),
				p.Timeline.TotalMonths,
				p.Confidence.Level,
			})
		}
		pt.Render()
	}

	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "[%s/%s] %s: %s\n", strings.ToUpper(r.Priority), r.Type, r.Title, r.Description)
	}
}
