package research

const classifyPrompt = `Classify this search result as exactly one of: solution, competitor, trend.

- solution: a product, tool, platform, service or method that solves the problem.
- competitor: a company, vendor or organization offering something similar.
- trend: market reports, research, forecasts, industry analysis, news or general insight.

If it describes a company or product doing something similar to the idea, answer competitor or solution.
Answer trend only when the page is purely informational or statistical.

Title: %s
Content: %s
Our idea: %s

Answer with ONLY the word: solution, competitor, or trend`

const summarizeSolutionPrompt = `Summarize this solution or product page for someone evaluating a similar idea.

Cover who is implementing it, how it works, pros and cons, cost and ROI data, implementation timeline,
success metrics and case studies, technology requirements, and adoption. Keep every number and example you find.

Title: %s
Content: %s
Idea context: %s

Write a detailed professional summary.`

const summarizeCompetitorPrompt = `Summarize this company or competitor page.

Cover what they do, financial data (revenue, funding, valuation, growth), market position, strategic initiatives,
technology, customers, and recent developments. Keep every number you find.

Title: %s
Content: %s

Write a detailed professional summary.`

const summarizeTrendPrompt = `Summarize this market trend or report.

Cover key findings, market size and growth rates, financial statistics, forecasts, adoption rates and timelines,
competitive landscape and regulatory or technology changes. Preserve exact numbers and percentages.

Title: %s
Content: %s

Write a detailed professional summary.`

const opportunitiesPrompt = `From this market research, list every market opportunity relevant to the idea:
market gaps, unmet needs, growth areas, technology openings, customer segments, revenue opportunities and strategic advantages.

Idea: %s

Research: %s

Return one opportunity per line as bullet points.`

const challengesPrompt = `From this market research, list every challenge or risk relevant to the idea:
market barriers, competitive threats, implementation and technical difficulties, regulation, cost, resource constraints.

Idea: %s

Research: %s

Return one challenge per line as bullet points.`
