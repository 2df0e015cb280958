package company

const researchQuery = `Research %s company thoroughly:

1. What the company does: core business, main products and services, business model, value proposition,
   industry sector, market position, target customers and geographic reach.
2. Financial information with context: annual revenue, revenue growth, market capitalization,
   profitability and margins, recent financial performance.
3. Current initiatives and future goals: strategic projects, technology investments, expansion plans,
   sustainability efforts, R&D focus and the strategic vision for the next 3-5 years.

Use complete sentences with specific numbers, facts and reliable sources.`

const descriptionPrompt = `Write a brief, high-level business summary for %s from this research.

Research Content:
%s

Cover the core business, main products and services, and the key value proposition.
Return at most 2 paragraphs.`

const financialsPrompt = `Extract the most recent financial highlights for %s from this research.

Research Content:
%s

Return JSON with exactly these fields:
{
  "annual_revenue": "brief revenue data",
  "revenue_growth": "brief growth data",
  "market_cap": "brief market cap data",
  "profitability": "brief profitability data",
  "recent_performance": "brief summary of recent performance"
}

Keep text fields brief. Use an empty string for anything not found.`

const initiativesPrompt = `Extract the top 3-5 strategic initiatives for %s from this research.

Research Content:
%s

Return a bullet list, one initiative per line, each at most one sentence.`
