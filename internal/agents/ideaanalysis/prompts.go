package ideaanalysis

const researchQuery = `Research market implementation of this idea: %s
Description: %s

Find information about:
1. Companies and organizations implementing this idea
2. Pros and cons of existing implementations
3. Market insights and trends
4. Implementation metrics and timelines
5. Technology maturity and adoption
6. Success stories and case studies

Include data, numbers, case studies and verifiable sources.`

const implementersPrompt = `List every company or organization implementing this idea, based on the research.

Idea: %s

Research Content:
%s

Return a JSON array:
[
  {"name": "Company Name", "description": "how they implemented it, scale, results", "url": "source URL if available"}
]`

const prosConsPrompt = `List the pros and cons of implementing this idea, based on the research.

Idea: %s

Research Content:
%s

Pros cover benefits, success stories, cost savings, efficiency gains and user satisfaction.
Cons cover implementation difficulties, risks, cost concerns, technical challenges and user resistance.

Return JSON:
{"pros": ["detailed pro", ...], "cons": ["detailed con", ...]}`

const insightsPrompt = `Extract the useful market insights about this idea from the research:
trends, technology maturity, adoption, challenges, best practices, market size, forecasts and statistics.

Idea: %s

Research Content:
%s

Return a JSON array:
[
  {
    "type": "Market Trend|Technology Maturity|User Adoption|Challenge|Best Practice|Market Size|Other",
    "insight": "insight text",
    "details": "additional context",
    "source": "source URL if available"
  }
]`

const metricsPrompt = `Extract implementation metrics for this idea from the research.

Idea: %s

Research Content:
%s

Return JSON:
{
  "implementation_timelines": ["how long deployments take, phases, milestones"],
  "scale_metrics": ["users, customers, revenue, market share"],
  "adoption_rates": ["percentages, growth"],
  "technology_maturity": ["maturity level, proven vs experimental"]
}`

const workabilityPrompt = `Decide whether this POC idea is WORKABLE as a proof of concept.

POC Idea: %s
Description: %s

Market Research:
%s

Consider whether similar implementations exist, whether the technology is mature,
whether there are hard technical blockers, the key challenges, and what would make the POC succeed.

Return JSON:
{
  "is_workable": true,
  "confidence": "High" or "Medium" or "Low",
  "verdict": "WORKABLE" or "NOT WORKABLE" or "NEEDS VALIDATION",
  "reasoning": "one paragraph",
  "similar_implementations": ["..."],
  "key_challenges": ["..."],
  "success_factors": ["..."]
}

Most POCs are workable with the right scope. Use NOT WORKABLE only for fundamental technical impossibilities.`

const improvementsPrompt = `Suggest how to improve this POC idea.

POC Idea: %s
Description: %s

Challenges identified:
%s

Similar implementations found:
%s

Market Research:
%s

Current workability: %s

Return JSON:
{
  "overall_recommendation": "2-3 sentences",
  "do_this_instead": ["alternative approaches if the current one has issues"],
  "add_these_features": ["features that make the POC more compelling"],
  "learn_from_others": ["lessons from similar solutions"],
  "quick_wins": ["easy immediate improvements"],
  "avoid_these_mistakes": ["common pitfalls"],
  "differentiation_tips": ["how to stand out"]
}`

const approachesPrompt = `Suggest 2-3 different ways to implement this POC.

POC Idea: %s
Description: %s

Market Research (for context):
%s

Return a JSON array:
[
  {
    "approach_name": "name",
    "description": "brief description",
    "tools_and_technologies": ["tool", "framework", "cloud service"],
    "architecture": "e.g. Frontend -> API -> Database",
    "pros": ["..."],
    "cons": ["..."],
    "complexity": "Low" or "Medium" or "High",
    "best_for": "when to use this approach"
  }
]

Prefer practical, modern technologies and include both a simple and a more sophisticated option.`
