package research

import "time"

// Financials holds the five extracted financial fields, empty when not found
type Financials struct {
	AnnualRevenue     string `json:"annual_revenue"`
	RevenueGrowth     string `json:"revenue_growth"`
	MarketCap         string `json:"market_cap"`
	Profitability     string `json:"profitability"`
	RecentPerformance string `json:"recent_performance"`
}

// RankedSource is a deduplicated source with an authority score from 1 to 5
type RankedSource struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	QualityScore int    `json:"quality_score"`
	Domain       string `json:"domain"`
	DateAccessed string `json:"date_accessed"`
}

// CompanyResearch is the result of the company research stage
type CompanyResearch struct {
	Success            bool           `json:"success"`
	Error              string         `json:"error,omitempty"`
	CompanyName        string         `json:"company_name"`
	Answer             string         `json:"answer"`
	WhatCompanyDoes    string         `json:"what_company_does"`
	Financials         Financials     `json:"financials"`
	CurrentInitiatives []string       `json:"current_initiatives_and_goals"`
	Sources            []RankedSource `json:"sources"`
	ResearchTimestamp  time.Time      `json:"research_timestamp"`
}

// FailureReason is the text placed after "Company Research Failed: "
func (c *CompanyResearch) FailureReason() string {
	if c.Error != "" {
		return c.Error
	}
	return c.Answer
}
