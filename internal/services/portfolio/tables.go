package portfolio

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ideaforge/pkg/errors"
)

// Rate maps a keyword to a monthly amount in USD
type Rate struct {
	Keyword string  `yaml:"keyword"`
	Monthly float64 `yaml:"monthly"`
}

// Benchmark is the ROI band of an industry
type Benchmark struct {
	Min            float64 `yaml:"min" json:"min"`
	Max            float64 `yaml:"max" json:"max"`
	Avg            float64 `yaml:"avg" json:"avg"`
	TypicalPayback int     `yaml:"typical_payback" json:"typical_payback"`
}

// Industry is detected when any keyword occurs in the idea text
type Industry struct {
	Name      string    `yaml:"name"`
	Keywords  []string  `yaml:"keywords"`
	Benchmark Benchmark `yaml:"benchmark"`
}

// Tables are the lookup tables behind budget and ROI estimation.
// Every list is ordered and the first substring match wins.
type Tables struct {
	RoleRates          []Rate     `yaml:"role_rates"`
	DefaultRoleRate    float64    `yaml:"default_role_rate"`
	InfraCosts         []Rate     `yaml:"infra_costs"`
	DefaultInfraCost   float64    `yaml:"default_infra_cost"`
	ToolCostPerPerson  float64    `yaml:"tool_cost_per_person"`
	Industries         []Industry `yaml:"industries"`
	GeneralBenchmark   Benchmark  `yaml:"general_benchmark"`
	ContingencyPercent float64    `yaml:"contingency_percent"`
}

// GeneralIndustry is reported when no industry keyword matches
const GeneralIndustry = "general"

// DefaultTables returns the built-in tables. Role keywords match first-wins, and
// "senior developer" sits ahead of "developer" so it can match at all.
func DefaultTables() Tables {
	return Tables{
		RoleRates: []Rate{
			{"senior developer", 12000},
			{"developer", 8000},
			{"full-stack", 10000},
			{"frontend", 8500},
			{"backend", 9000},
			{"architect", 15000},
			{"tech lead", 14000},
			{"project manager", 9000},
			{"product manager", 10000},
			{"designer", 7500},
			{"ux", 8000},
			{"ui", 7000},
			{"qa", 6500},
			{"tester", 6000},
			{"devops", 11000},
			{"data scientist", 13000},
			{"ml engineer", 14000},
			{"ai", 14000},
			{"analyst", 7000},
			{"consultant", 12000},
		},
		DefaultRoleRate: 8000,
		InfraCosts: []Rate{
			{"aws", 500},
			{"azure", 500},
			{"gcp", 500},
			{"cloud", 400},
			{"ec2", 150},
			{"s3", 50},
			{"rds", 200},
			{"lambda", 100},
			{"kubernetes", 300},
			{"docker", 50},
			{"database", 150},
			{"postgresql", 100},
			{"mongodb", 120},
			{"redis", 80},
			{"elasticsearch", 200},
			{"cdn", 100},
			{"ssl", 20},
			{"domain", 15},
			{"monitoring", 100},
			{"logging", 80},
		},
		DefaultInfraCost:  100,
		ToolCostPerPerson: 50,
		Industries: []Industry{
			{
				Name:      "clinical_trial",
				Keywords:  []string{"clinical trial", "patient matching", "trial protocol", "eligibility", "patient screening", "medical trial"},
				Benchmark: Benchmark{Min: 150, Max: 400, Avg: 220, TypicalPayback: 15},
			},
			{
				Name:      "healthcare",
				Keywords:  []string{"healthcare", "medical", "hospital", "patient", "health", "diagnosis", "treatment"},
				Benchmark: Benchmark{Min: 120, Max: 350, Avg: 180, TypicalPayback: 18},
			},
			{
				Name:      "ai_ml",
				Keywords:  []string{"artificial intelligence", "machine learning", "ai", "ml", "deep learning", "neural network", "nlp", "computer vision"},
				Benchmark: Benchmark{Min: 100, Max: 500, Avg: 200, TypicalPayback: 12},
			},
			{
				Name:      "automation",
				Keywords:  []string{"automation", "automate", "workflow", "rpa", "robotic process", "automated"},
				Benchmark: Benchmark{Min: 80, Max: 250, Avg: 150, TypicalPayback: 10},
			},
			{
				Name:      "fintech",
				Keywords:  []string{"fintech", "finance", "banking", "payment", "trading", "investment", "insurance"},
				Benchmark: Benchmark{Min: 130, Max: 380, Avg: 190, TypicalPayback: 14},
			},
			{
				Name:      "saas",
				Keywords:  []string{"saas", "software as a service", "platform", "subscription", "cloud software"},
				Benchmark: Benchmark{Min: 90, Max: 300, Avg: 160, TypicalPayback: 16},
			},
			{
				Name:      "manufacturing",
				Keywords:  []string{"manufacturing", "factory", "production", "assembly", "supply chain"},
				Benchmark: Benchmark{Min: 60, Max: 180, Avg: 110, TypicalPayback: 20},
			},
			{
				Name:      "logistics",
				Keywords:  []string{"logistics", "shipping", "delivery", "warehouse", "freight", "transport"},
				Benchmark: Benchmark{Min: 70, Max: 200, Avg: 120, TypicalPayback: 18},
			},
			{
				Name:      "retail",
				Keywords:  []string{"retail", "e-commerce", "store", "shopping", "consumer", "inventory"},
				Benchmark: Benchmark{Min: 50, Max: 150, Avg: 90, TypicalPayback: 22},
			},
		},
		GeneralBenchmark:   Benchmark{Min: 40, Max: 200, Avg: 100, TypicalPayback: 18},
		ContingencyPercent: 15,
	}
}

// LoadTables reads a YAML file over the defaults. Keys absent from the file keep their built-in value.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, errors.Wrapf(err, "read portfolio tables %s", path)
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return tables, errors.Wrapf(err, "parse portfolio tables %s", path)
	}
	if err := tables.Validate(); err != nil {
		return tables, err
	}
	return tables, nil
}

// Validate rejects tables that would make budgets or ROI bands meaningless
func (t Tables) Validate() error {
	if t.DefaultRoleRate <= 0 || t.DefaultInfraCost < 0 || t.ToolCostPerPerson < 0 {
		return errors.NewValidationError("default_rates", "default rates must be positive", t.DefaultRoleRate)
	}
	if t.ContingencyPercent < 0 {
		return errors.NewValidationError("contingency_percent", "must not be negative", t.ContingencyPercent)
	}
	if err := t.GeneralBenchmark.validate(GeneralIndustry); err != nil {
		return err
	}
	for _, ind := range t.Industries {
		if err := ind.Benchmark.validate(ind.Name); err != nil {
			return err
		}
	}
	return nil
}

func (b Benchmark) validate(name string) error {
	if b.Min > b.Max || b.Avg < b.Min || b.Avg > b.Max {
		return errors.NewValidationError("benchmark", "expected min <= avg <= max for "+name, b)
	}
	return nil
}

// roleRate returns the monthly rate of the first role keyword found in role
func (t Tables) roleRate(role string) float64 {
	if r, ok := match(t.RoleRates, role); ok {
		return r.Monthly
	}
	return t.DefaultRoleRate
}

// infraCost returns the monthly cost and the matched service name, "Other" if nothing matched
func (t Tables) infraCost(item string) (float64, string) {
	if r, ok := match(t.InfraCosts, item); ok {
		return r.Monthly, strings.ToUpper(r.Keyword)
	}
	return t.DefaultInfraCost, "Other"
}

// industry detects the industry of text, falling back to general
func (t Tables) industry(text string) (string, Benchmark) {
	lower := strings.ToLower(text)
	for _, ind := range t.Industries {
		for _, kw := range ind.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return ind.Name, ind.Benchmark
			}
		}
	}
	return GeneralIndustry, t.GeneralBenchmark
}

func match(rates []Rate, text string) (Rate, bool) {
	lower := strings.ToLower(text)
	for _, r := range rates {
		if strings.Contains(lower, strings.ToLower(r.Keyword)) {
			return r, true
		}
	}
	return Rate{}, false
}
