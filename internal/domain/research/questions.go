package research

// Priorities a development question may carry
const (
	PriorityMust   = "Must Answer"
	PriorityShould = "Should Answer"
	PriorityNice   = "Nice to Have"
)

// MaxQuestions caps the generator output
const MaxQuestions = 5

// Question is one POC-validation question
type Question struct {
	Category  string   `json:"category"`
	Question  string   `json:"question"`
	Priority  string   `json:"priority"`
	Key       string   `json:"key"`
	FollowUps []string `json:"follow_ups"`
}

// ValidPriority reports whether p is one of the three allowed priorities
func ValidPriority(p string) bool {
	switch p {
	case PriorityMust, PriorityShould, PriorityNice:
		return true
	}
	return false
}
