package research

// Score is the AI evaluation attached to a saved idea
type Score struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
