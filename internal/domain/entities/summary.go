package entities

// DiscussionPoint is a notable topic from the summary analysis
type DiscussionPoint struct {
	Topic       string  `json:"topic"`
	Description string  `json:"description"`
	Timestamp   float64 `json:"timestamp"`
	Importance  string  `json:"importance"`
}

// SummarySentiment is the compact sentiment block embedded in a summary
type SummarySentiment struct {
	Overall    string   `json:"overall"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights"`
}

// SummaryDocument is the full meeting analysis for one transcript
type SummaryDocument struct {
	ExecutiveSummary string            `json:"executiveSummary"`
	KeyDecisions     []string          `json:"keyDecisions"`
	ActionItems      []ActionItem      `json:"actionItems"`
	DiscussionPoints []DiscussionPoint `json:"discussionPoints"`
	NextSteps        []string          `json:"nextSteps"`
	Sentiment        SummarySentiment  `json:"sentiment"`
}
