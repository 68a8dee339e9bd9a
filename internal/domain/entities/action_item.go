package entities

// Action item priorities as produced by the model
const (
	ActionItemPriorityHigh   = "high"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityLow    = "low"
)

// ActionItem is a task the model extracted from the conversation.
// Assignee falls back to "TBD" when nobody was mentioned.
type ActionItem struct {
	ID        string  `json:"id,omitempty"`
	Task      string  `json:"task"`
	Assignee  string  `json:"assignee"`
	Priority  string  `json:"priority"`
	DueDate   string  `json:"dueDate,omitempty"`
	Timestamp float64 `json:"timestamp"`
	Context   string  `json:"context,omitempty"`
	Status    string  `json:"status,omitempty"`
}

// ActionItemSet is the extract-action-items result with priority tallies
type ActionItemSet struct {
	ActionItems         []ActionItem `json:"actionItems"`
	TotalCount          int          `json:"totalCount"`
	HighPriorityCount   int          `json:"highPriorityCount"`
	MediumPriorityCount int          `json:"mediumPriorityCount"`
	LowPriorityCount    int          `json:"lowPriorityCount"`
}
