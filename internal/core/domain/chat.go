package domain

// Intent classifies what a chat message is asking for
type Intent string

const (
	IntentSearch    Intent = "search"
	IntentSummarize Intent = "summarize"
	IntentRetrieve  Intent = "retrieve"
	IntentCount     Intent = "count"
	IntentFiletype  Intent = "filetype"
	IntentPage      Intent = "page"
	IntentTag       Intent = "tag"
	IntentGeneral   Intent = "general"
)

// QueryAnalysis is the output of intent classification over a chat message
type QueryAnalysis struct {
	Intent        Intent          `json:"intent"`
	Parameters    QueryParameters `json:"parameters"`
	OriginalQuery string          `json:"original_query"`
}

// QueryParameters holds values extracted from the message text
type QueryParameters struct {
	Document       string `json:"document,omitempty"` // Referenced document name
	Filetype       string `json:"filetype,omitempty"`
	Page           int    `json:"page,omitempty"`
	SizeComparison string `json:"size_comparison,omitempty"` // "larger" or "smaller"
	SizeValue      int64  `json:"size_value,omitempty"`
	SizeUnit       string `json:"size_unit,omitempty"` // kb, mb, gb
}

// ChatRequest is a chat message from the user
type ChatRequest struct {
	Message string   `json:"message"`
	History []string `json:"history,omitempty"`
}

// ChatResponse is the assistant's markdown answer
type ChatResponse struct {
	Response string `json:"response"`
}
