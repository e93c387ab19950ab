package domain

// PromptsUsed carries the instruction sections of the two composed prompts
// so the client can display and edit them.
type PromptsUsed struct {
	Overview string `json:"overview"`
	Detail   string `json:"detail"`
}

// SummaryResult is the outcome of one summarize or re-summarize run.
// Overview and detail generation are independent: one side may fail while
// the other succeeds, in which case the failed side's error is carried
// alongside the succeeded text instead of discarding it.
type SummaryResult struct {
	VideoID        string
	Title          string
	FullTranscript string

	SummaryOverview string
	SummaryDetail   string
	OverviewErr     error
	DetailErr       error

	Category    string
	FormatType  string
	PromptsUsed PromptsUsed

	AIProvider string
	Model      string
}
