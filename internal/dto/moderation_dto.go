package dto

type CreateReportRequest struct {
	Content string `json:"content"`
}

type ScanRequest struct {
	Content string `json:"content"`
}

type EvaluateRequest struct {
	Content string `json:"content"`
}

// ReportResponse keeps the field names existing clients rely on.
type ReportResponse struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Freet   string `json:"freet"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type SummaryResponse struct {
	TotalCount          int64 `json:"totalCount"`
	OffensiveCount      int64 `json:"offensiveCount"`
	SensitiveCount      int64 `json:"sensitiveCount"`
	MisinformationCount int64 `json:"misinformationCount"`
}

type CategoryReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Count   int64            `json:"count"`
}

type CreateReportResponse struct {
	Message string         `json:"message"`
	Report  ReportResponse `json:"report"`
}

type ScanResponse struct {
	Detected     bool     `json:"detected"`
	MatchedTerms []string `json:"matchedTerms"`
}

type DetectionResponse struct {
	Freet        string   `json:"freet"`
	Detected     bool     `json:"detected"`
	MatchedTerms []string `json:"matchedTerms"`
	UpdatedAt    string   `json:"updatedAt"`
}
