package usecase

type CreateCampaignInput struct {
	Name string `json:"name"`
	CSV  string `json:"csv"`
}

type UpdateDraftInput struct {
	SubjectLine          string `json:"subject_line"`
	Body                 string `json:"body"`
	PersonalizationNotes string `json:"personalization_notes"`
}

// LeadFilter selects the subsequence of leads matching every provided,
// non-"all" criterion. An empty value behaves like "all".
type LeadFilter struct {
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size"`
	EnrichmentStatus string `json:"status"` // "enriched", "pending" or "all"
}
