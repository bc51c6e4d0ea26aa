package entity

// EmailDraft is the generated email for exactly one lead. A campaign holds
// at most one draft per lead; regeneration replaces the whole list.
type EmailDraft struct {
	LeadID               string `json:"lead_id"`
	SubjectLine          string `json:"subject_line"`
	Body                 string `json:"body"`
	PersonalizationNotes string `json:"personalization_notes,omitempty"`
	Approved             bool   `json:"approved"`
}

// GeneratedDraft is one entry returned by the draft agent. LeadKey is
// whatever the agent supplied: a lead id or the lead's email address.
type GeneratedDraft struct {
	LeadKey              string
	SubjectLine          string
	Body                 string
	PersonalizationNotes string
}

// BuildDrafts converts agent results into drafts, resolving an email key to
// the matching lead's id when possible. Every draft starts unapproved.
func BuildDrafts(leads []Lead, results []GeneratedDraft) []EmailDraft {
	idByEmail := make(map[string]string, len(leads))
	knownIDs := make(map[string]bool, len(leads))
	for _, l := range leads {
		idByEmail[l.Email] = l.ID
		knownIDs[l.ID] = true
	}

	drafts := make([]EmailDraft, 0, len(results))
	for _, res := range results {
		leadID := res.LeadKey
		if !knownIDs[leadID] {
			if id, ok := idByEmail[res.LeadKey]; ok {
				leadID = id
			}
		}
		drafts = append(drafts, EmailDraft{
			LeadID:               leadID,
			SubjectLine:          res.SubjectLine,
			Body:                 res.Body,
			PersonalizationNotes: res.PersonalizationNotes,
		})
	}
	return drafts
}
