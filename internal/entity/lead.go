package entity

import (
	"github.com/google/uuid"
)

// LeadRow is one parsed row from an uploaded CSV. Only the four recognized
// columns survive parsing; anything else was dropped by the tokenizer.
type LeadRow struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Title   string `json:"title"`
}

// Lead is a prospective contact inside a single campaign.
type Lead struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`

	// Firmographic fields projected from enrichment
	Industry     string `json:"industry,omitempty"`
	CompanySize  string `json:"company_size,omitempty"`
	FundingStage string `json:"funding_stage,omitempty"`

	Enriched bool `json:"enriched"`

	// Full enrichment payload, kept verbatim for inspection
	EnrichmentData map[string]any `json:"enrichment_data,omitempty"`
}

// Enrichment is one entry returned by the enrichment agent, keyed by email.
// Data carries the whole payload as the agent sent it.
type Enrichment struct {
	Email        string
	Industry     string
	CompanySize  string
	FundingStage string
	Data         map[string]any
}

// IngestLeads builds one Lead per row that carries a non-empty email.
// Rows without an email are dropped silently. Ids are fresh per row and
// never reused.
func IngestLeads(rows []LeadRow) []Lead {
	leads := make([]Lead, 0, len(rows))
	for _, row := range rows {
		if row.Email == "" {
			continue
		}
		leads = append(leads, Lead{
			ID:      uuid.New().String(),
			Email:   row.Email,
			Name:    row.Name,
			Company: row.Company,
			Title:   row.Title,
		})
	}
	return leads
}

// MergeEnrichment matches results to leads by email and projects the three
// typed fields. The merge is additive: an empty incoming value never clears
// an existing one, and a lead with no matching result comes back unchanged.
// Re-applying the same result set is a no-op.
func MergeEnrichment(leads []Lead, results []Enrichment) []Lead {
	byEmail := make(map[string]Enrichment, len(results))
	for _, res := range results {
		byEmail[res.Email] = res
	}

	merged := make([]Lead, len(leads))
	for i, lead := range leads {
		res, ok := byEmail[lead.Email]
		if !ok {
			merged[i] = lead
			continue
		}
		lead.Enriched = true
		lead.EnrichmentData = res.Data
		if res.Industry != "" {
			lead.Industry = res.Industry
		}
		if res.CompanySize != "" {
			lead.CompanySize = res.CompanySize
		}
		if res.FundingStage != "" {
			lead.FundingStage = res.FundingStage
		}
		merged[i] = lead
	}
	return merged
}
