package usecase

import (
	"github.com/mailforge/campaigns/internal/entity"
)

// Pure functions over a campaign snapshot. No external calls, no mutation.

const (
	FilterAll      = "all"
	FilterEnriched = "enriched"
	FilterPending  = "pending"
)

func filterWildcard(value string) bool {
	return value == "" || value == FilterAll
}

// FilterLeads returns the ordered subsequence of leads matching every
// provided, non-"all" criterion.
func FilterLeads(leads []entity.Lead, f LeadFilter) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if !filterWildcard(f.Industry) && lead.Industry != f.Industry {
			continue
		}
		if !filterWildcard(f.CompanySize) && lead.CompanySize != f.CompanySize {
			continue
		}
		if f.EnrichmentStatus == FilterEnriched && !lead.Enriched {
			continue
		}
		if f.EnrichmentStatus == FilterPending && lead.Enriched {
			continue
		}
		out = append(out, lead)
	}
	return out
}

// Industries returns the distinct non-empty industries across all leads,
// in first-seen order. Computed over the full lead set, never the filtered
// one: these populate the filter options themselves.
func Industries(leads []entity.Lead) []string {
	return distinct(leads, func(l entity.Lead) string { return l.Industry })
}

// CompanySizes returns the distinct non-empty company sizes across all
// leads, in first-seen order.
func CompanySizes(leads []entity.Lead) []string {
	return distinct(leads, func(l entity.Lead) string { return l.CompanySize })
}

func distinct(leads []entity.Lead, field func(entity.Lead) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, lead := range leads {
		v := field(lead)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
