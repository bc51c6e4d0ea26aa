package usecase

import (
	"sort"

	"github.com/mailforge/campaigns/internal/entity"
)

// Selection is the set of lead ids picked for a bulk action. It is not
// tied to filter state: filtering the table does not shrink an existing
// selection.
type Selection map[string]struct{}

func NewSelection() Selection {
	return make(Selection)
}

// Toggle flips membership for one lead. Toggling twice is a no-op.
func (s Selection) Toggle(leadID string) {
	if _, ok := s[leadID]; ok {
		delete(s, leadID)
	} else {
		s[leadID] = struct{}{}
	}
}

func (s Selection) Has(leadID string) bool {
	_, ok := s[leadID]
	return ok
}

// SelectAll replaces the selection with exactly the given (already
// filtered) leads.
func (s Selection) SelectAll(leads []entity.Lead) {
	s.Clear()
	for _, lead := range leads {
		s[lead.ID] = struct{}{}
	}
}

func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

func (s Selection) Len() int {
	return len(s)
}

// IDs returns the selected lead ids, sorted for deterministic output.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
