package usecase

import (
	"encoding/csv"
	"strings"

	"github.com/mailforge/campaigns/internal/entity"
)

// Recognized CSV columns, matched case-insensitively. Unrecognized columns
// are ignored; a missing recognized column reads as empty for every row.
var recognizedColumns = []string{"email", "name", "company", "title"}

// ParseLeadRows tokenizes pasted CSV content into lead rows. The header row
// defines column order. Malformed content yields no rows rather than an
// error; the ingest policy (dropping rows without an email) lives in
// entity.IngestLeads.
func ParseLeadRows(content string) []entity.LeadRow {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		name := strings.ToLower(strings.TrimSpace(header))
		for _, recognized := range recognizedColumns {
			if name == recognized {
				columns[name] = i
			}
		}
	}

	pick := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]entity.LeadRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entity.LeadRow{
			Email:   pick(record, "email"),
			Name:    pick(record, "name"),
			Company: pick(record, "company"),
			Title:   pick(record, "title"),
		})
	}
	return rows
}
