package usecase

import (
	"strings"

	"github.com/mailforge/campaigns/internal/entity"
)

// Export layout is a fixed contract with the CSV sink: this exact header,
// every cell double-quoted, one row per filtered lead.
var exportHeader = []string{"Email", "Name", "Company", "Title", "Industry", "Company Size", "Status"}

// ExportCSV renders the filtered leads. An empty set still yields the
// header row.
func ExportCSV(leads []entity.Lead) string {
	var b strings.Builder
	writeExportRow(&b, exportHeader)
	for _, lead := range leads {
		status := "Pending"
		if lead.Enriched {
			status = "Enriched"
		}
		writeExportRow(&b, []string{
			lead.Email,
			lead.Name,
			lead.Company,
			lead.Title,
			lead.Industry,
			lead.CompanySize,
			status,
		})
	}
	return b.String()
}

func writeExportRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
