package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/usecase"
)

const exportHeaderLine = `"Email","Name","Company","Title","Industry","Company Size","Status"`

func TestExportCSVQuotesEveryCell(t *testing.T) {
	leads := []entity.Lead{
		{Email: "a@x.com", Name: "Ann", Company: "Acme", Title: "CEO", Industry: "Tech", CompanySize: "11-50", Enriched: true},
		{Email: "b@x.com", Name: "Bob"},
	}

	out := usecase.ExportCSV(leads)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, exportHeaderLine, lines[0])
	assert.Equal(t, `"a@x.com","Ann","Acme","CEO","Tech","11-50","Enriched"`, lines[1])
	assert.Equal(t, `"b@x.com","Bob","","","","","Pending"`, lines[2])
}

func TestExportCSVEscapesInnerQuotes(t *testing.T) {
	leads := []entity.Lead{
		{Email: "a@x.com", Name: `Ann "The Closer" Lee`, Company: "Acme, Inc"},
	}

	out := usecase.ExportCSV(leads)

	assert.Contains(t, out, `"Ann ""The Closer"" Lee"`)
	assert.Contains(t, out, `"Acme, Inc"`)
}

func TestExportCSVEmptySetKeepsHeader(t *testing.T) {
	out := usecase.ExportCSV(nil)

	assert.Equal(t, exportHeaderLine+"\n", out)
}

func TestExportCSVRespectsFilter(t *testing.T) {
	leads := filterFixture()
	filtered := usecase.FilterLeads(leads, usecase.LeadFilter{Industry: "Fintech"})

	out := usecase.ExportCSV(filtered)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"b@x.com"`)
}
