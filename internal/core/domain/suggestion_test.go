package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() *SuggestionTable {
	return &SuggestionTable{
		WorkID: "work-1",
		Rows: []SuggestionRow{
			{Index: 0, Heading: "Introduction", Level: 1, Vectorize: true, Span: Span{StartLine: 0, EndLine: 4}},
			{Index: 1, Heading: "Background", Level: 2, Span: Span{StartLine: 5, EndLine: 9}},
		},
	}
}

func TestSuggestionTable_ValidateAccepts(t *testing.T) {
	assert.NoError(t, validTable().Validate())
}

func TestSuggestionTable_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SuggestionTable)
	}{
		{"gap in indices", func(tb *SuggestionTable) { tb.Rows[1].Index = 5 }},
		{"level too low", func(tb *SuggestionTable) { tb.Rows[0].Level = 0 }},
		{"level too high", func(tb *SuggestionTable) { tb.Rows[0].Level = 7 }},
		{"empty heading", func(tb *SuggestionTable) { tb.Rows[1].Heading = "" }},
		{"inverted span", func(tb *SuggestionTable) { tb.Rows[0].Span = Span{StartLine: 4, EndLine: 2} }},
		{"negative start", func(tb *SuggestionTable) { tb.Rows[0].Span.StartLine = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := validTable()
			tt.mutate(table)
			assert.ErrorIs(t, table.Validate(), ErrInvalidInput)
		})
	}
}

func TestSuggestionTable_CloneIsIndependent(t *testing.T) {
	table := validTable()
	cp := table.Clone()

	cp.Rows[0].Vectorize = false
	cp.Rows[0].Heading = "Changed"

	assert.True(t, table.Rows[0].Vectorize)
	assert.Equal(t, "Introduction", table.Rows[0].Heading)
}

func TestArtifactName_Filename(t *testing.T) {
	assert.Equal(t, "report.style.md", ArtifactStyle.Filename("report"))
	assert.Equal(t, "report.hier.md", ArtifactHier.Filename("report"))
	assert.Equal(t, "report.toc_titles.md", ArtifactTOCTitles.Filename("report"))
	assert.Equal(t, "report.titles.md", ArtifactTitles.Filename("report"))
}

func TestDefaultChecks_RegistrationOrder(t *testing.T) {
	require.Len(t, DefaultChecks, 4)
	assert.Equal(t, "style+hierarchy", DefaultChecks[0].Name)
	assert.Equal(t, "toc titles", DefaultChecks[1].Name)
	assert.Equal(t, "titles", DefaultChecks[2].Name)
	assert.Equal(t, "any markdown", DefaultChecks[3].Name)
	assert.Equal(t, PolicyAny, DefaultChecks[3].Policy)
}
