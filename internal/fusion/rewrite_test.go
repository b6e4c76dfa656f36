package fusion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/fusion-symbols/internal/hgnc"
)

var testSymbols = hgnc.SymbolMap{
	"OLD1": {"NEW1"},
	"OLD2": {"NEW1"},
	"MLL":  {"KMT2A"},
	"OLDX": {"NEWA", "NEWB"},
}

func TestSplitFusion(t *testing.T) {
	tests := []struct {
		cell  string
		geneA string
		geneB string
		ok    bool
	}{
		{"BCR--ABL1", "BCR", "ABL1", true},
		{"KRAS", "", "", false},
		{"A--B--C", "A", "B--C", true},
		{"--ABL1", "", "ABL1", true},
		{"RP11-123A4.1--ABL1", "RP11-123A4.1", "ABL1", true},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			a, b, ok := SplitFusion(tt.cell)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.geneA, a)
				assert.Equal(t, tt.geneB, b)
			}
		})
	}
}

func TestRewriteCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"single deprecated", "MLL", "KMT2A"},
		{"single current", "KMT2A", "KMT2A"},
		{"fusion both deprecated", "MLL--OLD1", "KMT2A--NEW1"},
		{"fusion first deprecated", "OLD1--GENE2", "NEW1--GENE2"},
		{"fusion second deprecated", "AFF1--MLL", "AFF1--KMT2A"},
		{"fusion unknown", "BCR--ABL1", "BCR--ABL1"},
		{"empty", "", ""},
		{"hyphenated name", "HLA-A", "HLA-A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteCell(tt.cell, testSymbols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteCell_Ambiguous(t *testing.T) {
	for _, cell := range []string{"OLDX", "OLDX--ABL1", "BCR--OLDX"} {
		t.Run(cell, func(t *testing.T) {
			_, err := RewriteCell(cell, testSymbols)
			var ae *hgnc.AmbiguousSymbolError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, "OLDX", ae.Symbol)
			assert.Equal(t, []string{"NEWA", "NEWB"}, ae.Candidates)
		})
	}
}

func TestNewRewriter_MissingColumn(t *testing.T) {
	header := []string{"FusionName", "Gene1A", "JunctionReads"}

	_, err := NewRewriter(header, DefaultUpdateColumns, testSymbols)
	var ce *ColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Gene1B", ce.Column)
}

func TestRewriter_Rewrite(t *testing.T) {
	header := []string{"FusionName", "JunctionReads", "Gene1A", "Gene1B", "Notes"}
	rw, err := NewRewriter(header, DefaultUpdateColumns, testSymbols)
	require.NoError(t, err)

	input := []string{"MLL--AFF1", "12", "MLL", "AFF1", "OLD1 in notes"}
	got, err := rw.Rewrite(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"KMT2A--AFF1", "12", "KMT2A", "AFF1", "OLD1 in notes"}, got)
	assert.Equal(t, []string{"MLL--AFF1", "12", "MLL", "AFF1", "OLD1 in notes"}, input, "input row is not modified")
	assert.Equal(t, Stats{Rows: 1, CellsUpdated: 2}, rw.Stats())
}

func TestRewriter_OnlyRequestedColumns(t *testing.T) {
	header := []string{"FusionName", "Gene1A", "Gene1B"}
	rw, err := NewRewriter(header, []string{"Gene1B"}, testSymbols)
	require.NoError(t, err)

	got, err := rw.Rewrite([]string{"OLD1--OLD2", "OLD1", "OLD2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OLD1--OLD2", "OLD1", "NEW1"}, got)
}

func TestRewriter_ExtraFieldsPreserved(t *testing.T) {
	header := []string{"Gene1A"}
	rw, err := NewRewriter(header, []string{"Gene1A"}, testSymbols)
	require.NoError(t, err)

	got, err := rw.Rewrite([]string{"OLD1", "", "trailing", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW1", "", "trailing", ""}, got)
}

func TestRewriter_ShortRow(t *testing.T) {
	header := []string{"FusionName", "Gene1A", "Gene1B"}
	rw, err := NewRewriter(header, DefaultUpdateColumns, testSymbols)
	require.NoError(t, err)

	_, err = rw.Rewrite([]string{"OLD1--GENE2", "OLD1"})
	assert.ErrorIs(t, err, ErrShortRow)
	assert.Contains(t, err.Error(), "Gene1B")
}

func TestRewriter_AmbiguousStopsInColumnOrder(t *testing.T) {
	header := []string{"FusionName", "Gene1A", "Gene1B"}
	rw, err := NewRewriter(header, []string{"Gene1B", "Gene1A"}, testSymbols)
	require.NoError(t, err)

	_, err = rw.Rewrite([]string{"OLDX--OLDX", "OLDX", "OLDX"})
	var ae *hgnc.AmbiguousSymbolError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, err.Error(), "column Gene1B")
}
