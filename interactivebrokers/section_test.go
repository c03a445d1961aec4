package interactivebrokers

import (
	"testing"
)

func TestSplitSections_FirstColumnChange(t *testing.T) {
	lines := []string{
		"Statement,Header,Field Name,Field Value",
		"Statement,Data,Title,Activity Statement",
		"Account Information,Header,Field Name,Field Value",
		"Account Information,Data,Name,John Doe",
	}
	sections, err := splitSections(lines, having("Statement"))
	if err != nil {
		t.Fatalf("splitSections() error = %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("splitSections() returned %d sections, want 1", len(sections))
	}
	rows, err := sections[0].records()
	if err != nil {
		t.Fatalf("records() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("records() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].Get("Field Name"); got != "Title" {
		t.Errorf("Field Name = %q, want %q", got, "Title")
	}
}

// A repeated header row starts a new section even when the first column is
// unchanged. This is how the statement writes one table per asset category
// under the same category name.
func TestSplitSections_HeaderTokenBoundary(t *testing.T) {
	lines := []string{
		"Trades,Header,DataDiscriminator,Asset Category,Symbol",
		"Trades,Data,Order,Stocks,AAPL",
		"Trades,Header,DataDiscriminator,Asset Category,Symbol,Expiry",
		"Trades,Data,Order,Equity and Index Options,SQQQ 17JUN22 42.0 P,17JUN22",
	}
	sections, err := splitSections(lines, having("Trades"))
	if err != nil {
		t.Fatalf("splitSections() error = %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("splitSections() returned %d sections, want 2", len(sections))
	}
	first, err := sections[0].records()
	if err != nil {
		t.Fatalf("records() error = %v", err)
	}
	if first[0].Has("Expiry") {
		t.Error("first section should not have the Expiry column of the second")
	}
	second, err := sections[1].records()
	if err != nil {
		t.Fatalf("records() error = %v", err)
	}
	if got := second[0].Get("Expiry"); got != "17JUN22" {
		t.Errorf("Expiry = %q, want %q", got, "17JUN22")
	}
}

// Only the first data row decides whether a section is kept; later rows never
// re-qualify or disqualify it.
func TestSplitSections_PredicateSeesFirstRowOnly(t *testing.T) {
	lines := []string{
		"Trades,Header,DataDiscriminator,Asset Category,Symbol",
		"Trades,Data,Order,Stocks,AAPL",
		"Trades,Data,Order,Forex,EUR.USD",
	}
	sections, err := splitSections(lines, func(r Record) bool {
		return r.Has("Trades") && r.Get("Asset Category") != "Forex"
	})
	if err != nil {
		t.Fatalf("splitSections() error = %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("splitSections() returned %d sections, want 1", len(sections))
	}
	rows, err := sections[0].records()
	if err != nil {
		t.Fatalf("records() error = %v", err)
	}
	// The Forex row rides along because the first row qualified the section.
	if len(rows) != 2 {
		t.Errorf("records() returned %d rows, want 2", len(rows))
	}
}

func TestSplitSections_DropsHeaderOnlySection(t *testing.T) {
	lines := []string{
		"Trades,Header,DataDiscriminator,Asset Category,Symbol",
		"Codes,Header,Code,Meaning",
		"Codes,Data,O,Opening Trade",
	}
	sections, err := splitSections(lines, having("Trades"))
	if err != nil {
		t.Fatalf("splitSections() error = %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("splitSections() returned %d sections, want 0 for a section without data rows", len(sections))
	}
}

// The final section must not be lost when the file ends without another
// section following it.
func TestSplitSections_FlushesLastSectionAtEOF(t *testing.T) {
	lines := []string{
		"Statement,Header,Field Name,Field Value",
		"Statement,Data,Title,Activity Statement",
		"Trades,Header,DataDiscriminator,Asset Category,Symbol",
		"Trades,Data,Order,Stocks,AAPL",
	}
	sections, err := splitSections(lines, having("Trades"))
	if err != nil {
		t.Fatalf("splitSections() error = %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("splitSections() returned %d sections, want 1", len(sections))
	}
}

func TestRecords_MissingTrailingFields(t *testing.T) {
	s := section{lines: []string{
		"Trades,Header,DataDiscriminator,Asset Category,Symbol",
		"Trades,Data,Order",
	}}
	rows, err := s.records()
	if err != nil {
		t.Fatalf("records() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("records() returned %d rows, want 1", len(rows))
	}
	row := rows[0]
	if !row.Has("Symbol") {
		t.Error("Has(Symbol) = false, want true: absent trailing fields default to empty")
	}
	if got := row.Get("Symbol"); got != "" {
		t.Errorf("Get(Symbol) = %q, want empty", got)
	}
}

func TestSkipAggregate(t *testing.T) {
	tests := []struct {
		marker  string
		skip    bool
		wantErr bool
	}{
		{marker: "Data", skip: false},
		{marker: "SubTotal", skip: true},
		{marker: "Total", skip: true},
		{marker: "Header", wantErr: true},
		{marker: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			row := Record{columns: []string{"Header"}, fields: map[string]string{"Header": tt.marker}}
			skip, err := skipAggregate(row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("skipAggregate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && skip != tt.skip {
				t.Errorf("skipAggregate() = %v, want %v", skip, tt.skip)
			}
		})
	}
}
