package interactivebrokers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSchema reports content that does not match the structure an activity
// statement is expected to have. I/O failures are returned as-is, so callers
// can tell the two apart with errors.Is.
var ErrSchema = errors.New("unexpected statement structure")

// Record is one decoded row of a section. Field names come from the
// section's own header row, which is the only place the file declares its
// column layout.
type Record struct {
	columns []string
	fields  map[string]string
}

// Has reports whether the record has a column with the given name.
func (r Record) Has(column string) bool {
	_, ok := r.fields[column]
	return ok
}

// Get returns the value of the given column, or "" if the column is absent.
func (r Record) Get(column string) string { return r.fields[column] }

// String formats the record as "column=value" pairs in column order, for
// error messages.
func (r Record) String() string {
	var b strings.Builder
	seen := make(map[string]bool, len(r.columns))
	for _, column := range r.columns {
		if seen[column] {
			continue
		}
		seen[column] = true
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", column, r.fields[column])
	}
	return b.String()
}

// section is a contiguous, category-homogeneous run of raw lines
// representing one logical table of the statement.
type section struct {
	lines []string
}

// records decodes the section as CSV using its own first line as the column
// header, producing one Record per subsequent row.
func (s section) records() ([]Record, error) {
	r := csv.NewReader(strings.NewReader(strings.Join(s.lines, "\n")))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode section: %v", ErrSchema, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				fields[column] = row[i]
			} else {
				fields[column] = ""
			}
		}
		records = append(records, Record{columns: header, fields: fields})
	}
	return records, nil
}

// splitSections splits the raw lines into sections and retains only those
// whose first data row satisfies keep.
//
// The file declares neither a fixed layout nor a schema up front: the
// category name and the column names both live in the data. Lines are
// therefore accumulated untyped; a new section begins when the first column
// value changes, or when a row contains the literal "Header" token (which
// marks a repeated sub-table header even when the first column is
// unchanged). The just-closed section is then re-decoded with its own first
// row as header and tested. Only the first data row is tested: a section
// whose later rows diverge from the first is still fully retained. Sections
// with no data rows are dropped.
func splitSections(lines []string, keep func(Record) bool) ([]section, error) {
	var sections []section
	var buffer []string
	firstColumn := ""

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		s := section{lines: buffer}
		buffer = nil
		rows, err := s.records()
		if err != nil {
			return err
		}
		if len(rows) > 0 && keep(rows[0]) {
			sections = append(sections, s)
		}
		return nil
	}

	for _, line := range lines {
		row, err := readRow(line)
		if err != nil {
			return nil, err
		}
		if (len(row) > 0 && row[0] != firstColumn) || containsHeaderToken(row) {
			// Start of a new section
			if len(row) > 0 {
				firstColumn = row[0]
			}
			if err := flush(); err != nil {
				return nil, err
			}
		}
		buffer = append(buffer, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sections, nil
}

// readRow decodes a single raw line as one CSV row with no schema.
func readRow(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode line %q: %v", ErrSchema, line, err)
	}
	return row, nil
}

func containsHeaderToken(row []string) bool {
	for _, value := range row {
		if value == "Header" {
			return true
		}
	}
	return false
}

// having returns a predicate that retains sections whose rows carry the
// given column, which is how the statement names its tables.
func having(column string) func(Record) bool {
	return func(r Record) bool { return r.Has(column) }
}

// requireData fails on any row that is not a substantive "Data" row.
func requireData(row Record) error {
	if marker := row.Get("Header"); marker != "Data" {
		return fmt.Errorf("%w: want a Data row, got %q in row %v", ErrSchema, marker, row)
	}
	return nil
}

// skipAggregate reports whether the row is a SubTotal or Total aggregate
// row, and fails on any other non-Data marker.
func skipAggregate(row Record) (bool, error) {
	switch marker := row.Get("Header"); marker {
	case "Data":
		return false, nil
	case "SubTotal", "Total":
		return true, nil
	default:
		return false, fmt.Errorf("%w: unsupported header marker %q in row %v", ErrSchema, marker, row)
	}
}
