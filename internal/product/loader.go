package product

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadEntriesFromCSV loads product entries from a CSV file with a header row.
// Recognized columns are strain, brand, grams and days_since, in any order.
func LoadEntriesFromCSV(path string) ([]Entry, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	entries, err := ReadEntries(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return entries, nil
}

// ReadEntries parses product CSV from r.
func ReadEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	if _, ok := cols["strain"]; !ok {
		return nil, fmt.Errorf("csv is missing the strain column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Entry{}
	for _, row := range rows[1:] {
		e := Entry{
			Strain:    get(row, "strain"),
			Brand:     get(row, "brand"),
			Grams:     get(row, "grams"),
			DaysSince: get(row, "days_since"),
		}
		if e == (Entry{}) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
