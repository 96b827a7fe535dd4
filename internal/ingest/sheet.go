package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// ErrBadSheet marks input that cannot be processed at all (unreadable CSV,
// missing columns). Row level problems are reported in results instead.
var ErrBadSheet = errors.New("bad csv")

// sheet is a parsed CSV with a case-insensitive header index.
type sheet struct {
	cols map[string]int
	rows [][]string
}

func readSheet(r io.Reader) (*sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrBadSheet)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	s := &sheet{cols: make(map[string]int, len(header)), rows: records[1:]}
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := s.cols[key]; !dup {
			s.cols[key] = i
		}
	}
	return s, nil
}

func normalizeHeader(h string) string { return strings.ToLower(strings.TrimSpace(h)) }

// require fails with the list of missing columns.
func (s *sheet) require(names ...string) error {
	missing := lo.Filter(names, func(n string, _ int) bool {
		_, ok := s.cols[normalizeHeader(n)]
		return !ok
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns: %s", ErrBadSheet, strings.Join(missing, ", "))
	}
	return nil
}

// firstCol returns the first of the given header names present in the sheet.
func (s *sheet) firstCol(names ...string) (string, bool) {
	return lo.Find(names, func(n string) bool {
		_, ok := s.cols[normalizeHeader(n)]
		return ok
	})
}

// cell returns the trimmed value of a column, "" when absent or short.
func (s *sheet) cell(row []string, name string) string {
	i, ok := s.cols[normalizeHeader(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	return lo.EveryBy(row, func(v string) bool { return strings.TrimSpace(v) == "" })
}
