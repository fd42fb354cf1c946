package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Columns of a LiftLog CSV export. Only date, lift and the top set are required;
// the rest may be omitted from the header.
var columns = []string{"date", "lift", "top_set_weight", "top_set_reps", "backoff_weight", "backoff_reps", "notes", "tags"}

var requiredColumns = []string{"date", "lift", "top_set_weight", "top_set_reps"}

// RowError describes a CSV row that could not be turned into a log.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseCSV reads a workout-log export. Rows that fail to parse or validate are
// returned as RowErrors alongside the good rows; a malformed header or
// unreadable input is a hard error.
func ParseCSV(r io.Reader) ([]models.LogInput, []*RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var logs []models.LogInput
	var rejected []*RowError
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rejected = append(rejected, &RowError{Line: perr.Line, Err: perr.Err})
				continue
			}
			return logs, rejected, fmt.Errorf("reading rows: %w", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)

		in, err := parseRow(rec, idx)
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			rejected = append(rejected, &RowError{Line: line, Err: err})
			continue
		}
		logs = append(logs, in)
	}
	return logs, rejected, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name == "" {
			continue
		}
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("header: duplicate column %q", name)
		}
		idx[name] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("header: missing column %q (want %s)", c, strings.Join(columns, ","))
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int) (models.LogInput, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	performed, err := parseDate(field("date"))
	if err != nil {
		return models.LogInput{}, err
	}
	in := models.LogInput{
		LiftName:    field("lift"),
		Notes:       field("notes"),
		Tags:        models.ParseTags(field("tags")),
		PerformedAt: &performed,
	}
	if in.TopSetWeight, err = parseWeight("top_set_weight", field("top_set_weight")); err != nil {
		return in, err
	}
	if in.TopSetReps, err = parseReps("top_set_reps", field("top_set_reps")); err != nil {
		return in, err
	}
	if in.BackoffWeight, err = parseWeight("backoff_weight", field("backoff_weight")); err != nil {
		return in, err
	}
	if in.BackoffReps, err = parseReps("backoff_reps", field("backoff_reps")); err != nil {
		return in, err
	}
	return in, nil
}

// parseDate accepts a plain calendar date (taken as UTC midnight) or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date: required")
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: %q is neither YYYY-MM-DD nor RFC 3339", s)
	}
	return t.UTC(), nil
}

func parseWeight(name, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

func parseReps(name, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", name, s)
	}
	return v, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
