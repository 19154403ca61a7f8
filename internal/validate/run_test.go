package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		[]string{"subject_id", "event_date"},
		map[string]schema.FieldRule{
			"event_date": schema.DateRule{},
		},
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s
}

// End-to-end scenario: missing nothing, one extra column, one bad date, one
// full-name subject ID.
func TestValidate(t *testing.T) {
	s := testSchema(t)
	header := []string{"subject_id", "event_date", "notes"}
	records := []Record{
		{"subject_id": "John Doe", "event_date": "13/45/2024", "notes": "n/a"},
	}

	rep := Validate(s, header, records)

	if !rep.Headers.IsValid {
		t.Error("headers should be valid (extra columns alone do not fail)")
	}
	if got := rep.Headers.Extra; len(got) != 1 || got[0] != "notes" {
		t.Errorf("Extra = %v, want [notes]", got)
	}
	if len(rep.Headers.Missing) != 0 {
		t.Errorf("Missing = %v, want empty", rep.Headers.Missing)
	}

	if rep.TotalRows != 1 {
		t.Errorf("TotalRows = %d, want 1", rep.TotalRows)
	}

	if len(rep.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", rep.Errors)
	}
	e := rep.Errors[0]
	if e.Column != "event_date" || e.Row != 2 {
		t.Errorf("error at %q row %d, want event_date row 2", e.Column, e.Row)
	}
	if e.Message != "Invalid date format. Expected MM/DD/YYYY" {
		t.Errorf("message = %q", e.Message)
	}

	if rep.SubjectIDs.NameCount != 1 || rep.SubjectIDs.Total() != 1 {
		t.Errorf("subject summary = %+v, want one name finding", rep.SubjectIDs)
	}
	if len(rep.SubjectIDs.Examples) != 1 || rep.SubjectIDs.Examples[0].Class != SubjectFullName {
		t.Errorf("examples = %+v", rep.SubjectIDs.Examples)
	}
}

func TestRunRowNumberingStartsAtTwo(t *testing.T) {
	s := testSchema(t)
	run := NewRun(s, []string{"subject_id", "event_date"})
	run.Row(Record{"event_date": "bad"})
	run.Row(Record{"event_date": "also bad"})
	rep := run.Finish()

	if len(rep.Errors) != 2 {
		t.Fatalf("Errors = %+v, want two", rep.Errors)
	}
	if rep.Errors[0].Row != 2 || rep.Errors[1].Row != 3 {
		t.Errorf("rows = %d, %d, want 2, 3", rep.Errors[0].Row, rep.Errors[1].Row)
	}
}

func TestRunCountsEveryRowOnce(t *testing.T) {
	s := testSchema(t)
	run := NewRun(s, []string{"subject_id", "event_date"})
	for i := 0; i < 10; i++ {
		run.Row(Record{"subject_id": "JD", "event_date": "01/02/2024"})
	}
	rep := run.Finish()
	if rep.TotalRows != 10 {
		t.Errorf("TotalRows = %d, want 10", rep.TotalRows)
	}
	if len(rep.Errors) != 0 {
		t.Errorf("Errors = %+v, want none", rep.Errors)
	}
}

func TestRunSubjectExampleCap(t *testing.T) {
	s := testSchema(t)
	run := NewRun(s, []string{"subject_id"})
	for i := 0; i < 12; i++ {
		run.Row(Record{"subject_id": "unknown"})
	}
	rep := run.Finish()

	if rep.SubjectIDs.UnknownCount != 12 {
		t.Errorf("UnknownCount = %d, want 12", rep.SubjectIDs.UnknownCount)
	}
	if len(rep.SubjectIDs.Examples) != 5 {
		t.Errorf("Examples length = %d, want 5", len(rep.SubjectIDs.Examples))
	}
	// The retained examples are the first five rows.
	for i, ex := range rep.SubjectIDs.Examples {
		if want := i + 2; ex.Row != want {
			t.Errorf("example %d row = %d, want %d", i, ex.Row, want)
		}
	}
}

func TestRunSkipRow(t *testing.T) {
	s := testSchema(t)
	run := NewRun(s, []string{"subject_id", "event_date"})
	run.Row(Record{"event_date": "01/02/2024"})
	run.SkipRow("wrong number of fields")
	run.Row(Record{"event_date": "bad date"})
	rep := run.Finish()

	if rep.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2 (skipped rows do not count)", rep.TotalRows)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0].Row != 3 {
		t.Errorf("Skipped = %+v, want one skip at row 3", rep.Skipped)
	}
	// The row after the skip keeps its file position.
	if len(rep.Errors) != 1 || rep.Errors[0].Row != 4 {
		t.Errorf("Errors = %+v, want one error at row 4", rep.Errors)
	}
}

func TestRunBadValueNeverAborts(t *testing.T) {
	s := testSchema(t)
	run := NewRun(s, []string{"subject_id", "event_date"})
	run.Row(Record{"subject_id": "unknown", "event_date": "not a date"})
	run.Row(Record{"subject_id": "JD", "event_date": "01/02/2024"})
	rep := run.Finish()

	if rep.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", rep.TotalRows)
	}
}

// Two identical runs must serialize to identical bytes: no timestamps,
// no map-ordering leaks.
func TestValidateIsDeterministic(t *testing.T) {
	s, err := schema.New(
		[]string{"subject_id", "event_date", "force_used", "officer_age"},
		map[string]schema.FieldRule{
			"event_date":  schema.DateRule{},
			"force_used":  schema.ListRule{Allowed: []string{"Yes", "No"}},
			"officer_age": schema.NumberRule{Min: floatPtr(18)},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	header := []string{"zz_extra", "subject_id", "event_date", "force_used", "officer_age", "aa_extra"}
	var records []Record
	for i := 0; i < 50; i++ {
		records = append(records, Record{
			"subject_id":  fmt.Sprintf("Subject Number%d", i),
			"event_date":  "1/2/2024",
			"force_used":  "maybe",
			"officer_age": "5",
		})
	}

	first, err := json.Marshal(Validate(s, header, records))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Validate(s, header, records))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different report bytes")
	}
}

func TestRunRulesForExtraColumnsStillApply(t *testing.T) {
	// A rule keyed by a column outside the expected set still fires when
	// the file carries that column.
	s, err := schema.New(
		[]string{"subject_id"},
		map[string]schema.FieldRule{
			"bonus_time": schema.TimeRule{},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	rep := Validate(s, []string{"subject_id", "bonus_time"}, []Record{
		{"subject_id": "JD", "bonus_time": "9:5"},
	})
	if len(rep.Errors) != 1 || rep.Errors[0].Column != "bonus_time" {
		t.Errorf("Errors = %+v, want one on bonus_time", rep.Errors)
	}
}
