package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		want  time.Time
	}{
		{"2024-06-01", true, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06", true, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024", true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T10:30:00Z", true, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-06-01 10:30:00", true, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"last summer", false, time.Time{}},
	}
	for _, tt := range tests {
		d := ParseDate(tt.raw)
		if d.Valid != tt.valid {
			t.Errorf("ParseDate(%q).Valid = %v", tt.raw, d.Valid)
		}
		if !d.Time.Equal(tt.want) {
			t.Errorf("ParseDate(%q).Time = %v, want %v", tt.raw, d.Time, tt.want)
		}
		if d.IsZero() {
			t.Errorf("ParseDate(%q) should be present", tt.raw)
		}
	}
	if !ParseDate("   ").IsZero() {
		t.Error("blank date should be absent")
	}
}

func TestDateCompare(t *testing.T) {
	early := ParseDate("2020-01")
	late := ParseDate("2021-01")
	bad := ParseDate("soon")
	worse := ParseDate("tbd")

	if early.Compare(late) >= 0 || late.Compare(early) <= 0 {
		t.Error("chronological order broken")
	}
	if late.Compare(ParseDate("2021-01-01")) != 0 {
		t.Error("equal instants should compare equal")
	}
	if early.Compare(bad) <= 0 || bad.Compare(early) >= 0 {
		t.Error("valid dates should rank above invalid ones")
	}
	if bad.Compare(worse) >= 0 {
		t.Error("invalid dates should compare by raw text")
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		start, end string
		kind       PeriodKind
		ongoing    bool
		label      string
	}{
		{"2020-01", "2021-03", Dated, false, "Jan 2020 - Mar 2021"},
		{"2020-01", "", Dated, true, "Jan 2020 - Present"},
		{"", "2023-01", Dated, false, "Jan 2023"},
		{"", "", Undated, false, ""},
		{"someday", "", Dated, true, "someday - Present"},
	}
	for _, tt := range tests {
		p := Period{Start: ParseDate(tt.start), End: ParseDate(tt.end)}
		if got := p.Kind(); got != tt.kind {
			t.Errorf("Period(%q,%q).Kind() = %v", tt.start, tt.end, got)
		}
		if got := p.Ongoing(); got != tt.ongoing {
			t.Errorf("Period(%q,%q).Ongoing() = %v", tt.start, tt.end, got)
		}
		if got := p.Label(); got != tt.label {
			t.Errorf("Period(%q,%q).Label() = %q, want %q", tt.start, tt.end, got, tt.label)
		}
	}
}

func TestReadTimeString(t *testing.T) {
	if got := ReadTime(4).String(); got != "4 min read" {
		t.Errorf("got %q", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	in := Project{
		Slug: "a",
		Period: Period{
			Start: ParseDate("2024-01"),
			End:   ParseDate("sometime"),
		},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Project
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	start := out.Period.Start
	if !start.Valid || start.Raw != "2024-01" || !start.Time.Equal(in.Period.Start.Time) {
		t.Errorf("start = %+v, want %+v", start, in.Period.Start)
	}
	if end := out.Period.End; end.Valid || end.Raw != "sometime" {
		t.Errorf("end = %+v", end)
	}
	if out.Period.Kind() != Dated || out.Period.Label() != in.Period.Label() {
		t.Errorf("period = %+v", out.Period)
	}
}

func TestDateJSONRoundTrip_Absent(t *testing.T) {
	data, err := json.Marshal(Project{Slug: "c"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Project
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Period.Start.IsZero() || !out.Period.End.IsZero() || out.Period.Kind() != Undated {
		t.Errorf("period = %+v, want undated", out.Period)
	}
}

func TestPostJSONRoundTrip(t *testing.T) {
	in := Post{Slug: "june", Date: ParseDate("2024-06-01"), ReadTime: 3}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Post
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ReadTime != 3 {
		t.Errorf("read time = %d", out.ReadTime)
	}
	if out.Date.Raw != "2024-06-01" || out.Date.Compare(in.Date) != 0 {
		t.Errorf("date = %+v", out.Date)
	}
}

func TestReadTimeUnmarshalText(t *testing.T) {
	var r ReadTime
	if err := r.UnmarshalText([]byte("12")); err != nil || r != 12 {
		t.Errorf("got %d, %v", r, err)
	}
	if err := r.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected error for non-numeric read time")
	}
}
