// Package models defines the domain types for folio content.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies a content collection.
type Kind string

// Content kinds.
const (
	KindProject Kind = "project"
	KindPost    Kind = "post"
)

// PeriodKind is the coarse ordering tier of a project.
type PeriodKind int

// Period kinds. Dated records always sort before undated ones.
const (
	Dated PeriodKind = iota
	Undated
)

// String returns the tier name.
func (k PeriodKind) String() string {
	if k == Dated {
		return "dated"
	}
	return "undated"
}

// Period is the timeline of a project, classified once at load time.
type Period struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

// Kind returns Dated when either bound is present, Undated otherwise.
func (p Period) Kind() PeriodKind {
	if p.Start.IsZero() && p.End.IsZero() {
		return Undated
	}
	return Dated
}

// IsDated is the partition predicate shared by the listing order and the CV.
func (p Period) IsDated() bool {
	return p.Kind() == Dated
}

// Ongoing reports a dated period without an end.
func (p Period) Ongoing() bool {
	return p.IsDated() && p.End.IsZero()
}

// Label formats the period as "Jan 2020 - Mar 2021" or "Jan 2020 - Present".
func (p Period) Label() string {
	start := p.Start.MonthYear()
	end := p.End.MonthYear()
	if end == "" && start != "" {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

// Project is a portfolio entry parsed from content/projects/<slug>.md.
type Project struct {
	Slug         string         `json:"slug"`
	Title        string         `json:"title,omitempty"`
	Excerpt      string         `json:"excerpt"`
	Description  string         `json:"description,omitempty"`
	Body         string         `json:"content"`
	Technologies []string       `json:"technologies,omitempty"`
	GitHub       string         `json:"github,omitempty"`
	Live         string         `json:"live,omitempty"`
	MyRole       string         `json:"my_role,omitempty"`
	ShowInCV     bool           `json:"show_in_cv"`
	Period       Period         `json:"period"`
	Tier         string         `json:"tier"`
	Meta         map[string]any `json:"meta,omitempty"`
	Checksum     string         `json:"checksum"`
	Source       string         `json:"-"`
}

// DisplayTitle falls back to the slug when the author gave no title.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Slug
}

// ReadTime is an estimated reading time in whole minutes.
type ReadTime int

// String renders the display form, e.g. "4 min read".
func (r ReadTime) String() string {
	return fmt.Sprintf("%d min read", int(r))
}

// MarshalText lets JSON encode the display form.
func (r ReadTime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the display form ("4 min read") or a bare number.
func (r *ReadTime) UnmarshalText(b []byte) error {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(string(b)), "%d", &n); err != nil {
		return fmt.Errorf("models: invalid read time %q: %w", b, err)
	}
	*r = ReadTime(n)
	return nil
}

// Post is a blog entry parsed from content/blog/<slug>.md.
type Post struct {
	Slug      string         `json:"slug"`
	Title     string         `json:"title,omitempty"`
	Excerpt   string         `json:"excerpt"`
	Body      string         `json:"content"`
	Tags      []string       `json:"tags,omitempty"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Date      Date           `json:"date"`
	ReadTime  ReadTime       `json:"readTime"`
	Meta      map[string]any `json:"meta,omitempty"`
	Checksum  string         `json:"checksum"`
	Source    string         `json:"-"`
}

// SourceMetadata describes a discovered content file before it is read.
type SourceMetadata struct {
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}
