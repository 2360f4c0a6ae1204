// Package cv lays out the curriculum vitae PDF from project metadata.
package cv

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ignatij/folio/internal/content"
	"github.com/ignatij/folio/internal/models"
)

// Profile is the static personal information printed above the projects.
type Profile struct {
	Name      string      `yaml:"name" json:"name"`
	Title     string      `yaml:"title" json:"title"`
	Location  string      `yaml:"location" json:"location,omitempty"`
	Email     string      `yaml:"email" json:"email,omitempty"`
	Website   string      `yaml:"website" json:"website,omitempty"`
	Summary   string      `yaml:"summary" json:"summary,omitempty"`
	Education []Education `yaml:"education" json:"education,omitempty"`
	Skills    []Skill     `yaml:"skills" json:"skills,omitempty"`
}

// Education is one degree or school entry.
type Education struct {
	Institution string `yaml:"institution" json:"institution"`
	Period      string `yaml:"period" json:"period,omitempty"`
	Degree      string `yaml:"degree" json:"degree,omitempty"`
}

// Skill is a labelled, comma separated skill list, e.g. "Languages: Go, Python".
type Skill struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Input is what the CV prints from the project collection.
type Input struct {
	Projects     []models.Project `json:"projects"`
	SideProjects []models.Project `json:"side_projects"`
}

// NewInput drops projects hidden from the CV and splits the rest into dated
// work and undated side projects. Both halves keep the listing order.
func NewInput(projects []models.Project) Input {
	dated, undated := content.Partition(content.FilterForCV(projects))
	return Input{Projects: dated, SideProjects: undated}
}

// Empty reports whether there is no project to print.
func (in Input) Empty() bool {
	return len(in.Projects) == 0 && len(in.SideProjects) == 0
}

// projectTitle returns the authored title, or the slug turned into words.
// A Caser holds state, so each call builds its own.
func projectTitle(p models.Project) string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	words := strings.FieldsFunc(p.Slug, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
