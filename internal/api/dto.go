package api

import (
	"github.com/ignatij/folio/internal/index"
	"github.com/ignatij/folio/internal/models"
)

// ProjectListItem is a project without its rendered body.
type ProjectListItem struct {
	Slug         string        `json:"slug"`
	Title        string        `json:"title,omitempty"`
	Excerpt      string        `json:"excerpt"`
	Description  string        `json:"description,omitempty"`
	Technologies []string      `json:"technologies"`
	GitHub       string        `json:"github,omitempty"`
	Live         string        `json:"live,omitempty"`
	Period       models.Period `json:"period"`
	PeriodLabel  string        `json:"period_label,omitempty"`
	Tier         string        `json:"tier"`
}

// ProjectListResponse wraps the ordered project listing.
type ProjectListResponse struct {
	Projects []ProjectListItem `json:"projects"`
	Total    int               `json:"total"`
}

// PostListItem is a post without its rendered body.
type PostListItem struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title,omitempty"`
	Excerpt   string          `json:"excerpt"`
	Tags      []string        `json:"tags"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Date      models.Date     `json:"date"`
	ReadTime  models.ReadTime `json:"readTime"`
}

// PostListResponse wraps the ordered post listing.
type PostListResponse struct {
	Posts []PostListItem `json:"posts"`
	Total int            `json:"total"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toProjectItems(projects []models.Project) []ProjectListItem {
	out := make([]ProjectListItem, len(projects))
	for i, p := range projects {
		out[i] = ProjectListItem{
			Slug:         p.Slug,
			Title:        p.Title,
			Excerpt:      p.Excerpt,
			Description:  p.Description,
			Technologies: nonNil(p.Technologies),
			GitHub:       p.GitHub,
			Live:         p.Live,
			Period:       p.Period,
			PeriodLabel:  p.Period.Label(),
			Tier:         p.Tier,
		}
	}
	return out
}

func toPostItems(posts []models.Post) []PostListItem {
	out := make([]PostListItem, len(posts))
	for i, p := range posts {
		out[i] = PostListItem{
			Slug:      p.Slug,
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Tags:      nonNil(p.Tags),
			Thumbnail: p.Thumbnail,
			Date:      p.Date,
			ReadTime:  p.ReadTime,
		}
	}
	return out
}
