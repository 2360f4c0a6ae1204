package content

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ignatij/folio/internal/models"
)

// CompareProjects is the total order used for project listings:
//   - dated projects before undated ones;
//   - among dated: ongoing (no end) first, then by end date newest first;
//     ongoing projects by start date newest first, a start date beating none;
//   - remaining ties by title, then slug.
func CompareProjects(a, b models.Project) int {
	if c := cmp.Compare(a.Period.Kind(), b.Period.Kind()); c != 0 {
		return c
	}
	if a.Period.IsDated() {
		if c := compareDated(a.Period, b.Period); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

func compareDated(a, b models.Period) int {
	aEnded, bEnded := !a.End.IsZero(), !b.End.IsZero()
	switch {
	case aEnded && bEnded:
		return b.End.Compare(a.End)
	case aEnded:
		return 1
	case bEnded:
		return -1
	}

	aStarted, bStarted := !a.Start.IsZero(), !b.Start.IsZero()
	switch {
	case aStarted && bStarted:
		return b.Start.Compare(a.Start)
	case aStarted:
		return -1
	case bStarted:
		return 1
	}
	return 0
}

// SortProjects orders projects in place with CompareProjects.
func SortProjects(projects []models.Project) {
	slices.SortStableFunc(projects, CompareProjects)
}

// ComparePosts orders posts newest first, ties by slug.
func ComparePosts(a, b models.Post) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// SortPosts orders posts in place with ComparePosts.
func SortPosts(posts []models.Post) {
	slices.SortStableFunc(posts, ComparePosts)
}

// FilterForCV drops projects marked show_in_cv: false, keeping order.
func FilterForCV(projects []models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ShowInCV {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits projects into dated and undated, keeping order. It uses
// the same predicate as the listing tiers.
func Partition(projects []models.Project) (dated, undated []models.Project) {
	for _, p := range projects {
		if p.Period.IsDated() {
			dated = append(dated, p)
		} else {
			undated = append(undated, p)
		}
	}
	return dated, undated
}
