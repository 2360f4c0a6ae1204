package cv

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatij/folio/internal/models"
)

func testProfile() Profile {
	return Profile{
		Name:     "Ada Example",
		Title:    "Software Engineer",
		Location: "Skopje",
		Email:    "ada@example.com",
		Website:  "https://example.com",
		Summary:  "Builds backend systems.",
		Education: []Education{
			{Institution: "Faculty of Computing", Period: "Sep 2013 - Nov 2018", Degree: "BSc Computer Science"},
		},
		Skills: []Skill{
			{Label: "Languages", Value: "Go, TypeScript, Python"},
		},
	}
}

func cvProject(slug, title, start, end string, show bool) models.Project {
	return models.Project{
		Slug:         slug,
		Title:        title,
		Description:  "Description of " + slug,
		Technologies: []string{"Go", "SQLite"},
		GitHub:       "https://github.com/example/" + slug,
		MyRole:       "Author",
		ShowInCV:     show,
		Period:       models.Period{Start: models.ParseDate(start), End: models.ParseDate(end)},
	}
}

func TestNewInput_FilterAndPartition(t *testing.T) {
	projects := []models.Project{
		cvProject("b", "B", "2024-01", "", true),
		cvProject("hidden", "Hidden", "2023-01", "", false),
		cvProject("a", "A", "", "2023-01", true),
		cvProject("c", "C", "", "", true),
		cvProject("side-hidden", "", "", "", false),
	}
	in := NewInput(projects)
	require.Len(t, in.Projects, 2)
	assert.Equal(t, "b", in.Projects[0].Slug)
	assert.Equal(t, "a", in.Projects[1].Slug)
	require.Len(t, in.SideProjects, 1)
	assert.Equal(t, "c", in.SideProjects[0].Slug)
	assert.False(t, in.Empty())
	assert.True(t, NewInput(nil).Empty())
}

func TestRender_ProducesPDF(t *testing.T) {
	r := NewRenderer(testProfile())
	var buf bytes.Buffer
	err := r.Render(&buf, []models.Project{
		cvProject("b", "B", "2024-01", "", true),
		cvProject("side-thing", "", "", "", true),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(testProfile())
	projects := []models.Project{
		cvProject("b", "B", "2024-01", "", true),
		cvProject("a", "A", "", "2023-01", true),
	}
	var first, second bytes.Buffer
	require.NoError(t, r.Render(&first, projects))
	require.NoError(t, r.Render(&second, projects))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRender_PaginatesLongInput(t *testing.T) {
	r := NewRenderer(testProfile())

	short, err := r.build(NewInput([]models.Project{cvProject("one", "One", "2020", "", true)}))
	require.NoError(t, err)
	assert.Equal(t, 1, short.PageCount())

	var many []models.Project
	for i := range 60 {
		many = append(many, cvProject(fmt.Sprintf("p-%02d", i), fmt.Sprintf("Project %02d", i), "2020-01", "2021-01", true))
	}
	long, err := r.build(NewInput(many))
	require.NoError(t, err)
	assert.Greater(t, long.PageCount(), 1)
}

func TestRender_EmptyProfile(t *testing.T) {
	r := NewRenderer(Profile{})
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, nil))
	assert.NotZero(t, buf.Len())
}

func TestProjectTitle(t *testing.T) {
	assert.Equal(t, "Given", projectTitle(models.Project{Slug: "x", Title: "Given"}))
	assert.Equal(t, "Side Thing", projectTitle(models.Project{Slug: "side-thing"}))
	assert.Equal(t, "Snake Case", projectTitle(models.Project{Slug: "snake_case"}))
}

func TestRender_ConcurrentUntitled(t *testing.T) {
	r := NewRenderer(testProfile())
	projects := []models.Project{
		{Slug: "first-thing", ShowInCV: true, Period: models.Period{Start: models.ParseDate("2024-01")}},
		{Slug: "side_thing", ShowInCV: true},
	}

	const workers = 8
	out := make([][]byte, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			errs[i] = r.Render(&buf, projects)
			out[i] = buf.Bytes()
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, out[0], out[i])
	}
}
