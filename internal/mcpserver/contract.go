package mcpserver

// ContentFormat describes the Markdown files folio reads and the
// front-matter keys it recognises.
const ContentFormat = `# Folio Content Format

Content lives in two flat directories under the content root:

- ` + "`projects/<slug>.md`" + ` for portfolio projects
- ` + "`blog/<slug>.md`" + ` for blog posts

The slug is the file name without ` + "`.md`" + `. Sub-directories and other
file types are ignored. Front-matter is optional; a file without it is
loaded with empty metadata.

## Projects

` + "```" + `markdown
---
title: Folio                    # display title; falls back to the slug
excerpt: One line summary       # optional; derived from the body otherwise
description: Longer summary     # printed in the CV
start_date: 2024-01             # ISO date (YYYY, YYYY-MM or YYYY-MM-DD)
end_date: 2024-06               # absent means ongoing when start_date is set
technologies: [Go, SQLite]
github: https://github.com/you/folio
live: https://folio.example.com
my_role: Author                 # printed in the CV as "My role: ..."
show_in_cv: true                # false hides the project from the CV only
---
` + "```" + `

Ordering: projects with a start or end date come first. Among them, ongoing
projects lead (latest start first), then finished ones by end date, newest
first. Projects without dates follow, ordered by title.

## Blog posts

` + "```" + `markdown
---
title: Hello
date: 2024-06-01                # defaults to load time when absent
excerpt: Optional summary
tags: [go, web]
thumbnail: /images/hello.png
---
` + "```" + `

Posts are listed newest first. Read time is estimated at 200 words per minute.
`
