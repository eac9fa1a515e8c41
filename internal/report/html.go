package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
)

// page is the data bound to the HTML report template.
type page struct {
	Title    string
	Sections []SectionResult
}

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"cells": func(r Row) []string { return r.Cells() },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css">
</head>
<body>
<section class="section">
<div class="container">
<h1 class="title">{{ .Title }}</h1>
{{- range .Sections }}
<div class="box" id="{{ .Key }}">
<h2 class="subtitle">{{ .Title }}</h2>
{{- if .Image }}
<img src="{{ .Image }}" alt="{{ .Title }}">
{{- end }}
<table class="table is-striped is-fullwidth">
<thead>
<tr>{{ range .Table.Columns }}<th>{{ . }}</th>{{ end }}</tr>
</thead>
<tbody>
{{- range .Table.Rows }}
<tr>{{ range cells . }}<td>{{ . }}</td>{{ end }}</tr>
{{- end }}
</tbody>
</table>
</div>
{{- end }}
</div>
</section>
</body>
</html>
`))

func renderHTML(w io.Writer, p page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("%w: html: %w", ErrRender, err)
	}
	return nil
}

func writeHTML(path string, p page) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrRender, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrRender, path, cerr)
		}
	}()
	return renderHTML(f, p)
}
