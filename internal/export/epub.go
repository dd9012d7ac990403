// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/taibuivan/riwayati/internal/core/novel"
)

var titlePageTemplate = template.Must(template.New("title").Parse(
	`<h1>{{.Title}}</h1>
<div class="author">بواسطة: {{.Author}}</div>
{{with .Description}}<div class="description">{{.}}</div>{{end}}
`))

// Section bodies are XHTML; paragraphs replace pre-wrap, which readers ignore.
var sectionTemplate = template.Must(template.New("section").Parse(
	`<div dir="rtl" class="chapter">
<h2>{{.Title}}</h2>
<div class="content">{{range .Paragraphs}}<p>{{.}}</p>
{{end}}</div>
</div>
`))

// EPUB builds a right-to-left EPUB book: a title page, then one section per chapter.
func EPUB(detail *novel.Detail) ([]byte, error) {
	view := newBook(detail)

	book, err := epub.NewEpub(view.Title)
	if err != nil {
		return nil, fmt.Errorf("export: creating epub: %w", err)
	}

	// 1. Metadata
	book.SetAuthor(view.Author)
	if view.Description != "" {
		book.SetDescription(view.Description)
	}
	book.SetLang("ar")
	book.SetPpd("rtl")

	cssPath, err := book.AddCSS("data:text/css;base64,"+base64.StdEncoding.EncodeToString([]byte(stylesheet)), "book.css")
	if err != nil {
		return nil, fmt.Errorf("export: adding stylesheet: %w", err)
	}

	// 2. Title page
	var titlePage bytes.Buffer
	if err := titlePageTemplate.Execute(&titlePage, view); err != nil {
		return nil, fmt.Errorf("export: rendering title page: %w", err)
	}
	if _, err := book.AddSection(titlePage.String(), view.Title, "title.xhtml", cssPath); err != nil {
		return nil, fmt.Errorf("export: adding title page: %w", err)
	}

	// 3. Chapters
	for index, chapter := range view.Chapters {
		var section bytes.Buffer
		err := sectionTemplate.Execute(&section, struct {
			Title      string
			Paragraphs []string
		}{chapter.Title, paragraphs(chapter.Content)})
		if err != nil {
			return nil, fmt.Errorf("export: rendering chapter %d: %w", chapter.ID, err)
		}

		filename := fmt.Sprintf("chapter-%04d.xhtml", index+1)
		if _, err := book.AddSection(section.String(), chapter.Title, filename, cssPath); err != nil {
			return nil, fmt.Errorf("export: adding chapter %d: %w", chapter.ID, err)
		}
	}

	// 4. Package
	var output bytes.Buffer
	if _, err := book.WriteTo(&output); err != nil {
		return nil, fmt.Errorf("export: writing epub: %w", err)
	}
	return output.Bytes(), nil
}

// paragraphs splits chapter text on line breaks, dropping blank lines.
func paragraphs(content string) []string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return result
}
