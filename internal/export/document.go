// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/taibuivan/riwayati/internal/core/novel"
)

// stylesheet is shared by the doc/html document and the EPUB book.
const stylesheet = `body { font-family: 'Arial', sans-serif; line-height: 1.6; padding: 50px; }
h1 { text-align: center; color: #065f46; font-size: 32pt; }
.author { text-align: center; font-size: 18pt; margin-bottom: 50px; color: #666; }
.description { font-style: italic; border-bottom: 1px solid #eee; padding-bottom: 20px; margin-bottom: 50px; }
h2 { color: #065f46; border-bottom: 1px solid #065f46; padding-bottom: 10px; margin-top: 50px; page-break-before: always; }
.content { white-space: pre-wrap; font-size: 14pt; }
`

var documentTemplate = template.Must(template.New("document").Parse(`<html dir="rtl" lang="ar">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.Stylesheet}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="author">بواسطة: {{.Author}}</div>
<div class="description">{{.Description}}</div>
{{range .Chapters}}<div class="chapter">
<h2>{{.Title}}</h2>
<div class="content">{{.Content}}</div>
</div>
{{end}}</body>
</html>
`))

// Document renders the right-to-left HTML document used by the doc and html formats.
// Every piece of user text is escaped.
func Document(detail *novel.Detail) ([]byte, error) {
	data := struct {
		book
		Stylesheet template.CSS
	}{
		book:       newBook(detail),
		Stylesheet: template.CSS(stylesheet),
	}

	var buffer bytes.Buffer
	if err := documentTemplate.Execute(&buffer, data); err != nil {
		return nil, fmt.Errorf("export: rendering document: %w", err)
	}
	return buffer.Bytes(), nil
}
