// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package export renders a novel and its chapters into a downloadable book.

Everything here is a pure function of an in-memory [novel.Detail]: no store,
no network. Three formats are supported:

  - doc: the right-to-left HTML document Word opens directly (BOM-prefixed).
  - html: the same document as plain HTML.
  - epub: an EPUB 3 book with right-to-left page progression.
*/
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/pkg/pointer"
	"github.com/taibuivan/riwayati/pkg/slug"
)

// Format selects the output encoding.
type Format string

const (
	FormatDoc  Format = "doc"
	FormatHTML Format = "html"
	FormatEPUB Format = "epub"
)

// UnknownAuthor is printed when a novel has no author.
const UnknownAuthor = "كاتب مجهول"

// byteOrderMark makes Word detect UTF-8.
const byteOrderMark = "\ufeff"

// File is a rendered book ready to be written to disk or served.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseFormat accepts a format name; empty means [FormatDoc].
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(name))); format {
	case "":
		return FormatDoc, nil
	case FormatDoc, FormatHTML, FormatEPUB:
		return format, nil
	default:
		return "", fmt.Errorf("export: unknown format %q (want doc, html or epub)", name)
	}
}

// Render builds the book for detail in the requested format.
func Render(detail *novel.Detail, format Format) (*File, error) {
	if detail == nil {
		return nil, fmt.Errorf("export: no novel selected")
	}

	base := slug.FileName(detail.Title)

	switch format {
	case FormatDoc, "":
		document, err := Document(detail)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        base + ".doc",
			ContentType: "application/msword",
			Data:        append([]byte(byteOrderMark), document...),
		}, nil

	case FormatHTML:
		document, err := Document(detail)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        base + ".html",
			ContentType: "text/html; charset=utf-8",
			Data:        document,
		}, nil

	case FormatEPUB:
		book, err := EPUB(detail)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        base + ".epub",
			ContentType: "application/epub+zip",
			Data:        book,
		}, nil
	}

	return nil, fmt.Errorf("export: unknown format %q", format)
}

// SortChapters returns a copy of chapters ordered by order_index, then id.
func SortChapters(chapters []*novel.Chapter) []*novel.Chapter {
	sorted := slices.Clone(chapters)
	slices.SortStableFunc(sorted, func(a, b *novel.Chapter) int {
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex - b.OrderIndex
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return sorted
}

// book is the view model shared by every format.
type book struct {
	Title       string
	Author      string
	Description string
	Chapters    []*novel.Chapter
}

func newBook(detail *novel.Detail) book {
	view := book{
		Title:       detail.Title,
		Author:      pointer.Val(detail.Author),
		Description: pointer.Val(detail.Description),
		Chapters:    SortChapters(detail.Chapters),
	}
	if strings.TrimSpace(view.Author) == "" {
		view.Author = UnknownAuthor
	}
	return view
}
