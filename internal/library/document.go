package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
)

const maxNoteTitleLength = 80

type document struct {
	id   string
	dir  string
	item itemFile
}

func (d *document) ID() string {
	return d.id
}

func (d *document) Field(name string) string {
	switch name {
	case commonModels.FieldTitle:
		return d.item.Title
	case commonModels.FieldAbstract:
		return d.item.AbstractNote
	case commonModels.FieldDate:
		return d.item.Date
	default:
		return d.item.Fields[name]
	}
}

// BestAttachment prefers the first PDF and otherwise falls back to the first attachment.
func (d *document) BestAttachment(ctx context.Context) (commonModels.Attachment, error) {
	if len(d.item.Attachments) == 0 {
		return nil, nil
	}
	best := d.item.Attachments[0]
	for _, a := range d.item.Attachments {
		if getDocType(a) == commonModels.PDF {
			best = a
			break
		}
	}
	return &attachment{dir: d.dir, file: best}, nil
}

func (d *document) Notes(ctx context.Context) ([]commonModels.Note, error) {
	notes := make([]commonModels.Note, len(d.item.Notes))
	for i, n := range d.item.Notes {
		if n.Title == "" {
			n.Title = noteTitle(n.Body)
		}
		notes[i] = n
	}
	return notes, nil
}

type attachment struct {
	dir  string
	file attachmentFile
}

func (a *attachment) Key() string {
	return a.file.Key
}

func (a *attachment) ContentType() commonModels.DocType {
	return getDocType(a.file)
}

func (a *attachment) IsPDF() bool {
	return a.ContentType() == commonModels.PDF
}

func (a *attachment) ReadFullTextCache(ctx context.Context) (string, bool, error) {
	path, err := a.cachePath()
	if err != nil {
		return "", false, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", true, err
	}
	return string(raw), true, nil
}

// cachePath keeps the cache next to its item; keys are plain file names.
func (a *attachment) cachePath() (string, error) {
	if !validID(a.file.Key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAttachment, a.file.Key)
	}
	return filepath.Join(a.dir, a.file.Key+config.CacheFileSuffix), nil
}

func (a *attachment) filePath() string {
	return filepath.Join(a.dir, filepath.Clean("/"+a.file.Path))
}

func getDocType(a attachmentFile) commonModels.DocType {
	if strings.EqualFold(a.ContentType, "application/pdf") {
		return commonModels.PDF
	}
	switch strings.ToLower(filepath.Ext(a.Path)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt", ".md":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

// noteTitle derives a title from the first text block of a note's HTML body.
func noteTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(doc.Find("h1,h2,h3,h4,h5,h6,p,li,pre").First().Text())
	if text == "" {
		text = strings.TrimSpace(doc.Text())
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	runes := []rune(text)
	if len(runes) > maxNoteTitleLength {
		text = string(runes[:maxNoteTitleLength])
	}
	return text
}
