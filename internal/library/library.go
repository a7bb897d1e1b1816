package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

var (
	ErrInvalidDocumentID = errors.New("invalid document id")
	ErrNoAttachment      = errors.New("document has no attachment")
	ErrInvalidAttachment = errors.New("invalid attachment key")
)

// item.json layout of one library document
type itemFile struct {
	Title        string              `json:"title"`
	AbstractNote string              `json:"abstractNote"`
	Date         string              `json:"date"`
	Fields       map[string]string   `json:"fields,omitempty"`
	Attachments  []attachmentFile    `json:"attachments,omitempty"`
	Notes        []commonModels.Note `json:"notes,omitempty"`
}

type attachmentFile struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Path        string `json:"path"`
}

type Summary struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

// Library is a directory of documents: <root>/<id>/item.json plus attachment files and their text caches.
type Library struct {
	root   string
	logger *logger_i.Logger
}

func Open(root string) (*Library, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	return &Library{root: root, logger: logger_i.NewLogger("Library")}, nil
}

func (l *Library) GetDocument(ctx context.Context, id string) (commonModels.DocumentRef, error) {
	doc, err := l.load(id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (l *Library) ListDocuments(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}
	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		doc, err := l.load(e.Name())
		if err != nil {
			l.logger.Debug("Skipping library entry", "entry", e.Name(), "error", err)
			continue
		}
		summaries = append(summaries, Summary{Id: doc.id, Title: doc.item.Title})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Id < summaries[j].Id })
	return summaries, nil
}

func (l *Library) load(id string) (*document, error) {
	if !validID(id) {
		return nil, ErrInvalidDocumentID
	}
	raw, err := os.ReadFile(filepath.Join(l.root, id, config.ItemFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", commonModels.ErrDocumentNotFound, id)
	} else if err != nil {
		return nil, fmt.Errorf("read item %s: %w", id, err)
	}

	var item itemFile
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", id, err)
	}
	return &document{id: id, dir: filepath.Join(l.root, id), item: item}, nil
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
