package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akolanti/PaperChat/internal/config"
)

type ReindexResult struct {
	DocumentId    string `json:"documentId"`
	AttachmentKey string `json:"attachmentKey"`
	Characters    int    `json:"characters"`
}

// Reindex extracts the text of the document's best attachment and rewrites its full-text cache.
func (l *Library) Reindex(ctx context.Context, id string) (ReindexResult, error) {
	doc, err := l.load(id)
	if err != nil {
		return ReindexResult{}, err
	}
	ref, err := doc.BestAttachment(ctx)
	if err != nil {
		return ReindexResult{}, fmt.Errorf("resolve attachment %s: %w", id, err)
	}
	if ref == nil {
		return ReindexResult{}, fmt.Errorf("%w: %s", ErrNoAttachment, id)
	}
	att := ref.(*attachment)
	cache, err := att.cachePath()
	if err != nil {
		return ReindexResult{}, err
	}

	log := l.logger.WithTrace(ctx).With("documentId", id, "attachment", att.Key())
	log.Info("Reindexing attachment")

	text, err := extractText(ctx, att.filePath(), att.ContentType(), log)
	if err != nil {
		log.Error("Extraction failed", "error", err)
		return ReindexResult{}, err
	}
	if err := writeAtomic(cache, []byte(text)); err != nil {
		return ReindexResult{}, fmt.Errorf("write cache: %w", err)
	}

	log.Info("Reindex complete", "characters", len(text))
	return ReindexResult{DocumentId: id, AttachmentKey: att.Key(), Characters: len(text)}, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "*"+config.CacheFileSuffix+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
