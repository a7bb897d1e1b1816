package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var errPageTimeout = errors.New("page extraction timed out")

func extractText(ctx context.Context, path string, docType commonModels.DocType, log *logger_i.Logger) (string, error) {
	switch docType {
	case commonModels.PDF:
		return extractPDF(ctx, path, log)
	case commonModels.DOCX, commonModels.TXT:
		text, err := cat.File(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", docType, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", docType)
	}
}

// extractPDF skips pages that fail or time out; only an unreadable file is an error.
func extractPDF(ctx context.Context, path string, log *logger_i.Logger) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := f.NumPage()
	log.Debug("Extracting pdf", "path", path, "pages", numPages)

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(ctx, page)
		if err != nil {
			log.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, strings.TrimSpace(content))
	}
	return strings.Join(pages, "\n\n"), nil
}

func protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: fmt.Errorf("malformed page: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	ctx, cancel := context.WithTimeout(ctx, config.PageExtractTimeout)
	defer cancel()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", errPageTimeout
	}
}
