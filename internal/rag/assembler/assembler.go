package assembler

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/PaperChat/internal/domain/commonModels"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

type SectionKind string

// Order of the constants is the reading order given to the model.
const (
	Metadata   SectionKind = "METADATA"
	PDFContent SectionKind = "PDF_CONTENT"
	UserNotes  SectionKind = "USER_NOTES"
)

var headers = map[SectionKind]string{
	Metadata:   "[[METADATA]]",
	PDFContent: "[[PDF CONTENT]]",
	UserNotes:  "[[USER NOTES]]",
}

const (
	SentinelEmptyCache   = "(PDF text cache is empty.)"
	SentinelNotIndexed   = "(PDF text not indexed. Please reindex the item.)"
	SentinelNoPDF        = "(No PDF attachment found.)"
	sentinelReadErrorFmt = "(Error reading PDF text: %v)"
)

type Section struct {
	Kind SectionKind
	Body string
}

// Bundle is built fresh for every question and never mutated afterwards.
type Bundle struct {
	sections []Section
}

func (b Bundle) Sections() []Section {
	out := make([]Section, len(b.sections))
	copy(out, b.sections)
	return out
}

func (b Bundle) Section(kind SectionKind) (Section, bool) {
	for _, s := range b.sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

func (b Bundle) String() string {
	parts := make([]string, 0, len(b.sections))
	for _, s := range b.sections {
		parts = append(parts, headers[s.Kind]+"\n"+s.Body)
	}
	return strings.Join(parts, "\n\n")
}

type Assembler struct {
	logger *logger_i.Logger
}

func New() *Assembler {
	return &Assembler{logger: logger_i.NewLogger("ContextAssembler")}
}

// Build never fails: extraction problems become sentinel text inside the bundle.
func (a *Assembler) Build(ctx context.Context, doc commonModels.DocumentRef) Bundle {
	log := a.logger.WithTrace(ctx).With("documentId", doc.ID())

	sections := []Section{a.metadata(doc)}
	sections = append(sections, Section{Kind: PDFContent, Body: a.pdfContent(ctx, doc, log)})
	if notes, ok := a.notes(ctx, doc, log); ok {
		sections = append(sections, notes)
	}
	return Bundle{sections: sections}
}

func (a *Assembler) metadata(doc commonModels.DocumentRef) Section {
	body := strings.Join([]string{
		"Title: " + doc.Field(commonModels.FieldTitle),
		"Abstract: " + doc.Field(commonModels.FieldAbstract),
		"Date: " + doc.Field(commonModels.FieldDate),
	}, "\n")
	return Section{Kind: Metadata, Body: body}
}

func (a *Assembler) pdfContent(ctx context.Context, doc commonModels.DocumentRef, log *logger_i.Logger) string {
	attachment, err := doc.BestAttachment(ctx)
	if err != nil {
		log.Error("Error resolving attachment", "error", err)
		return fmt.Sprintf(sentinelReadErrorFmt, err)
	}
	if attachment == nil || !attachment.IsPDF() {
		return SentinelNoPDF
	}

	text, exists, err := attachment.ReadFullTextCache(ctx)
	switch {
	case err != nil:
		log.Error("Error reading PDF text", "attachment", attachment.Key(), "error", err)
		return fmt.Sprintf(sentinelReadErrorFmt, err)
	case !exists:
		return SentinelNotIndexed
	case text == "":
		return SentinelEmptyCache
	default:
		return text
	}
}

func (a *Assembler) notes(ctx context.Context, doc commonModels.DocumentRef, log *logger_i.Logger) (Section, bool) {
	notes, err := doc.Notes(ctx)
	if err != nil {
		log.Error("Error listing notes", "error", err)
		return Section{}, false
	}
	if len(notes) == 0 {
		return Section{}, false
	}

	rendered := make([]string, 0, len(notes))
	for _, n := range notes {
		rendered = append(rendered, "--- Note ("+n.Title+") ---\n"+n.Body)
	}
	return Section{Kind: UserNotes, Body: strings.Join(rendered, "\n\n")}, true
}

// BuildContext renders a fresh bundle as the text sent to the model.
func (a *Assembler) BuildContext(ctx context.Context, doc commonModels.DocumentRef) string {
	return a.Build(ctx, doc).String()
}
