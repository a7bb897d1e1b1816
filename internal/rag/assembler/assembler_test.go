package assembler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/PaperChat/internal/domain/commonModels"
)

type mockAttachment struct {
	pdf      bool
	text     string
	exists   bool
	readErr  error
	readHits int
}

func (m *mockAttachment) Key() string { return "ATT1" }
func (m *mockAttachment) ContentType() commonModels.DocType {
	if m.pdf {
		return commonModels.PDF
	}
	return commonModels.DOCX
}
func (m *mockAttachment) IsPDF() bool { return m.pdf }
func (m *mockAttachment) ReadFullTextCache(ctx context.Context) (string, bool, error) {
	m.readHits++
	return m.text, m.exists, m.readErr
}

type mockDocument struct {
	fields        map[string]string
	attachment    *mockAttachment
	attachmentErr error
	notes         []commonModels.Note
	notesErr      error
}

func (m *mockDocument) ID() string { return "doc-1" }
func (m *mockDocument) Field(name string) string {
	return m.fields[name]
}
func (m *mockDocument) BestAttachment(ctx context.Context) (commonModels.Attachment, error) {
	if m.attachmentErr != nil {
		return nil, m.attachmentErr
	}
	if m.attachment == nil {
		return nil, nil
	}
	return m.attachment, nil
}
func (m *mockDocument) Notes(ctx context.Context) ([]commonModels.Note, error) {
	return m.notes, m.notesErr
}

func paper() *mockDocument {
	return &mockDocument{
		fields: map[string]string{
			commonModels.FieldTitle:    "Attention Is All You Need",
			commonModels.FieldAbstract: "Transformers.",
			commonModels.FieldDate:     "2017",
		},
	}
}

func TestBuild_PDFContentStates(t *testing.T) {
	tests := []struct {
		name       string
		attachment *mockAttachment
		attachErr  error
		want       string
	}{
		{"Indexed_Text", &mockAttachment{pdf: true, exists: true, text: "full text"}, nil, "full text"},
		{"Empty_Cache", &mockAttachment{pdf: true, exists: true, text: ""}, nil, SentinelEmptyCache},
		{"Not_Indexed", &mockAttachment{pdf: true, exists: false}, nil, SentinelNotIndexed},
		{"No_Attachment", nil, nil, SentinelNoPDF},
		{"Non_PDF_Attachment", &mockAttachment{pdf: false, exists: true, text: "docx text"}, nil, SentinelNoPDF},
		{"Read_Error", &mockAttachment{pdf: true, readErr: errors.New("permission denied")}, nil, "(Error reading PDF text: permission denied)"},
		{"Attachment_Lookup_Error", nil, errors.New("db locked"), "(Error reading PDF text: db locked)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := paper()
			doc.attachment = tt.attachment
			doc.attachmentErr = tt.attachErr

			bundle := New().Build(context.Background(), doc)

			section, ok := bundle.Section(PDFContent)
			if !ok {
				t.Fatal("PDF_CONTENT section missing")
			}
			if section.Body != tt.want {
				t.Errorf("Body got %q, want %q", section.Body, tt.want)
			}
		})
	}
}

func TestBuild_NonPDFAttachmentIsNotRead(t *testing.T) {
	doc := paper()
	doc.attachment = &mockAttachment{pdf: false, exists: true, text: "docx"}

	New().Build(context.Background(), doc)

	if doc.attachment.readHits != 0 {
		t.Errorf("Expected the cache of a non-PDF attachment to stay unread, got %d reads", doc.attachment.readHits)
	}
}

func TestBuild_MetadataAlwaysPresent(t *testing.T) {
	doc := &mockDocument{fields: map[string]string{commonModels.FieldTitle: "Only a title"}}

	bundle := New().Build(context.Background(), doc)

	section, ok := bundle.Section(Metadata)
	if !ok {
		t.Fatal("METADATA section missing")
	}
	want := "Title: Only a title\nAbstract: \nDate: "
	if section.Body != want {
		t.Errorf("Body got %q, want %q", section.Body, want)
	}
}

func TestBuild_NotesKeepOrderAndBytes(t *testing.T) {
	doc := paper()
	doc.notes = []commonModels.Note{
		{Id: "n2", Title: "Second added first", Body: "<p>keep <b>markup</b></p>\n\twith whitespace  "},
		{Id: "n1", Title: "Formulas", Body: "E = mc^2 & α ≤ β"},
	}

	bundle := New().Build(context.Background(), doc)

	section, ok := bundle.Section(UserNotes)
	if !ok {
		t.Fatal("USER_NOTES section missing")
	}
	want := "--- Note (Second added first) ---\n<p>keep <b>markup</b></p>\n\twith whitespace  " +
		"\n\n" +
		"--- Note (Formulas) ---\nE = mc^2 & α ≤ β"
	if section.Body != want {
		t.Errorf("Body got %q, want %q", section.Body, want)
	}
}

func TestBuild_NoNotesOmitsSection(t *testing.T) {
	for name, doc := range map[string]*mockDocument{
		"No_Notes":    paper(),
		"Notes_Error": func() *mockDocument { d := paper(); d.notesErr = errors.New("boom"); return d }(),
	} {
		t.Run(name, func(t *testing.T) {
			bundle := New().Build(context.Background(), doc)

			if _, ok := bundle.Section(UserNotes); ok {
				t.Error("USER_NOTES should be omitted")
			}
			if strings.Contains(bundle.String(), "[[USER NOTES]]") {
				t.Error("Rendered bundle should not carry an empty notes header")
			}
		})
	}
}

func TestBundle_StringOrderAndSeparators(t *testing.T) {
	doc := paper()
	doc.attachment = &mockAttachment{pdf: true, exists: true, text: "body text"}
	doc.notes = []commonModels.Note{{Title: "T", Body: "B"}}

	got := New().Build(context.Background(), doc).String()

	want := "[[METADATA]]\nTitle: Attention Is All You Need\nAbstract: Transformers.\nDate: 2017" +
		"\n\n[[PDF CONTENT]]\nbody text" +
		"\n\n[[USER NOTES]]\n--- Note (T) ---\nB"
	if got != want {
		t.Errorf("Got:\n%s\nWant:\n%s", got, want)
	}
}

func TestBundle_SectionsIsACopy(t *testing.T) {
	bundle := New().Build(context.Background(), paper())

	sections := bundle.Sections()
	sections[0].Body = "tampered"

	if s, _ := bundle.Section(Metadata); s.Body == "tampered" {
		t.Error("Bundle must not be mutable through Sections()")
	}
}
