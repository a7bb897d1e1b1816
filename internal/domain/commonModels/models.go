package commonModels

import (
	"context"
	"errors"
)

// host item fields read by the context builder
const (
	FieldTitle    = "title"
	FieldAbstract = "abstractNote"
	FieldDate     = "date"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

type Note struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DocumentRef is the read-only view of a host document.
type DocumentRef interface {
	ID() string
	// Field returns "" for unknown or unset fields.
	Field(name string) string
	// BestAttachment returns nil when the document has no attachment.
	BestAttachment(ctx context.Context) (Attachment, error)
	// Notes are returned in the host's insertion order.
	Notes(ctx context.Context) ([]Note, error)
}

type Attachment interface {
	Key() string
	ContentType() DocType
	IsPDF() bool
	// ReadFullTextCache reports exists=false when the attachment was never indexed.
	ReadFullTextCache(ctx context.Context) (text string, exists bool, err error)
}

// DocumentSource resolves documents by id.
type DocumentSource interface {
	GetDocument(ctx context.Context, id string) (DocumentRef, error)
}
