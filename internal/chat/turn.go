package chat

import (
	"context"
	"strings"
	"time"

	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/metrics"
)

type Reply struct {
	Text string `json:"text"`
}

// SendMessage runs one turn. Turns for the same document are dispatched one at a time.
// A failed turn leaves the session exactly as it was and shows the error as a notice.
func (m *Manager) SendMessage(ctx context.Context, docID string, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	if m.window(docID) == nil {
		return Reply{}, ErrWindowNotOpen
	}

	// the deadline covers the wait behind earlier turns as well as the model call
	ctx, cancel := context.WithTimeout(ctx, m.turnTimeout)
	defer cancel()

	var reply Reply
	err := m.deps.Turns.Do(ctx, docID, func(ctx context.Context) error {
		answer, err := m.turn(ctx, docID, text)
		reply.Text = answer
		return err
	})
	return reply, err
}

func (m *Manager) turn(ctx context.Context, docID string, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	log := m.logger.WithTrace(ctx).With("documentId", docID)

	w := m.window(docID)
	if w == nil {
		return "", ErrWindowNotOpen
	}
	w.render(chatModel.MessageUser, text)

	// the document is re-read so note and cache edits show up in the next answer
	doc := w.doc
	if fresh, err := m.deps.Documents.GetDocument(ctx, docID); err == nil {
		doc = fresh
	} else {
		log.Warn("Using document snapshot from window open", "error", err)
	}
	contextText := m.deps.Context.BuildContext(ctx, doc)

	prior := m.deps.Sessions.Get(docID)
	pending := append(prior[:len(prior):len(prior)], chatModel.ConversationTurn{Role: chatModel.RoleUser, Text: text})
	m.deps.Sessions.Save(docID, pending)

	answer, err := m.deps.Gateway.Query(ctx, contextText, text)
	if err != nil {
		m.deps.Sessions.Save(docID, prior)
		w.render(chatModel.MessageNotice, err.Error())
		log.Error("Chat turn failed", "error", err)
		metrics.CaptureTurnMetrics("error", time.Since(start))
		return "", err
	}

	m.deps.Sessions.Save(docID, append(pending, chatModel.ConversationTurn{Role: chatModel.RoleModel, Text: answer}))
	w.render(chatModel.MessageModel, answer)
	log.Debug("Chat turn complete", "historyLength", len(pending)+1)
	metrics.CaptureTurnMetrics("success", time.Since(start))
	return answer, nil
}

// SynthesizeNotes merges the document's note bodies into one HTML summary.
func (m *Manager) SynthesizeNotes(ctx context.Context, docID string) (string, error) {
	doc, err := m.deps.Documents.GetDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	notes, err := doc.Notes(ctx)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "", ErrNoNotes
	}
	bodies := make([]string, 0, len(notes))
	for _, n := range notes {
		bodies = append(bodies, n.Body)
	}
	return m.deps.Gateway.Synthesize(ctx, bodies)
}
