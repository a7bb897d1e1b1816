package chat

import (
	"sync"
	"time"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
)

// Window is the chat surface of one document. It only renders; the conversation record lives in the SessionStore.
type Window struct {
	mu       sync.Mutex
	id       string
	doc      commonModels.DocumentRef
	geometry chatModel.Geometry
	messages []chatModel.Message
	now      func() time.Time
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowView is a snapshot of a window. Position is nil for a centered window.
type WindowView struct {
	Id         string              `json:"id"`
	DocumentId string              `json:"documentId"`
	Title      string              `json:"title"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Position   *Position           `json:"position,omitempty"`
	Messages   []chatModel.Message `json:"messages"`
}

func newWindow(id string, doc commonModels.DocumentRef, g chatModel.Geometry, history []chatModel.ConversationTurn, now func() time.Time) *Window {
	if g.Width <= 0 {
		g.Width = config.DefaultWindowWidth
	}
	if g.Height <= 0 {
		g.Height = config.DefaultWindowHeight
	}
	if g.X == config.UnsetWindowCoordinate || g.Y == config.UnsetWindowCoordinate {
		g.X, g.Y = config.UnsetWindowCoordinate, config.UnsetWindowCoordinate
	}

	w := &Window{id: id, doc: doc, geometry: g, now: now}
	for _, turn := range history {
		kind := chatModel.MessageUser
		if turn.Role == chatModel.RoleModel {
			kind = chatModel.MessageModel
		}
		w.messages = append(w.messages, chatModel.Message{Kind: kind, Text: turn.Text, Timestamp: now()})
	}
	return w
}

func (w *Window) render(kind chatModel.MessageKind, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, chatModel.Message{Kind: kind, Text: text, Timestamp: w.now()})
}

func (w *Window) clearMessages() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = nil
}

func (w *Window) setGeometry(g chatModel.Geometry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.geometry = g
}

func (w *Window) Geometry() chatModel.Geometry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.geometry
}

func (w *Window) centered() bool {
	return w.geometry.X == config.UnsetWindowCoordinate || w.geometry.Y == config.UnsetWindowCoordinate
}

func (w *Window) View() WindowView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := WindowView{
		Id:         w.id,
		DocumentId: w.doc.ID(),
		Title:      w.doc.Field(commonModels.FieldTitle),
		Width:      w.geometry.Width,
		Height:     w.geometry.Height,
		Messages:   append([]chatModel.Message{}, w.messages...),
	}
	if !w.centered() {
		view.Position = &Position{X: w.geometry.X, Y: w.geometry.Y}
	}
	return view
}
