package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
	"github.com/akolanti/PaperChat/internal/metrics"
	"github.com/akolanti/PaperChat/internal/rag/llm"
	"github.com/akolanti/PaperChat/internal/worker"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"github.com/google/uuid"
)

var (
	ErrWindowNotOpen   = errors.New("chat window is not open")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInvalidGeometry = errors.New("window width and height must be positive")
	ErrNoNotes         = errors.New("document has no notes")
)

type ContextBuilder interface {
	BuildContext(ctx context.Context, doc commonModels.DocumentRef) string
}

type GeometryStore interface {
	Geometry(ctx context.Context) chatModel.Geometry
	SaveGeometry(ctx context.Context, g chatModel.Geometry) error
}

type Dependencies struct {
	Documents commonModels.DocumentSource
	Context   ContextBuilder
	Gateway   llm.Gateway
	Sessions  chatModel.SessionStore
	Geometry  GeometryStore
	Turns     *worker.Pool
}

// registry entry; CLOSED entries keep no window
type handle struct {
	State    chatModel.WindowState
	WindowId string
}

type Manager struct {
	deps    Dependencies
	mu      sync.Mutex
	handles map[string]handle
	windows map[string]*Window
	now     func() time.Time
	logger  *logger_i.Logger

	turnTimeout time.Duration
}

func NewManager(deps Dependencies) *Manager {
	return &Manager{
		deps:    deps,
		handles: make(map[string]handle),
		windows: make(map[string]*Window),
		now:     time.Now,
		logger:  logger_i.NewLogger("ChatWindowManager"),

		turnTimeout: config.TurnTimeout,
	}
}

type OpenResult struct {
	State  chatModel.WindowState `json:"state"`
	Window *WindowView           `json:"window,omitempty"`
}

// OpenChat toggles: an open window for docID is closed, otherwise a new one is opened.
func (m *Manager) OpenChat(ctx context.Context, docID string) (OpenResult, error) {
	log := m.logger.WithTrace(ctx).With("documentId", docID)

	if w := m.detach(docID); w != nil {
		log.Info("Toggled chat window closed", "windowId", w.id)
		m.persistGeometry(ctx, w, log)
		return OpenResult{State: chatModel.WindowClosed}, nil
	}

	doc, err := m.deps.Documents.GetDocument(ctx, docID)
	if err != nil {
		return OpenResult{}, err
	}
	w := newWindow(uuid.NewString(), doc, m.deps.Geometry.Geometry(ctx), m.deps.Sessions.Get(docID), m.now)

	m.mu.Lock()
	if h := m.handles[docID]; h.State == chatModel.WindowOpen {
		// a concurrent open won; never keep two windows for one document
		existing := m.windows[h.WindowId]
		m.mu.Unlock()
		view := existing.View()
		return OpenResult{State: chatModel.WindowOpen, Window: &view}, nil
	}
	m.handles[docID] = handle{State: chatModel.WindowOpen, WindowId: w.id}
	m.windows[w.id] = w
	metrics.SetOpenChatWindows(len(m.windows))
	m.mu.Unlock()

	log.Info("Opened chat window", "windowId", w.id)
	view := w.View()
	return OpenResult{State: chatModel.WindowOpen, Window: &view}, nil
}

// CloseChat handles a user-driven close. final may be nil to keep the last known geometry.
func (m *Manager) CloseChat(ctx context.Context, docID string, final *chatModel.Geometry) error {
	if final != nil && !validGeometry(*final) {
		return ErrInvalidGeometry
	}
	w := m.detach(docID)
	if w == nil {
		return ErrWindowNotOpen
	}
	if final != nil {
		w.setGeometry(*final)
	}
	log := m.logger.WithTrace(ctx).With("documentId", docID)
	log.Info("Closed chat window", "windowId", w.id)
	m.persistGeometry(ctx, w, log)
	return nil
}

func (m *Manager) MoveChat(docID string, g chatModel.Geometry) (WindowView, error) {
	if !validGeometry(g) {
		return WindowView{}, ErrInvalidGeometry
	}
	w := m.window(docID)
	if w == nil {
		return WindowView{}, ErrWindowNotOpen
	}
	w.setGeometry(g)
	return w.View(), nil
}

func (m *Manager) State(docID string) chatModel.WindowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[docID]; ok {
		return h.State
	}
	return chatModel.WindowClosed
}

func (m *Manager) Transcript(docID string) (WindowView, error) {
	w := m.window(docID)
	if w == nil {
		return WindowView{}, ErrWindowNotOpen
	}
	return w.View(), nil
}

func (m *Manager) History(docID string) []chatModel.ConversationTurn {
	return m.deps.Sessions.Get(docID)
}

// ClearSession waits behind any in-flight turn so a late reply cannot resurrect the history.
func (m *Manager) ClearSession(ctx context.Context, docID string) error {
	return m.deps.Turns.Do(ctx, docID, func(ctx context.Context) error {
		m.deps.Sessions.Clear(docID)
		if w := m.window(docID); w != nil {
			w.clearMessages()
		}
		m.logger.WithTrace(ctx).Info("Session cleared", "documentId", docID)
		return nil
	})
}

// detach removes the registry entry synchronously and returns the window it pointed at.
func (m *Manager) detach(docID string) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[docID]
	if !ok || h.State != chatModel.WindowOpen {
		return nil
	}
	w := m.windows[h.WindowId]
	delete(m.windows, h.WindowId)
	m.handles[docID] = handle{State: chatModel.WindowClosed}
	metrics.SetOpenChatWindows(len(m.windows))
	return w
}

func (m *Manager) window(docID string) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[docID]
	if !ok || h.State != chatModel.WindowOpen {
		return nil
	}
	return m.windows[h.WindowId]
}

func (m *Manager) persistGeometry(ctx context.Context, w *Window, log *logger_i.Logger) {
	if err := m.deps.Geometry.SaveGeometry(ctx, w.Geometry()); err != nil {
		log.Warn("Failed to persist window geometry", "error", err)
	}
}

func validGeometry(g chatModel.Geometry) bool {
	return g.Width > 0 && g.Height > 0
}
