package store

import (
	"sync"

	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

// InMemorySessionStore keeps one conversation per document id for the life of the process.
type InMemorySessionStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]chatModel.ConversationTurn
	logger   *logger_i.Logger
}

func InitSessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]chatModel.ConversationTurn),
		logger:   logger_i.NewLogger("SessionStore"),
	}
}

// Get never returns nil.
func (store *InMemorySessionStore) Get(id string) []chatModel.ConversationTurn {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	history, ok := store.chatMap[id]
	if !ok {
		return []chatModel.ConversationTurn{}
	}
	return copyTurns(history)
}

// Save replaces the whole history for id.
func (store *InMemorySessionStore) Save(id string, history []chatModel.ConversationTurn) {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = copyTurns(history)
	store.logger.Debug("Saved session", "documentId", id, "turns", len(history))
}

func (store *InMemorySessionStore) Clear(id string) {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	delete(store.chatMap, id)
	store.logger.Debug("Cleared session", "documentId", id)
}

func copyTurns(turns []chatModel.ConversationTurn) []chatModel.ConversationTurn {
	out := make([]chatModel.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}
