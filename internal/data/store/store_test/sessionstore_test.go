package store_test

import (
	"sync"
	"testing"

	"github.com/akolanti/PaperChat/internal/data/store"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_UnknownIdIsEmpty(t *testing.T) {
	s := store.InitSessionStore()

	history := s.Get("never-seen")
	require.NotNil(t, history)
	assert.Empty(t, history)
}

func TestSessionStore_SaveGetRoundtrip(t *testing.T) {
	s := store.InitSessionStore()
	saved := []chatModel.ConversationTurn{
		{Role: chatModel.RoleUser, Text: "Summarize"},
		{Role: chatModel.RoleModel, Text: "X is about..."},
	}

	s.Save("42", saved)

	assert.Equal(t, saved, s.Get("42"))
	assert.Empty(t, s.Get("43"), "sessions are isolated per document")
}

func TestSessionStore_SaveReplacesInsteadOfMerging(t *testing.T) {
	s := store.InitSessionStore()
	s.Save("42", []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "first"}})
	s.Save("42", []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "second"}})

	assert.Equal(t, []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "second"}}, s.Get("42"))
}

func TestSessionStore_ClearThenGet(t *testing.T) {
	s := store.InitSessionStore()
	s.Save("42", []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "hi"}})

	s.Clear("42")

	assert.Empty(t, s.Get("42"))
}

func TestSessionStore_CallerCannotMutateStoredHistory(t *testing.T) {
	s := store.InitSessionStore()
	saved := []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "original"}}
	s.Save("42", saved)

	saved[0].Text = "changed after save"
	got := s.Get("42")
	got[0].Text = "changed after get"

	assert.Equal(t, "original", s.Get("42")[0].Text)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	s := store.InitSessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Save("race", []chatModel.ConversationTurn{{Role: chatModel.RoleUser, Text: "x"}})
			_ = s.Get("race")
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get("race"), 1)
}
