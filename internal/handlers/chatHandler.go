package handlers

import (
	"sync"

	"github.com/akolanti/PaperChat/internal/chat"
	"github.com/akolanti/PaperChat/internal/library"
	"github.com/akolanti/PaperChat/internal/prefs"
	"github.com/akolanti/PaperChat/internal/rag/llm"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

var (
	handlerInstance *ChatHandler //private singleton
	once            sync.Once
	logCH           *logger_i.Logger
)

type Services struct {
	Chat    *chat.Manager
	Library *library.Library
	Gateway llm.Gateway
	Prefs   *prefs.Prefs
}

type ChatHandler struct {
	services Services
}

func InitChatHandler(services Services) {
	once.Do(func() {
		handlerInstance = &ChatHandler{services: services}

		logCH = logger_i.NewLogger("ChatHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logCH.Info("Starting chat handler")
	})
}
