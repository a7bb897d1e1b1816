// @title           PaperChat API
// @version         1.0
// @description     Chat with a library document through Gemini
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/PaperChat/internal/chat"
	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/customHttpClient"
	"github.com/akolanti/PaperChat/internal/data/store"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/handlers"
	"github.com/akolanti/PaperChat/internal/library"
	"github.com/akolanti/PaperChat/internal/prefs"
	"github.com/akolanti/PaperChat/internal/rag/assembler"
	"github.com/akolanti/PaperChat/internal/rag/llm/gemini"
	"github.com/akolanti/PaperChat/internal/server"
	"github.com/akolanti/PaperChat/internal/worker"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"github.com/joho/godotenv"
)

var (
	listenAddr string
	libraryDir string
)

func main() {
	//.env is optional, real environment variables win
	_ = godotenv.Load()
	config.Reload()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&libraryDir, "library-dir", config.LibraryDir(), "document library directory")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	var prefStore chatModel.PrefStore
	if redisPrefs := store.GetRedisPrefStore(serviceContext); redisPrefs != nil {
		prefStore = redisPrefs
	} else if config.FALLBACK_REDIS_TO_PREFSTORE {
		logger.Error("Redis preference store is offline, preferences will not survive a restart")
		prefStore = store.InitInMemoryPrefStore()
	} else {
		logger.Error("Redis preference store is offline. Shutting down.")
		return
	}
	preferences := prefs.New(prefStore)

	lib, err := library.Open(libraryDir)
	if err != nil {
		logger.Error("Could not open document library", "dir", libraryDir, "error", err)
		return
	}

	gateway := gemini.GetGeminiClient(preferences, customHttpClient.NewClient(config.LLMRequestTimeout))

	//init worker pool
	turns := worker.NewPool(config.IdleWorkerTimeout)

	manager := chat.NewManager(chat.Dependencies{
		Documents: lib,
		Context:   assembler.New(),
		Gateway:   gateway,
		Sessions:  store.InitSessionStore(),
		Geometry:  preferences,
		Turns:     turns,
	})

	handlers.InitChatHandler(handlers.Services{
		Chat:    manager,
		Library: lib,
		Gateway: gateway,
		Prefs:   preferences,
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		Turns:            turns,
		CloseServices:    closeExternalServices,
	}
	go server.CreateServer(listenAddr)
	go server.ShutDownHandler(shutdownParams)

	logger.Info("PaperChat started", "library", libraryDir)
	<-stopExecution
	logger.Info("Server stopped")
}
