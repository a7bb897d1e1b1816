package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	FALLBACK_REDIS_TO_PREFSTORE = true //if redis init fails, preferences fall back to an in-memory store
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	RateLimiterIdleTTL          = 10 * time.Minute

	//per-document turn workers
	IdleWorkerTimeout = 5 * time.Minute
	TurnTimeout       = 90 * time.Second

	//serverTimeouts - write timeout must outlive a model call
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//library
	DefaultLibraryDir  = "./library"
	ItemFileName       = "item.json"
	CacheFileSuffix    = ".cache.txt"
	PageExtractTimeout = 10 * time.Second

	//llm
	LLMRequestTimeout        = 60 * time.Second
	DefaultGeminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel       = "gemini-1.5-flash"
	DefaultSystemInstruction = "You are an expert academic researcher. Answer the user's question based on the provided context."
	SynthesizeFallback       = "Failed to synthesize."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//preferences
	PrefNamespace         = "extensions.paperchat."
	DefaultWindowWidth    = 600
	DefaultWindowHeight   = 600
	UnsetWindowCoordinate = -1

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisPrefStore = 2

	RedisPingTimeout = 3 * time.Second
)
