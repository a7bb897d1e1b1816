package config

import "os"

// values that may only be known at deploy time
var (
	IS_PROD       = os.Getenv("PAPERCHAT_ENV") == "prod"
	AuthToken     = os.Getenv("PAPERCHAT_AUTH_TOKEN")
	NoAuthBypass  = AuthToken == ""
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	LogFile       = os.Getenv("LOG_FILE")
)

// Reload re-reads the deploy-time values. main calls it after loading .env.
func Reload() {
	IS_PROD = os.Getenv("PAPERCHAT_ENV") == "prod"
	AuthToken = os.Getenv("PAPERCHAT_AUTH_TOKEN")
	NoAuthBypass = AuthToken == ""
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	LogFile = os.Getenv("LOG_FILE")
}

func RedisAddress() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return RedisAddr
}

func LibraryDir() string {
	if dir := os.Getenv("PAPERCHAT_LIBRARY_DIR"); dir != "" {
		return dir
	}
	return DefaultLibraryDir
}

// GeminiAPIKeyFromEnv is the fallback when no apiKey preference is stored.
func GeminiAPIKeyFromEnv() string {
	return os.Getenv("GEMINI_API_KEY")
}
