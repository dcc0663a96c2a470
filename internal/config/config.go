package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Coaching CoachingConfig
	Audio    AudioConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	// Connection is the phrase-catalog DSN. Empty means the compiled-in
	// phrase banks are used and the catalog tool is unavailable.
	Connection string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	LLMProvider   string // "none", "ollama", "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL string
}

type CoachingConfig struct {
	SessionIdleMinutes      int
	SynthesisTimeoutSeconds int
	PhaseEventTopic         string
}

type AudioConfig struct {
	Store          string // "file" or "redis"
	Dir            string
	TTSModel       string
	TTSVoice       string
	RetentionHours int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "none"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Coaching: CoachingConfig{
			SessionIdleMinutes:      getEnvAsInt("SESSION_IDLE_MINUTES", 30),
			SynthesisTimeoutSeconds: getEnvAsInt("SYNTHESIS_TIMEOUT_SECONDS", 10),
			PhaseEventTopic:         getEnv("PHASE_EVENT_TOPIC_NAME", "COACH_PHASE_TRANSITION"),
		},
		Audio: AudioConfig{
			Store:          getEnv("AUDIO_STORE", "file"),
			Dir:            getEnv("AUDIO_DIR", "./audio"),
			TTSModel:       getEnv("TTS_MODEL", "tts-1"),
			TTSVoice:       getEnv("TTS_VOICE", "nova"),
			RetentionHours: getEnvAsInt("AUDIO_RETENTION_HOURS", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
