package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// APIKeyName is the recognized credential key in config.json. The loader
// also injects it into the process environment under the same name.
const APIKeyName = "GROQ_API_KEY"

const defaultConfigPath = "config.json"

type Config struct {
	Addr string

	APIKey      string
	GroqBaseURL string

	DBPath         string
	UploadsDir     string
	ModelsInfoPath string

	CatalogTTL       time.Duration
	RetryMaxAttempts int
	RetryBackoff     time.Duration
}

// Load reads the config.json document plus env overrides. A missing or
// malformed file, or a blank credential, is fatal to startup; everything
// else has a default.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	apiKey := doc[APIKeyName]
	if apiKey == "" {
		return Config{}, fmt.Errorf("config %s: %s is missing", path, APIKeyName)
	}
	_ = os.Setenv(APIKeyName, apiKey)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "chat_history.db"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	modelsInfoPath := os.Getenv("MODELS_INFO_PATH")
	if modelsInfoPath == "" {
		modelsInfoPath = "assets/models_info.md"
	}

	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	ttl := 300 * time.Second
	if v := os.Getenv("MODEL_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}

	maxAttempts := 3
	if v := os.Getenv("PROVIDER_RETRY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAttempts = n
		}
	}

	backoff := 500 * time.Millisecond
	if v := os.Getenv("PROVIDER_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			backoff = time.Duration(n) * time.Millisecond
		}
	}

	return Config{
		Addr: addr,

		APIKey:      apiKey,
		GroqBaseURL: baseURL,

		DBPath:         dbPath,
		UploadsDir:     uploadsDir,
		ModelsInfoPath: modelsInfoPath,

		CatalogTTL:       ttl,
		RetryMaxAttempts: maxAttempts,
		RetryBackoff:     backoff,
	}, nil
}
