package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/lecture-allocator/internal/timetable"
)

// Config captures environment driven configuration values for the allocation
// service. It is constructed once and passed in explicitly; nothing reads
// the environment after Load returns.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	SelectionPolicy timetable.SelectionPolicy
	RoomCacheTTL    time.Duration
	AdvisoryBaseURL string
	AdvisoryAPIKey  string
	AdvisoryModel   string
	AdvisoryTimeout time.Duration
	AllowedOrigins  []string
}

// Load parses configuration values from the current process environment.
//
// Every field has a sensible default; the advisory collaborator stays
// disabled unless an API key is provided.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:allocator.db",
		SelectionPolicy: timetable.SelectFirst,
		RoomCacheTTL:    30 * time.Second,
		AdvisoryModel:   "gpt-3.5-turbo",
		AdvisoryTimeout: 5 * time.Second,
		AllowedOrigins:  []string{"*"},
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ALLOCATOR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ALLOCATOR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ALLOCATOR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if policyValue := strings.TrimSpace(os.Getenv("ALLOCATOR_SELECTION_POLICY")); policyValue != "" {
		policy := timetable.SelectionPolicy(policyValue)
		if !policy.Valid() {
			invalid = append(invalid, "ALLOCATOR_SELECTION_POLICY")
		} else {
			cfg.SelectionPolicy = policy
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("ALLOCATOR_ROOM_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl < 0 {
			invalid = append(invalid, "ALLOCATOR_ROOM_CACHE_TTL")
		} else {
			cfg.RoomCacheTTL = ttl
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv("ALLOCATOR_ADVISORY_BASE_URL")); baseURL != "" {
		cfg.AdvisoryBaseURL = baseURL
	}

	cfg.AdvisoryAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if model := strings.TrimSpace(os.Getenv("ALLOCATOR_ADVISORY_MODEL")); model != "" {
		cfg.AdvisoryModel = model
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("ALLOCATOR_ADVISORY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "ALLOCATOR_ADVISORY_TIMEOUT")
		} else {
			cfg.AdvisoryTimeout = timeout
		}
	}

	if origins := strings.TrimSpace(os.Getenv("ALLOCATOR_CORS_ORIGINS")); origins != "" {
		parts := strings.Split(origins, ",")
		cleaned := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) == 0 {
			invalid = append(invalid, "ALLOCATOR_CORS_ORIGINS")
		} else {
			cfg.AllowedOrigins = cleaned
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
