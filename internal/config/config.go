package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string
	ProjectID   string
	CORSOrigins []string

	// FFIEC public web service credentials. Optional; the reports
	// endpoint is disabled when they are absent.
	FFIECUsername string
	FFIECToken    string
	FFIECEndpoint string

	// DemoSeed loads the sample catalog on startup of the demo binary.
	DemoSeed bool
}

// New loads configuration from the environment. A .env file is applied
// first when present, without overriding already-exported variables.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		LogLevel:      fallback(os.Getenv("LOGLEVEL"), "info"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ProjectID:     strings.TrimSpace(os.Getenv("PROJECTID")),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		FFIECUsername: strings.TrimSpace(os.Getenv("FFIEC_USERNAME")),
		FFIECToken:    strings.TrimSpace(os.Getenv("FFIEC_TOKEN")),
		FFIECEndpoint: fallback(os.Getenv("FFIEC_ENDPOINT"), "https://cdr.ffiec.gov/public/pws/webservices/retrievalservice.asmx"),
		DemoSeed:      strings.EqualFold(strings.TrimSpace(os.Getenv("DEMO_SEED")), "true"),
	}
}

// RequirePostgres validates the variables the Postgres-backed binary needs.
func (c *Config) RequirePostgres() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

// RequireFirestore validates the variables the Firestore demo binary needs.
func (c *Config) RequireFirestore() error {
	if c.ProjectID == "" {
		return errors.New("PROJECTID is required")
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
