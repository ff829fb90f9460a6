package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	BIND_ADDRESS       = "0.0.0.0:8000"
	TLS_DOMAINS        = ""            // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""            // MySQL will be used if this is set
	SQLITE_FILE        = "database.db" // SQLite is used when MYSQL_DSN is not configured
	DEBUG_MODE         = false
	MAX_PHOTO_MB       = 5    // Uploaded photos above this size are rejected before decoding
	VIEW_CACHE_SECONDS = 3600 // Invitations never change, so viewer pages can be cached by the browser
	CACHE_MAX_ENTRIES  = 1000 // In-memory invitation cache size, 0 disables it
)

// Init loads an optional .env file and then reads the environment.
// Variables already present in the environment win over the .env file.
func Init(envFiles ...string) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is the normal case in production
		_ = godotenv.Load(f)
	}
	if port := os.Getenv("PORT"); port != "" {
		BIND_ADDRESS = "0.0.0.0:" + port
	}
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("MAX_PHOTO_MB", &MAX_PHOTO_MB)
	readEnvInt("VIEW_CACHE_SECONDS", &VIEW_CACHE_SECONDS)
	readEnvInt("CACHE_MAX_ENTRIES", &CACHE_MAX_ENTRIES)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
