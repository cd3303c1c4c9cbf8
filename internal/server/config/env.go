package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GIGBOOK_"

// envFile is loaded if present. Variables already set in the process
// environment are not overridden.
var envFile = ".env"

// parseEnv overlays GIGBOOK_* variables.
//
//	GIGBOOK_GRPC_ADDR, GIGBOOK_DATABASE_DSN, GIGBOOK_SECRET_KEY,
//	GIGBOOK_ACCESS_TOKEN_TTL, GIGBOOK_REFRESH_TOKEN_TTL,
//	GIGBOOK_S3_USER, GIGBOOK_S3_PASSWORD, GIGBOOK_S3_BUCKET,
//	GIGBOOK_S3_REGION, GIGBOOK_S3_ENDPOINT,
//	GIGBOOK_GEMINI_API_KEY, GIGBOOK_GEMINI_MODEL,
//	GIGBOOK_OPENROUTER_API_KEY, GIGBOOK_OPENROUTER_URL,
//	GIGBOOK_OPENROUTER_MODELS (comma separated), GIGBOOK_ASSISTANT_TIMEOUT,
//	GIGBOOK_ADMIN_BYPASS, GIGBOOK_LOG_BACKEND, GIGBOOK_LOG_DEBUG,
//	GIGBOOK_TIMEZONE
func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}

	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	dur("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	str("S3_USER", &config.S3RootUser)
	str("S3_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_ENDPOINT", &config.S3BaseEndpoint)
	str("GEMINI_API_KEY", &config.GeminiAPIKey)
	str("GEMINI_MODEL", &config.GeminiModel)
	str("OPENROUTER_API_KEY", &config.OpenRouterAPIKey)
	str("OPENROUTER_URL", &config.OpenRouterURL)
	if v, ok := lookup("OPENROUTER_MODELS"); ok {
		config.OpenRouterModels = splitList(v)
	}
	dur("ASSISTANT_TIMEOUT", &config.AssistantTimeout)
	boolean("ADMIN_BYPASS", &config.AdminBypass)
	str("LOG_BACKEND", &config.LogBackend)
	boolean("LOG_DEBUG", &config.LogDebug)
	str("TIMEZONE", &config.Timezone)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
