package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gigbook/internal/flagx"
	"github.com/dmitrijs2005/gigbook/internal/timex"
)

// FileConfig mirrors Config for decoding config files. Durations accept
// "1m" style strings or integer nanoseconds. Absent keys leave the current
// value untouched.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	GeminiAPIKey                 string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel                  string         `json:"gemini_model" yaml:"gemini_model"`
	OpenRouterAPIKey             string         `json:"openrouter_api_key" yaml:"openrouter_api_key"`
	OpenRouterURL                string         `json:"openrouter_url" yaml:"openrouter_url"`
	OpenRouterModels             []string       `json:"openrouter_models" yaml:"openrouter_models"`
	AssistantTimeout             timex.Duration `json:"assistant_timeout" yaml:"assistant_timeout"`
	AdminBypass                  *bool          `json:"admin_bypass" yaml:"admin_bypass"`
	LogBackend                   string         `json:"log_backend" yaml:"log_backend"`
	LogDebug                     *bool          `json:"log_debug" yaml:"log_debug"`
	Timezone                     string         `json:"timezone" yaml:"timezone"`
}

// parseFile overlays the file named by -c/-config. The format follows the
// extension: .yaml/.yml is YAML, anything else JSON.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("decode json config: %w", err)
		}
	}
	return fc, nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration.Duration > 0 {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration.Duration > 0 {
		c.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	setString(&c.S3RootUser, fc.S3RootUser)
	setString(&c.S3RootPassword, fc.S3RootPassword)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.GeminiAPIKey, fc.GeminiAPIKey)
	setString(&c.GeminiModel, fc.GeminiModel)
	setString(&c.OpenRouterAPIKey, fc.OpenRouterAPIKey)
	setString(&c.OpenRouterURL, fc.OpenRouterURL)
	if len(fc.OpenRouterModels) > 0 {
		c.OpenRouterModels = fc.OpenRouterModels
	}
	if fc.AssistantTimeout.Duration > 0 {
		c.AssistantTimeout = fc.AssistantTimeout.Duration
	}
	if fc.AdminBypass != nil {
		c.AdminBypass = *fc.AdminBypass
	}
	setString(&c.LogBackend, fc.LogBackend)
	if fc.LogDebug != nil {
		c.LogDebug = *fc.LogDebug
	}
	setString(&c.Timezone, fc.Timezone)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
