/* Copyright 2025 StudyFlow Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads and validates the server configuration
package config

import (
	"net/url"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"

	// DBDriverSQLite selects the sqlite database driver
	DBDriverSQLite = "sqlite"
	// DBDriverPostgres selects the postgres database driver
	DBDriverPostgres = "postgres"

	// DefaultGenerationModel is the default model for content generation
	DefaultGenerationModel = "claude-3-5-sonnet-20241022"
	// DefaultGenerationMaxTokens is the default token cap per generation call
	DefaultGenerationMaxTokens = 2000
	// DefaultGenerationMaxContentLen is the maximum note content length, in
	// characters, accepted for generation
	DefaultGenerationMaxContentLen = 50000
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrDBDriverInvalid is an error for an unsupported database driver
	ErrDBDriverInvalid = errors.New("Invalid DB driver")
	// ErrWebURLInvalid is an error for an incomplete configuration with invalid web url
	ErrWebURLInvalid = errors.New("Invalid WebURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
)

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

func intEnv(envKey string, defaultVal int) int {
	env := os.Getenv(envKey)
	if env == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		return defaultVal
	}

	return n
}

func floatEnv(envKey string, defaultVal float64) float64 {
	env := os.Getenv(envKey)
	if env == "" {
		return defaultVal
	}

	f, err := strconv.ParseFloat(env, 64)
	if err != nil {
		return defaultVal
	}

	return f
}

// Config is an application configuration
type Config struct {
	AppEnv              string
	WebURL              string
	Port                string
	DBDriver            string
	DBPath              string
	DisableRegistration bool
	LogLevel            string

	// Generation settings for the external text-generation capability
	GenerationAPIKey        string
	GenerationModel         string
	GenerationMaxTokens     int
	GenerationTemperature   float64
	GenerationMaxContentLen int
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv              string
	Port                string
	WebURL              string
	DBDriver            string
	DBPath              string
	DisableRegistration bool
	LogLevel            string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:              getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:                getOrEnv(p.Port, "PORT", "3001"),
		WebURL:              getOrEnv(p.WebURL, "WebURL", "http://localhost:3001"),
		DBDriver:            getOrEnv(p.DBDriver, "DBDriver", DBDriverSQLite),
		DBPath:              getOrEnv(p.DBPath, "DBPath", "studyflow.db"),
		DisableRegistration: p.DisableRegistration || readBoolEnv("DisableRegistration"),
		LogLevel:            getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),

		GenerationAPIKey:        os.Getenv("CLAUDE_API_KEY"),
		GenerationModel:         getOrEnv("", "GENERATION_MODEL", DefaultGenerationModel),
		GenerationMaxTokens:     intEnv("GENERATION_MAX_TOKENS", DefaultGenerationMaxTokens),
		GenerationTemperature:   floatEnv("GENERATION_TEMPERATURE", 0.7),
		GenerationMaxContentLen: intEnv("GENERATION_MAX_CONTENT_LEN", DefaultGenerationMaxContentLen),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}
	if c.DBDriver != DBDriverSQLite && c.DBDriver != DBDriverPostgres {
		return errors.Wrapf(ErrDBDriverInvalid, "'%s'", c.DBDriver)
	}
	if c.DBPath == "" {
		return ErrDBMissingPath
	}

	return nil
}
