// Package config resolves process settings from flags, environment variables,
// an optional config file and a workspace .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by graphql-bench,
// e.g. GRAPHQL_BENCH_TOKEN or GRAPHQL_BENCH_SANITY_TIMEOUT.
const EnvPrefix = "GRAPHQL_BENCH"

// Defaults.
const (
	DefaultWorkspace     = "/graphql-bench/ws"
	DefaultToken         = "BEARER_TOKEN_PLACEHOLDER"
	DefaultAttacker      = "vegeta"
	DefaultSanityTimeout = 30 * time.Second

	// ResultsFile is the name of the results file inside the workspace.
	ResultsFile = "bench_results.json"

	// EnvFile is loaded from the workspace when present.
	EnvFile = ".env"
)

// Setting keys. They match the command line flag names.
const (
	KeyWorkspace     = "workspace"
	KeyToken         = "token"
	KeyAttacker      = "attacker"
	KeyOutput        = "output"
	KeySanityTimeout = "sanity-timeout"
	KeyNoColor       = "no-color"
	KeyVerbose       = "verbose"
	KeySummary       = "summary"
)

// Settings are the resolved process settings.
type Settings struct {
	// Workspace holds query documents, materialized bodies and transient attack output
	Workspace string

	// Token is sent as a bearer token with every non-introspection request
	Token string

	// Attacker is the load generator binary
	Attacker string

	// Output is the results file path
	Output string

	SanityTimeout time.Duration
	NoColor       bool
	Verbose       bool
	Summary       bool
}

// NewViper returns a viper instance with defaults and environment binding set up.
// Flags are bound by the caller with BindPFlags.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyWorkspace, DefaultWorkspace)
	v.SetDefault(KeyToken, DefaultToken)
	v.SetDefault(KeyAttacker, DefaultAttacker)
	v.SetDefault(KeySanityTimeout, DefaultSanityTimeout)
	return v
}

// Load resolves Settings from v. Precedence, highest first: flags, environment
// (including <workspace>/.env), configFile, defaults.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	workspace := v.GetString(KeyWorkspace)
	if err := loadEnvFile(workspace); err != nil {
		return nil, err
	}

	// The .env file may set the workspace itself only when nothing else did.
	workspace = v.GetString(KeyWorkspace)

	s := &Settings{
		Workspace:     workspace,
		Token:         v.GetString(KeyToken),
		Attacker:      v.GetString(KeyAttacker),
		Output:        v.GetString(KeyOutput),
		SanityTimeout: v.GetDuration(KeySanityTimeout),
		NoColor:       v.GetBool(KeyNoColor),
		Verbose:       v.GetBool(KeyVerbose),
		Summary:       v.GetBool(KeySummary),
	}
	if s.Output == "" && s.Workspace != "" {
		s.Output = filepath.Join(s.Workspace, ResultsFile)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadEnvFile loads <workspace>/.env without overriding variables already set.
func loadEnvFile(workspace string) error {
	if workspace == "" {
		return nil
	}
	path := filepath.Join(workspace, EnvFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
