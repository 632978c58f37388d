package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

const API_KEY string = "API_KEY"

var ErrMissingAPIKey = errors.New("API key is missing, set API_KEY in the environment or a .env file")

// Config is the optional file based configuration for the places commands. Command line
// flags take precedence over values read here.
type Config struct {
	ClientURI   string             `json:"client_uri,omitempty"`
	ExporterURI string             `json:"exporter_uri,omitempty"`
	CacheURI    string             `json:"cache_uri,omitempty"`
	Tips        bool               `json:"tips,omitempty"`
	Search      places.SearchQuery `json:"search"`
}

// APIKey loads any .env files in 'paths' (or ./.env when none are given) and returns the
// value of API_KEY. Variables already present in the environment are not overwritten.
func APIKey(paths ...string) (string, error) {

	err := godotenv.Load(paths...)

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("Failed to load environment file, %w", err)
	}

	key := strings.TrimSpace(os.Getenv(API_KEY))

	if key == "" {
		return "", ErrMissingAPIKey
	}

	return key, nil
}

// ReadConfig reads a json5 configuration file. If a file named {name}.local.{ext} exists
// alongside 'path' its values override those in 'path'. At least one of the two files
// must exist.
func ReadConfig[T any](path string) (T, error) {

	var out T
	found := false

	body, err := os.ReadFile(path)

	if err != nil && !os.IsNotExist(err) {
		return out, err
	}

	if len(body) > 0 {

		err = json5.Unmarshal(body, &out)

		if err != nil {
			return out, fmt.Errorf("Failed to parse %s, %w", path, err)
		}

		found = true
	}

	local_path := LocalPath(path)

	local_body, err := os.ReadFile(local_path)

	if err != nil && !os.IsNotExist(err) {
		return out, err
	}

	if len(local_body) > 0 {

		var override T

		err = json5.Unmarshal(local_body, &override)

		if err != nil {
			return out, fmt.Errorf("Failed to parse %s, %w", local_path, err)
		}

		err = mergo.Merge(&out, override, mergo.WithOverride)

		if err != nil {
			return out, err
		}

		slog.Info("Merged config with local overrides", "local", local_path)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}

	return out, nil
}

// LocalPath returns the path of the local override file for 'path'.
func LocalPath(path string) string {

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, fmt.Sprintf("%s.local%s", prefix, ext))
}
