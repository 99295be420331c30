package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME holding configs, catalogs,
// the database and the log.
const AppDir = ".guesser"

// Source names where a loaded document came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
)

// ReadLayered finds a YAML document of the given kind ("configs",
// "catalogs") and file name.
// Search order: customPath -> ~/.guesser/<kind>/<file> -> ./<kind>/<file>.
// A customPath that cannot be read is an error; the other locations are
// skipped when missing. found is false when nothing was found.
func ReadLayered(customPath, kind, filename string) (data []byte, src Source, found bool, err error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, SourceCustom, false, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return data, SourceCustom, true, nil
	}

	if p := UserPath(kind, filename); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return data, SourceUser, true, nil
		}
	}

	if data, err := os.ReadFile(filepath.Join(kind, filename)); err == nil {
		return data, SourceLocal, true, nil
	}

	return nil, "", false, nil
}

// UserPath returns ~/.guesser/<parts...>, or empty if home is unavailable.
func UserPath(parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, parts...)...)
}

// LoadCampus loads the campus game configuration.
// Search order: customPath -> ~/.guesser/configs/campus.yaml ->
// ./configs/campus.yaml -> embedded default -> hardcoded default.
// Fields absent from the document keep their default values.
func LoadCampus(customPath string) (CampusConfig, Source, error) {
	cfg := DefaultCampusConfig()

	data, src, found, err := ReadLayered(customPath, "configs", "campus.yaml")
	if err != nil {
		return cfg, src, err
	}
	if found {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			if src == SourceCustom {
				return cfg, src, fmt.Errorf("config: parse %s: %w", customPath, err)
			}
			// Broken user/local file: fall through to the embedded default
			cfg = DefaultCampusConfig()
		} else {
			return cfg, src, cfg.Validate()
		}
	}

	if err := yaml.Unmarshal(defaultCampusYAML, &cfg); err != nil {
		return DefaultCampusConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, cfg.Validate()
}
