package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"wagner/internal/translate"
)

const manifestName = "wagner.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Translate translateConfig `toml:"translate"`
	Output    outputConfig    `toml:"output"`
	Driver    driverConfig    `toml:"driver"`
}

type translateConfig struct {
	Inline bool   `toml:"inline"`
	Hits   string `toml:"hits"`
}

type outputConfig struct {
	Env   bool `toml:"env"`
	Stats bool `toml:"stats"`
}

type driverConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// defined reports whether the manifest set the key.
func (m *projectManifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, meta, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
		meta:   meta,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("translate", "hits") {
		if _, err := translate.ParseHitPolicy(cfg.Translate.Hits); err != nil {
			return projectConfig{}, meta, fmt.Errorf("%s: [translate].hits: %w", path, err)
		}
	}
	if meta.IsDefined("driver", "jobs") && cfg.Driver.Jobs < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [driver].jobs must not be negative", path)
	}
	return cfg, meta, nil
}
