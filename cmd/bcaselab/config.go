// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = "bcaselab.yaml"

// fileConfig holds defaults read from YAML config. Flags override it.
type fileConfig struct {
	// Path is the config file that was loaded, empty when none.
	Path string `yaml:"-"`
	// Schema is the schema document path.
	Schema string `yaml:"schema"`
	// Samples is the evaluation samples directory.
	Samples string `yaml:"samples"`
	// Scorecard is the evaluation output path.
	Scorecard string `yaml:"scorecard"`
	// Out is the default render output path.
	Out     string `yaml:"out"`
	NoColor bool   `yaml:"no_color"`
}

// loadFileConfig reads config from path. An empty path falls back to
// bcaselab.yaml, which may be absent. Relative paths inside the file are
// resolved against the file directory.
func loadFileConfig(path string) (fileConfig, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}

		return fileConfig{}, fmt.Errorf("read config file %q: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var config fileConfig
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("decode config file %q: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	config.Path = path
	config.Schema = resolveConfigPath(baseDir, config.Schema)
	config.Samples = resolveConfigPath(baseDir, config.Samples)
	config.Scorecard = resolveConfigPath(baseDir, config.Scorecard)
	config.Out = resolveConfigPath(baseDir, config.Out)

	return config, nil
}

// resolveConfigPath anchors relative config paths to config directory.
func resolveConfigPath(baseDir, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" || filepath.IsAbs(value) {
		return value
	}

	return filepath.Join(baseDir, value)
}
