// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the standard locations.
const FileName = "deckthumb.yaml"

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

func init() {
	_, _ = Load()
}

// Load reads the config file and makes it the package-wide Config. An
// explicit path wins over DECKTHUMB_CFG and the standard locations.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	if len(cfgFilePath) > 0 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else {
		p, err := getConfigPath()
		if err != nil {
			return Type{}, err
		}
		path = p
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data}

	return Config, nil
}

// keys returns the dotted paths tried for kspec, most specific first. With a
// namespace set, "ns.kspec" shadows the top-level kspec.
func (cfg *Type) keys(kspec string) []string {
	if cfg.Namespace == "" {
		return []string{kspec}
	}
	return []string{cfg.Namespace + "." + kspec, kspec}
}

// get walks the dotted key paths of kspec and returns the first value found.
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 && cfg.Source != "" {
		_, _ = Load(cfg.Source)
	}

	candidates := cfg.keys(kspec)
	for _, key := range candidates {
		if v, ok := walk(Config.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, path []string) (any, bool) {
	for _, k := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

// lookup resolves key and converts it with as. A missing key yields the
// default when one is given; a value of the wrong type is always an error.
func lookup[T any](key string, as func(any) (T, bool), what string, defaultValue []T) (T, error) {
	var zero T
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	v, ok := as(val)
	if !ok {
		return zero, fmt.Errorf("value of %s is not %s", key, what)
	}
	return v, nil
}

// GetString returns the string at the dotted key.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	}, "a string", defaultValue)
}

// GetInt returns the integer at the dotted key. YAML floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	}, "an int", defaultValue)
}

func getConfigPath() (string, error) {
	if p, ok := os.LookupEnv("DECKTHUMB_CFG"); ok && p != "" {
		fileInfo, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", p)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("DECKTHUMB_CFG points to a directory: %s", p)
		}
		return p, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
