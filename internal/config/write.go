package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/corewatch/internal/errors"
)

// fileConfig mirrors Config with durations as strings, since yaml.v3 would
// otherwise write them as nanosecond integers.
type fileConfig struct {
	Version     int           `yaml:"version"`
	Server      string        `yaml:"server"`
	Path        string        `yaml:"path"`
	ReloadDelay string        `yaml:"reload_delay"`
	Window      int           `yaml:"window"`
	Display     fileDisplay   `yaml:"display"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

type fileDisplay struct {
	Output         string `yaml:"output"`
	Decimals       int    `yaml:"decimals"`
	ChartWidth     int    `yaml:"chart_width"`
	ChartHeight    int    `yaml:"chart_height"`
	ReferenceLines bool   `yaml:"reference_lines"`
	HTMLFile       string `yaml:"html_file"`
	Refresh        string `yaml:"refresh"`
}

func toFile(cfg *Config) fileConfig {
	return fileConfig{
		Version:     cfg.Version,
		Server:      cfg.Server,
		Path:        cfg.Path,
		ReloadDelay: cfg.ReloadDelay.String(),
		Window:      cfg.Window,
		Display: fileDisplay{
			Output:         cfg.Display.Output,
			Decimals:       cfg.Display.Decimals,
			ChartWidth:     cfg.Display.ChartWidth,
			ChartHeight:    cfg.Display.ChartHeight,
			ReferenceLines: cfg.Display.ReferenceLines,
			HTMLFile:       cfg.Display.HTMLFile,
			Refresh:        cfg.Display.Refresh.String(),
		},
		Metrics: cfg.Metrics,
	}
}

// Marshal renders the config as YAML with two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toFile(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FileHeader is prepended to config files written by Write.
const FileHeader = `# corewatch configuration
# Run 'corewatch watch' to follow the feed, 'corewatch snapshot' for one frame

`

// Write saves cfg to path with FileHeader on top. An existing file is only replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't create config directory "+dir,
				"Check directory permissions")
		}
	}
	data = append([]byte(FileHeader), data...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file "+path,
			"Check directory permissions")
	}
	return nil
}

// SetValue updates a single top-level scalar in an existing config file,
// keeping comments and key order intact. The key is appended when missing.
func SetValue(configPath, key, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("config file is empty or not a YAML document")
	}
	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("config file root is not a mapping")
	}

	if valueNode := findMapValue(docNode, key); valueNode != nil {
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = ""
		valueNode.Value = value
		valueNode.Content = nil
	} else {
		docNode.Content = append(docNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
