// Package config loads the updater configuration: source endpoints, the
// data file, extraction rules and runtime limits.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qubicscan/contract-registry/internal/extractor"
)

// Config is the top-level configuration for the registry updater.
type Config struct {
	// DataFile is the persisted registry document.
	DataFile string `json:"dataFile,omitempty"`

	// Sources configures the external endpoints.
	Sources SourcesConfig `json:"sources,omitempty"`

	// Identity configures the external identity derivation.
	Identity IdentityConfig `json:"identity,omitempty"`

	// Extract configures the scanners.
	Extract ExtractConfig `json:"extract,omitempty"`

	// FetchTimeoutSeconds bounds a single HTTP fetch.
	FetchTimeoutSeconds int `json:"fetchTimeoutSeconds,omitempty"`

	// MaxParallelFetches limits concurrent per-file processing (0 = serial).
	MaxParallelFetches int `json:"maxParallelFetches,omitempty"`
}

// SourcesConfig holds the external source endpoints.
type SourcesConfig struct {
	// DescriptorURL is the mandatory descriptor-table source. Its
	// unavailability aborts the whole run.
	DescriptorURL string `json:"descriptorUrl,omitempty"`

	// ContractBaseURL is the prefix per-file sources are fetched from.
	ContractBaseURL string `json:"contractBaseUrl,omitempty"`

	// LinkBaseURL is the prefix for human-facing source links.
	LinkBaseURL string `json:"linkBaseUrl,omitempty"`
}

// IdentityConfig configures the out-of-process identity helper.
type IdentityConfig struct {
	// HelperPath is the JS helper library; empty disables derivation and
	// every address degrades to its seed.
	HelperPath string `json:"helperPath,omitempty"`

	// NodeBin is the node executable ("node" when empty).
	NodeBin string `json:"nodeBin,omitempty"`

	// TimeoutSeconds bounds a single derivation.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// ExtractConfig configures the scanners.
type ExtractConfig struct {
	// LookbackLines is the index-macro search window above an include.
	LookbackLines int `json:"lookbackLines,omitempty"`

	// SkipFiles are basenames never resolved or fetched.
	SkipFiles []string `json:"skipFiles,omitempty"`

	// SkipPrefixes drop any basename starting with one of these.
	SkipPrefixes []string `json:"skipPrefixes,omitempty"`

	// Patterns overrides the extraction rules for a different source schema.
	Patterns extractor.PatternSpec `json:"patterns,omitempty"`

	// PatternOnly disables the Tree-sitter comment stripper and uses the
	// pattern fallback unconditionally.
	PatternOnly bool `json:"patternOnly,omitempty"`
}

const (
	defaultDescriptorURL   = "https://raw.githubusercontent.com/qubic/core/main/src/contract_core/contract_def.h"
	defaultContractBaseURL = "https://raw.githubusercontent.com/qubic/core/main/src/contracts/"
	defaultLinkBaseURL     = "https://github.com/qubic/core/blob/main/src/contracts/"
)

// DefaultConfig returns the configuration for the upstream core sources.
func DefaultConfig() *Config {
	return &Config{
		DataFile: "data/smart_contracts.json",
		Sources: SourcesConfig{
			DescriptorURL:   defaultDescriptorURL,
			ContractBaseURL: defaultContractBaseURL,
			LinkBaseURL:     defaultLinkBaseURL,
		},
		Identity: IdentityConfig{
			HelperPath:     "lib/qubic-js-library.js",
			TimeoutSeconds: 30,
		},
		Extract: ExtractConfig{
			LookbackLines: extractor.DefaultLookback,
			SkipFiles:     []string{"README.md", "math_lib.h", "qpi.h"},
			SkipPrefixes:  []string{"Test"},
		},
		FetchTimeoutSeconds: 30,
		MaxParallelFetches:  4,
	}
}

// Load finds and loads the configuration file. Search order:
//  1. ./contract_registry.json
//  2. ./.contract_registry.json
//  3. ~/.config/contract-registry/config.json
//
// Returns DefaultConfig if no config file is found.
func Load() (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "contract_registry.json"),
		filepath.Join(cwd, ".contract_registry.json"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "contract-registry", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.Sources.DescriptorURL == "" {
		c.Sources.DescriptorURL = def.Sources.DescriptorURL
	}
	if c.Sources.ContractBaseURL == "" {
		c.Sources.ContractBaseURL = def.Sources.ContractBaseURL
	}
	if c.Sources.LinkBaseURL == "" {
		c.Sources.LinkBaseURL = def.Sources.LinkBaseURL
	}
	if c.Identity.TimeoutSeconds == 0 {
		c.Identity.TimeoutSeconds = def.Identity.TimeoutSeconds
	}
	if c.Extract.LookbackLines == 0 {
		c.Extract.LookbackLines = def.Extract.LookbackLines
	}
	if c.Extract.SkipFiles == nil {
		c.Extract.SkipFiles = def.Extract.SkipFiles
	}
	if c.Extract.SkipPrefixes == nil {
		c.Extract.SkipPrefixes = def.Extract.SkipPrefixes
	}
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.MaxParallelFetches == 0 {
		c.MaxParallelFetches = def.MaxParallelFetches
	}
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ShouldSkipFile reports whether a basename is excluded up front, before
// any resolution or fetching.
func (c *Config) ShouldSkipFile(basename string) bool {
	for _, name := range c.Extract.SkipFiles {
		if basename == name {
			return true
		}
	}
	for _, prefix := range c.Extract.SkipPrefixes {
		if prefix != "" && strings.HasPrefix(basename, prefix) {
			return true
		}
	}
	return false
}
