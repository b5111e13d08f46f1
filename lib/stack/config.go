/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stack

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/gravitational/appconfig-tick/lib/defaults"

	"github.com/ghodss/yaml"
	"github.com/gravitational/trace"
)

const (
	// ArchitectureARM64 selects Graviton functions
	ArchitectureARM64 = "arm64"
	// ArchitectureX86_64 selects x86 functions
	ArchitectureX86_64 = "x86_64"

	minQueueRetention  = time.Minute
	maxQueueRetention  = 14 * 24 * time.Hour
	maxFunctionTimeout = 15 * time.Minute
)

// Config describes the provisioned extension
type Config struct {
	// StackName is the CloudFormation stack id
	StackName string `json:"stackName,omitempty"`
	// AssetPath is the directory with the compiled bootstrap executable
	AssetPath string `json:"assetPath,omitempty"`
	// Architecture is the function instruction set, arm64 or x86_64
	Architecture string `json:"architecture,omitempty"`
	// QueueRetention is how long notifications are kept on the queue
	QueueRetention Duration `json:"queueRetention,omitempty"`
	// MemorySize is the function memory size in MB
	MemorySize int `json:"memorySize,omitempty"`
	// Timeout is the function execution limit
	Timeout Duration `json:"timeout,omitempty"`
	// ExtensionName is the AppConfig extension name
	ExtensionName string `json:"extensionName,omitempty"`
	// Account is an optional target AWS account
	Account string `json:"account,omitempty"`
	// Region is an optional target AWS region
	Region string `json:"region,omitempty"`
}

// CheckAndSetDefaults checks and sets default values
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.StackName == "" {
		cfg.StackName = defaults.StackName
	}
	if cfg.AssetPath == "" {
		cfg.AssetPath = defaults.AssetPath
	}
	if cfg.Architecture == "" {
		cfg.Architecture = defaults.Architecture
	}
	switch cfg.Architecture {
	case ArchitectureARM64, ArchitectureX86_64:
	default:
		return trace.BadParameter("unsupported architecture %q, expected %v or %v",
			cfg.Architecture, ArchitectureARM64, ArchitectureX86_64)
	}
	if cfg.QueueRetention.Duration == 0 {
		cfg.QueueRetention.Duration = defaults.QueueRetention
	}
	if cfg.QueueRetention.Duration < minQueueRetention || cfg.QueueRetention.Duration > maxQueueRetention {
		return trace.BadParameter("queue retention must be between %v and %v, got %v",
			minQueueRetention, maxQueueRetention, cfg.QueueRetention)
	}
	if cfg.QueueRetention.Duration%time.Second != 0 {
		return trace.BadParameter("queue retention must be a whole number of seconds, got %v", cfg.QueueRetention)
	}
	if cfg.MemorySize == 0 {
		cfg.MemorySize = defaults.FunctionMemorySize
	}
	if cfg.MemorySize < 128 || cfg.MemorySize > 10240 {
		return trace.BadParameter("function memory size must be between 128 and 10240 MB, got %v", cfg.MemorySize)
	}
	if cfg.Timeout.Duration == 0 {
		cfg.Timeout.Duration = defaults.FunctionTimeout
	}
	if cfg.Timeout.Duration < time.Second || cfg.Timeout.Duration > maxFunctionTimeout {
		return trace.BadParameter("function timeout must be between 1s and %v, got %v",
			maxFunctionTimeout, cfg.Timeout)
	}
	if cfg.ExtensionName == "" {
		cfg.ExtensionName = defaults.ExtensionName
	}
	return nil
}

// LoadConfig reads the stack configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, trace.Wrap(err, "failed to parse %v", path)
	}
	return &cfg, nil
}

// Merge overrides fields of this configuration with the non-empty
// fields of the specified one
func (cfg *Config) Merge(other Config) {
	if other.StackName != "" {
		cfg.StackName = other.StackName
	}
	if other.AssetPath != "" {
		cfg.AssetPath = other.AssetPath
	}
	if other.Architecture != "" {
		cfg.Architecture = other.Architecture
	}
	if other.QueueRetention.Duration != 0 {
		cfg.QueueRetention = other.QueueRetention
	}
	if other.MemorySize != 0 {
		cfg.MemorySize = other.MemorySize
	}
	if other.Timeout.Duration != 0 {
		cfg.Timeout = other.Timeout
	}
	if other.ExtensionName != "" {
		cfg.ExtensionName = other.ExtensionName
	}
	if other.Account != "" {
		cfg.Account = other.Account
	}
	if other.Region != "" {
		cfg.Region = other.Region
	}
}

// Duration is a time.Duration that reads and writes
// in the Go duration notation, e.g. 1m30s
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the duration from a string
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return trace.BadParameter("expected duration string like 1m, got %s", data)
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return trace.BadParameter("invalid duration %q: %v", s, err)
	}
	d.Duration = duration
	return nil
}
