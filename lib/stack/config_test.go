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
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/gravitational/appconfig-tick/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.CheckAndSetDefaults())
	require.Equal(t, Config{
		StackName:      defaults.StackName,
		AssetPath:      defaults.AssetPath,
		Architecture:   ArchitectureARM64,
		QueueRetention: Duration{time.Minute},
		MemorySize:     defaults.FunctionMemorySize,
		Timeout:        Duration{defaults.FunctionTimeout},
		ExtensionName:  defaults.ExtensionName,
	}, cfg)
}

func TestConfigValidation(t *testing.T) {
	for _, tc := range []struct {
		comment string
		cfg     Config
	}{
		{comment: "unknown architecture", cfg: Config{Architecture: "s390x"}},
		{comment: "retention too short", cfg: Config{QueueRetention: Duration{30 * time.Second}}},
		{comment: "retention too long", cfg: Config{QueueRetention: Duration{15 * 24 * time.Hour}}},
		{comment: "fractional retention", cfg: Config{QueueRetention: Duration{90500 * time.Millisecond}}},
		{comment: "memory too small", cfg: Config{MemorySize: 64}},
		{comment: "timeout too long", cfg: Config{Timeout: Duration{time.Hour}}},
	} {
		err := tc.cfg.CheckAndSetDefaults()
		require.True(t, trace.IsBadParameter(err), tc.comment)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), defaults.ConfigFileName)
	err := ioutil.WriteFile(path, []byte(`
stackName: TickProd
architecture: x86_64
queueRetention: 2m
timeout: 10s
region: eu-west-1
`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, &Config{
		StackName:      "TickProd",
		Architecture:   ArchitectureX86_64,
		QueueRetention: Duration{2 * time.Minute},
		Timeout:        Duration{10 * time.Second},
		Region:         "eu-west-1",
	}, cfg)

	cfg.Merge(Config{StackName: "TickOverride", MemorySize: 256})
	require.Equal(t, "TickOverride", cfg.StackName)
	require.Equal(t, 256, cfg.MemorySize)
	require.Equal(t, ArchitectureX86_64, cfg.Architecture)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, trace.IsNotFound(err))

	path := filepath.Join(t.TempDir(), defaults.ConfigFileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("queueRetention: soon\n"), 0644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}
