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

package mage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitational/appconfig-tick/lib/defaults"

	"github.com/stretchr/testify/require"
)

func TestFunctionArchitectureFollowsStackConfig(t *testing.T) {
	config, err := stackConfig("")
	require.NoError(t, err)
	require.Equal(t, defaults.AssetPath, config.AssetPath)
	arch, err := goArch(config.Architecture)
	require.NoError(t, err)
	require.Equal(t, "arm64", arch)

	path := filepath.Join(t.TempDir(), defaults.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("architecture: x86_64\nassetPath: out/tick\n"), 0644))
	config, err = stackConfig(path)
	require.NoError(t, err)
	require.Equal(t, "out/tick", config.AssetPath)
	arch, err = goArch(config.Architecture)
	require.NoError(t, err)
	require.Equal(t, "amd64", arch)

	_, err = goArch("mips")
	require.Error(t, err)
}

func TestBuiltArch(t *testing.T) {
	stamp := filepath.Join(t.TempDir(), "tick.arch")
	require.Equal(t, "", builtArch(stamp))
	require.NoError(t, os.WriteFile(stamp, []byte("amd64"), 0644))
	require.Equal(t, "amd64", builtArch(stamp))
}

func TestTickSourcesCoverFunctionPackages(t *testing.T) {
	// the function binary imports packages from both trees
	require.Contains(t, tickSources, "lib")
	require.Contains(t, tickSources, "tool")
}
