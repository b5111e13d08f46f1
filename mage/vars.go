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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitational/appconfig-tick/lib/stack"

	"github.com/gravitational/trace"
	"github.com/magefile/mage/sh"
)

const (
	// modulePath is the import path of the repository
	modulePath = "github.com/gravitational/appconfig-tick"
	// buildDir is the root of the build artifacts
	buildDir = "build"
)

var (
	// buildVersion is the version assigned to the binaries
	buildVersion = envOr("BUILD_VERSION", "0.0.1")

	// stackConfigFile is an optional stack configuration. The function
	// binary is built for the architecture the stack declares in it.
	stackConfigFile = envOr("STACK_CONFIG", "")

	// cdkOutDir is the cloud assembly directory
	cdkOutDir = envOr("CDK_OUTDIR", filepath.Join(buildDir, "cdk.out"))
)

func envOr(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func buildFlags() string {
	return strings.Join([]string{
		fmt.Sprint("-X github.com/gravitational/version.gitCommit=", gitHash()),
		fmt.Sprint("-X github.com/gravitational/version.version=", buildVersion),
		"-s -w", // shrink the binary
	}, " ")
}

func gitHash() string {
	hash, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "unknown"
	}
	return hash
}

// tickSources lists the sources the function binary is built from
var tickSources = []string{"lib", "tool", "go.mod", "go.sum"}

// tickArchStamp records the architecture of the last function build
var tickArchStamp = filepath.Join(buildDir, "tick.arch")

// stackConfig returns the stack configuration shared by
// the function build and the stack synthesis
func stackConfig(path string) (*stack.Config, error) {
	config := &stack.Config{}
	if path != "" {
		var err error
		config, err = stack.LoadConfig(path)
		if err != nil {
			return nil, trace.Wrap(err)
		}
	}
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return config, nil
}

// goArch returns the Go architecture for the function architecture
func goArch(architecture string) (string, error) {
	switch architecture {
	case stack.ArchitectureARM64:
		return "arm64", nil
	case stack.ArchitectureX86_64:
		return "amd64", nil
	}
	return "", trace.BadParameter("unsupported function architecture %q", architecture)
}

// builtArch returns the architecture recorded in the stamp file, if any
func builtArch(stamp string) string {
	data, err := os.ReadFile(stamp)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func inBinDir(elems ...string) string {
	return filepath.Join(append([]string{buildDir, "bin"}, elems...)...)
}
