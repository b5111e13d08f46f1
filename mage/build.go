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
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gravitational/trace"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// All builds the function and the operator CLI
func (Build) All() {
	mg.SerialDeps(Build.Tick, Build.Tickctl)
}

// Tick cross-compiles the function bootstrap binary for the Lambda runtime
// and the architecture of the stack configuration
func (Build) Tick(ctx context.Context) error {
	config, err := stackConfig(stackConfigFile)
	if err != nil {
		return trace.Wrap(err)
	}
	arch, err := goArch(config.Architecture)
	if err != nil {
		return trace.Wrap(err)
	}
	mg.Deps(Mkdir(buildDir), Mkdir(config.AssetPath))

	output := filepath.Join(config.AssetPath, "bootstrap")
	if builtArch(tickArchStamp) == arch && IsUpToDate(output, tickSources[0], tickSources[1:]...) {
		return nil
	}
	err = sh.RunWith(map[string]string{
		"GOOS":        "linux",
		"GOARCH":      arch,
		"CGO_ENABLED": "0",
	}, mg.GoCmd(), "build",
		"-tags", "lambda.norpc",
		"-ldflags", buildFlags(),
		"-o", output,
		modulePath+"/tool/tick",
	)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.ConvertSystemError(os.WriteFile(tickArchStamp, []byte(arch), 0644))
}

// Tickctl builds the platform-native operator CLI
func (Build) Tickctl(ctx context.Context) error {
	outputDir := inBinDir(runtime.GOOS, runtime.GOARCH)
	mg.Deps(Mkdir(outputDir))

	err := sh.RunV(mg.GoCmd(), "build",
		"-ldflags", buildFlags(),
		"-o", filepath.Join(outputDir, "tickctl"),
		modulePath+"/tool/tickctl",
	)
	return trace.Wrap(err)
}
