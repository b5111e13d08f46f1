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

	"github.com/gravitational/trace"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Deploy mg.Namespace

// Synth synthesizes the extension stack into the cloud assembly directory
func (Deploy) Synth(ctx context.Context) error {
	mg.CtxDeps(ctx, Build.Tick, Mkdir(cdkOutDir))

	args := []string{"run", modulePath + "/tool/tickctl", "synth", "--out-dir", cdkOutDir}
	if stackConfigFile != "" {
		args = append(args, "--config", stackConfigFile)
	}
	return trace.Wrap(sh.RunV(mg.GoCmd(), args...))
}

// Stack deploys the synthesized stack with the cdk toolkit
func (Deploy) Stack(ctx context.Context) error {
	mg.CtxDeps(ctx, Deploy.Synth)

	return trace.Wrap(sh.RunV("cdk", "deploy", "--app", cdkOutDir, "--require-approval", "never"))
}
