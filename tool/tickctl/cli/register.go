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

package cli

import (
	"fmt"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/defaults"
	"github.com/gravitational/appconfig-tick/lib/stack"
	"github.com/gravitational/appconfig-tick/tool/common"

	"gopkg.in/alecthomas/kingpin.v2"
)

// RegisterCommands registers all tickctl tool flags, arguments and subcommands
func RegisterCommands(app *kingpin.Application) Application {
	tickctl := Application{
		Application: app,
	}

	tickctl.Debug = app.Flag("debug", "Enable debug mode.").Bool()
	tickctl.Region = app.Flag("region", "AWS region.").Envar(constants.EnvRegion).String()

	tickctl.VersionCmd.CmdClause = app.Command("version", "Print version information and exit.")
	tickctl.VersionCmd.Output = common.Format(tickctl.VersionCmd.Flag("output", "Output format: text or json.").Short('o').Default(string(constants.EncodingText)))

	tickctl.CheckCmd.CmdClause = app.Command("check", "Run a single deployment tick against the queue and print the directive. Notifications on the queue are consumed.")
	tickctl.CheckCmd.QueueURL = tickctl.CheckCmd.Flag("queue-url", "Notification queue URL.").Envar(constants.EnvQueueURL).Required().String()
	tickctl.CheckCmd.Output = common.Format(tickctl.CheckCmd.Flag("output", fmt.Sprintf("Output format: %v.", constants.OutputFormats)).Short('o').Default(string(constants.EncodingText)))

	tickctl.NotifyCmd.CmdClause = app.Command("notify", "Publish a failure notification that rolls back the deployment in progress.")
	tickctl.NotifyCmd.QueueURL = tickctl.NotifyCmd.Flag("queue-url", "Notification queue URL.").Envar(constants.EnvQueueURL).Required().String()
	tickctl.NotifyCmd.Reason = tickctl.NotifyCmd.Arg("reason", "Roll back reason reported to AppConfig.").Required().String()

	tickctl.PolicyCmd.CmdClause = app.Command("policy", "Print the IAM policy document for the notification queue or the tick function.")
	tickctl.PolicyCmd.ResourceARN = tickctl.PolicyCmd.Arg("resource-arn", "Notification queue ARN, or the function ARN with --invoker.").Required().String()
	tickctl.PolicyCmd.Consumer = tickctl.PolicyCmd.Flag("consumer", "Print the permissions of the tick function instead of the publisher ones.").Bool()
	tickctl.PolicyCmd.Invoker = tickctl.PolicyCmd.Flag("invoker", "Print the permissions AppConfig needs to invoke the tick function.").Bool()

	tickctl.SynthCmd.CmdClause = app.Command("synth", "Synthesize the extension stack into a cloud assembly.")
	tickctl.SynthCmd.ConfigFile = tickctl.SynthCmd.Flag("config", fmt.Sprintf("Stack configuration file, e.g. %v.", defaults.ConfigFileName)).String()
	tickctl.SynthCmd.OutDir = tickctl.SynthCmd.Flag("out-dir", "Cloud assembly output directory.").Envar("CDK_OUTDIR").String()
	tickctl.SynthCmd.StackName = tickctl.SynthCmd.Flag("stack-name", fmt.Sprintf("Stack name. Defaults to %v.", defaults.StackName)).String()
	tickctl.SynthCmd.AssetPath = tickctl.SynthCmd.Flag("asset-path", fmt.Sprintf("Directory with the compiled function bootstrap. Defaults to %v.", defaults.AssetPath)).String()
	tickctl.SynthCmd.Architecture = tickctl.SynthCmd.Flag("architecture", fmt.Sprintf("Function architecture: %v or %v.", stack.ArchitectureARM64, stack.ArchitectureX86_64)).String()
	tickctl.SynthCmd.ExtensionName = tickctl.SynthCmd.Flag("extension-name", "AppConfig extension name.").String()
	tickctl.SynthCmd.Account = tickctl.SynthCmd.Flag("account", "Target AWS account.").Envar("CDK_DEFAULT_ACCOUNT").String()

	return tickctl
}
