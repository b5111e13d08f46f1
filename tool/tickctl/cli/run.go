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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/defaults"
	"github.com/gravitational/appconfig-tick/lib/notify"
	"github.com/gravitational/appconfig-tick/lib/policy"
	"github.com/gravitational/appconfig-tick/lib/stack"
	"github.com/gravitational/appconfig-tick/lib/tick"
	"github.com/gravitational/appconfig-tick/lib/utils"
	"github.com/gravitational/appconfig-tick/tool/common"

	"github.com/gravitational/trace"
	"github.com/gravitational/version"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentCLI)

// Run parses CLI arguments and executes an appropriate tickctl command
func Run(tickctl Application, args []string) error {
	log.Debugf("Executing: %v.", args)
	cmd, err := tickctl.Parse(args)
	if err != nil {
		return trace.Wrap(err)
	}

	trace.SetDebug(*tickctl.Debug)
	if *tickctl.Debug {
		utils.InitLogger(utils.LoggingForCLI, logrus.DebugLevel)
	} else {
		utils.InitLogger(utils.LoggingForCLI, logrus.InfoLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaults.RequestTimeout)
	defer cancel()

	switch cmd {
	case tickctl.VersionCmd.FullCommand():
		return printVersion(os.Stdout, *tickctl.VersionCmd.Output)
	case tickctl.CheckCmd.FullCommand():
		return runTick(ctx, os.Stdout, tick.Config{
			QueueURL: *tickctl.CheckCmd.QueueURL,
			Region:   *tickctl.Region,
		}, *tickctl.CheckCmd.Output)
	case tickctl.NotifyCmd.FullCommand():
		return publish(ctx, os.Stdout, notify.Config{
			QueueURL: *tickctl.NotifyCmd.QueueURL,
			Region:   *tickctl.Region,
		}, *tickctl.NotifyCmd.Reason)
	case tickctl.PolicyCmd.FullCommand():
		return printPolicy(os.Stdout, *tickctl.PolicyCmd.ResourceARN,
			*tickctl.PolicyCmd.Consumer, *tickctl.PolicyCmd.Invoker)
	case tickctl.SynthCmd.FullCommand():
		region := *tickctl.Region
		if region == "" {
			region = os.Getenv("CDK_DEFAULT_REGION")
		}
		return synth(os.Stdout, SynthParameters{
			ConfigFile: *tickctl.SynthCmd.ConfigFile,
			OutDir:     *tickctl.SynthCmd.OutDir,
			Overrides: stack.Config{
				StackName:     *tickctl.SynthCmd.StackName,
				AssetPath:     *tickctl.SynthCmd.AssetPath,
				Architecture:  *tickctl.SynthCmd.Architecture,
				ExtensionName: *tickctl.SynthCmd.ExtensionName,
				Account:       *tickctl.SynthCmd.Account,
				Region:        region,
			},
		})
	}
	return trace.NotFound("unknown command %v", cmd)
}

func printVersion(w io.Writer, format constants.Format) error {
	ver := version.Get()
	return common.PrintValue(w, format, ver,
		fmt.Sprintf("Version:\t%v\nGit Commit:\t%v", ver.Version, ver.GitCommit))
}

func runTick(ctx context.Context, w io.Writer, config tick.Config, format constants.Format) error {
	handler, err := tick.New(config)
	if err != nil {
		return trace.Wrap(err)
	}
	resp, err := handler.Handle(ctx, nil)
	if err != nil {
		return common.ProcessQueueError(err, config.QueueURL)
	}
	text := resp.Directive
	if resp.IsRollBack() {
		text = fmt.Sprintf("%v: %v", resp.Directive, resp.Description)
	}
	return common.PrintValue(w, format, resp, text)
}

func publish(ctx context.Context, w io.Writer, config notify.Config, reason string) error {
	publisher, err := notify.New(config)
	if err != nil {
		return trace.Wrap(err)
	}
	messageID, err := publisher.Publish(ctx, reason)
	if err != nil {
		return common.ProcessQueueError(err, config.QueueURL)
	}
	_, err = fmt.Fprintf(w, "Notification %v published.\n", messageID)
	return trace.Wrap(err)
}

func printPolicy(w io.Writer, resourceARN string, consumer, invoker bool) error {
	actions := policy.PublisherActions
	switch {
	case consumer && invoker:
		return trace.BadParameter("--consumer and --invoker are mutually exclusive")
	case consumer:
		actions = policy.ConsumerActions
	case invoker:
		actions = policy.InvokerActions
	}
	doc, err := actions.AsPolicy(defaults.PolicyVersion, resourceARN)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = fmt.Fprintln(w, doc)
	return trace.Wrap(err)
}

// SynthParameters defines the stack synthesis parameters
type SynthParameters struct {
	// ConfigFile is an optional stack configuration file
	ConfigFile string
	// OutDir is the cloud assembly directory
	OutDir string
	// Overrides take precedence over the configuration file
	Overrides stack.Config
}

func synth(w io.Writer, params SynthParameters) error {
	var config stack.Config
	if params.ConfigFile != "" {
		fileConfig, err := stack.LoadConfig(params.ConfigFile)
		if err != nil {
			return trace.Wrap(err)
		}
		config = *fileConfig
	}
	config.Merge(params.Overrides)
	if err := config.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	if _, err := os.Stat(config.AssetPath); err != nil {
		return trace.BadParameter("function asset directory %v is missing, build it with 'mage build:tick'",
			config.AssetPath)
	}
	log.WithFields(logrus.Fields{
		trace.Component: constants.ComponentStack,
		"stack":         config.StackName,
	}).Debug("Synthesizing stack.")
	dir, err := stack.Synth(config, params.OutDir)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = fmt.Fprintf(w, "Stack %v synthesized to %v.\n", config.StackName, dir)
	return trace.Wrap(err)
}
