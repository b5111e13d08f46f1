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
	"github.com/gravitational/appconfig-tick/lib/constants"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Application represents the command-line "tickctl" application and contains
// definitions of all its flags, arguments and subcommands
type Application struct {
	*kingpin.Application
	// Debug allows to run the command in debug mode
	Debug *bool
	// Region is the AWS region to talk to
	Region *string
	// VersionCmd outputs the binary version
	VersionCmd VersionCmd
	// CheckCmd runs a single deployment tick
	CheckCmd CheckCmd
	// NotifyCmd publishes a failure notification
	NotifyCmd NotifyCmd
	// PolicyCmd prints an IAM policy document for the queue
	PolicyCmd PolicyCmd
	// SynthCmd synthesizes the extension stack
	SynthCmd SynthCmd
}

// VersionCmd outputs the binary version
type VersionCmd struct {
	*kingpin.CmdClause
	// Output is output format
	Output *constants.Format
}

// CheckCmd runs a single deployment tick against the queue
// and prints the directive AppConfig would receive.
// Notifications found on the queue are consumed.
type CheckCmd struct {
	*kingpin.CmdClause
	// QueueURL is the notification queue URL
	QueueURL *string
	// Output is output format
	Output *constants.Format
}

// NotifyCmd publishes a failure notification
type NotifyCmd struct {
	*kingpin.CmdClause
	// QueueURL is the notification queue URL
	QueueURL *string
	// Reason is the roll back reason
	Reason *string
}

// PolicyCmd prints an IAM policy document for the queue
// or the tick function
type PolicyCmd struct {
	*kingpin.CmdClause
	// ResourceARN is the notification queue ARN or the function ARN
	ResourceARN *string
	// Consumer selects the consumer permissions instead of the publisher ones
	Consumer *bool
	// Invoker selects the permissions to invoke the tick function
	Invoker *bool
}

// SynthCmd synthesizes the extension stack into a cloud assembly
type SynthCmd struct {
	*kingpin.CmdClause
	// ConfigFile is an optional YAML stack configuration
	ConfigFile *string
	// OutDir is the cloud assembly directory
	OutDir *string
	// StackName overrides the stack name
	StackName *string
	// AssetPath overrides the function asset directory
	AssetPath *string
	// Architecture overrides the function architecture
	Architecture *string
	// ExtensionName overrides the extension name
	ExtensionName *string
	// Account is the target account
	Account *string
}
