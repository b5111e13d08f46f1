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

package defaults

import "time"

const (
	// StackName is the default CloudFormation stack id
	StackName = "AppconfigNewRelicTickExtnStack"

	// QueueRetention is how long notifications stay on the queue.
	// Notifications are only relevant to the tick that observes them.
	QueueRetention = time.Minute

	// Architecture is the default function instruction set
	Architecture = "arm64"
	// FunctionMemorySize is the default function memory size in MB
	FunctionMemorySize = 128
	// FunctionTimeout is the default function execution limit
	FunctionTimeout = 30 * time.Second

	// AssetPath is the directory with the compiled function bootstrap
	AssetPath = "build/tick"

	// ExtensionName is the default AppConfig extension name
	ExtensionName = "Sample New Relic Monitor Tick"
	// ExtensionDescription describes the AppConfig extension
	ExtensionDescription = "A sample Extension to watch New Relic status queue during a deployment and roll back if messages are received"
	// ActionDescription describes the deployment tick action
	ActionDescription = "Deployment Tick action point"
	// FunctionDescription describes the tick function
	FunctionDescription = "AppConfig Extension to handle deployment tick with New Relic"
	// PolicyDescription describes the publisher managed policy
	PolicyDescription = "Managed Policy for sample AWS AppConfig New Relic Extension"
	// QueueOutputDescription describes the queue URL stack output
	QueueOutputDescription = "The SQS Queue URL to which messages should be posted to notify of issues"
	// PolicyOutputDescription describes the policy name stack output
	PolicyOutputDescription = "The IAM Policy to attach to the Role for New Relic"

	// PolicyVersion is the IAM policy language version
	PolicyVersion = "2012-10-17"

	// RequestTimeout limits a single AWS request issued from the command line
	RequestTimeout = 30 * time.Second

	// ConfigFileName is the default stack configuration file name
	ConfigFileName = "stack.yaml"
)
