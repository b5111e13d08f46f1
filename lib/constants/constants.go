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

package constants

import "fmt"

const (
	// DirectiveContinue tells AppConfig to proceed with the deployment
	DirectiveContinue = "CONTINUE"
	// DirectiveRollBack tells AppConfig to roll the deployment back
	DirectiveRollBack = "ROLL_BACK"

	// UnparsableReason is reported to AppConfig when a notification
	// does not carry a usable reason
	UnparsableReason = "(Could not parse message body for a reason)"

	// EnvQueueURL names the environment variable with the URL of the
	// notification queue polled by the tick handler
	EnvQueueURL = "NR_QUEUE"
	// EnvRegion is the standard AWS region environment variable
	EnvRegion = "AWS_REGION"
	// EnvLambdaRuntimeAPI is set by the Lambda runtime for the function process
	EnvLambdaRuntimeAPI = "AWS_LAMBDA_RUNTIME_API"

	// ComponentTick is the logging component of the tick handler
	ComponentTick = "tick"
	// ComponentNotify is the logging component of the notification publisher
	ComponentNotify = "notify"
	// ComponentStack is the logging component of the stack synthesizer
	ComponentStack = "stack"
	// ComponentCLI is the logging component of the command line tools
	ComponentCLI = "cli"

	// AppConfigServicePrincipal is the service principal AppConfig uses to
	// assume the extension execution role
	AppConfigServicePrincipal = "appconfig.amazonaws.com"
	// LambdaBasicExecutionPolicy is the AWS managed policy granting a
	// function access to CloudWatch Logs
	LambdaBasicExecutionPolicy = "service-role/AWSLambdaBasicExecutionRole"

	// OutputQueue is the stack output with the notification queue URL
	OutputQueue = "nrqueue"
	// OutputPolicy is the stack output with the publisher policy name
	OutputPolicy = "nrpolicy"

	// NagNoDeadLetterQueue is the cdk-nag rule requiring a DLQ on SQS queues
	NagNoDeadLetterQueue = "AwsSolutions-SQS3"
	// NagManagedPolicy is the cdk-nag rule flagging AWS managed policies
	NagManagedPolicy = "AwsSolutions-IAM4"
	// NagWildcardPermissions is the cdk-nag rule flagging wildcard resources
	NagWildcardPermissions = "AwsSolutions-IAM5"

	// LambdaHandler is the executable name of a custom runtime function
	LambdaHandler = "bootstrap"
)

var (
	// EncodingJSON is for the JSON encoding format
	EncodingJSON Format = "json"
	// EncodingText is for the plain-text encoding format
	EncodingText Format = "text"
	// EncodingYAML is for the YAML encoding format
	EncodingYAML Format = "yaml"
	// OutputFormats is a list of recognized output formats
	OutputFormats = []Format{
		EncodingText,
		EncodingJSON,
		EncodingYAML,
	}
)

// Format is the type for supported output formats
type Format string

// Set sets the format value
func (f *Format) Set(v string) error {
	for _, format := range OutputFormats {
		if string(format) == v {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q, supported are: %v", v, OutputFormats)
}

// String returns the format string representation
func (f *Format) String() string {
	return string(*f)
}
