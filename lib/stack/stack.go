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
	"fmt"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/defaults"
	"github.com/gravitational/appconfig-tick/lib/policy"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappconfig"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cdklabs/cdk-nag-go/cdknag/v2"
	"github.com/gravitational/trace"
)

// Stack is the deployment tick extension stack
type Stack struct {
	awscdk.Stack
	// Queue receives failure notifications from monitoring
	Queue awssqs.Queue
	// Policy allows external publishers to post to Queue
	Policy awsiam.ManagedPolicy
	// Function answers deployment ticks
	Function awslambda.Function
	// Role is assumed by AppConfig to invoke Function
	Role awsiam.Role
	// Extension registers Function at the deployment tick action point
	Extension awsappconfig.Extension
}

// New declares the extension stack in the specified scope
func New(scope constructs.Construct, cfg Config) (*Stack, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	props := &awscdk.StackProps{}
	if cfg.Account != "" || cfg.Region != "" {
		props.Env = &awscdk.Environment{
			Account: optionalString(cfg.Account),
			Region:  optionalString(cfg.Region),
		}
	}
	root := awscdk.NewStack(scope, jsii.String(cfg.StackName), props)
	stack := &Stack{Stack: root}

	stack.Queue = awssqs.NewQueue(root, jsii.String("NewRelicAppconfigQueue"), &awssqs.QueueProps{
		RetentionPeriod: awscdk.Duration_Seconds(jsii.Number(cfg.QueueRetention.Seconds())),
		EnforceSSL:      jsii.Bool(true),
	})
	suppress(stack.Queue, false, &cdknag.NagPackSuppression{
		Id:     jsii.String(constants.NagNoDeadLetterQueue),
		Reason: jsii.String("Messages on this queue are only relevant at the time they're received, so no DLQ is required"),
	})

	stack.Policy = awsiam.NewManagedPolicy(root, jsii.String("appconfig_nr_policy"), &awsiam.ManagedPolicyProps{
		Description: jsii.String(defaults.PolicyDescription),
		Statements: &[]awsiam.PolicyStatement{
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions:   jsii.Strings(policy.PublisherActions.Strings()...),
				Resources: &[]*string{stack.Queue.QueueArn()},
				Effect:    awsiam.Effect_ALLOW,
			}),
		},
	})

	stack.Function = awslambda.NewFunction(root, jsii.String("tick_fn"), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Handler:      jsii.String(constants.LambdaHandler),
		Code:         awslambda.Code_FromAsset(jsii.String(cfg.AssetPath), nil),
		Architecture: architecture(cfg.Architecture),
		MemorySize:   jsii.Number(float64(cfg.MemorySize)),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(cfg.Timeout.Seconds())),
		Description:  jsii.String(defaults.FunctionDescription),
		Environment: &map[string]*string{
			constants.EnvQueueURL: stack.Queue.QueueUrl(),
		},
	})
	stack.Queue.GrantConsumeMessages(stack.Function)
	suppress(stack.Function, true, &cdknag.NagPackSuppression{
		Id:     jsii.String(constants.NagManagedPolicy),
		Reason: jsii.String("Managed Policy just allows Lambda access to CWL"),
		AppliesTo: &[]interface{}{
			fmt.Sprintf("Policy::arn:<AWS::Partition>:iam::aws:policy/%v", constants.LambdaBasicExecutionPolicy),
		},
	})

	stack.Role = awsiam.NewRole(root, jsii.String("appconfig_role"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String(constants.AppConfigServicePrincipal), nil),
	})
	stack.Function.GrantInvoke(stack.Role)
	suppress(stack.Role, true, &cdknag.NagPackSuppression{
		Id:     jsii.String(constants.NagWildcardPermissions),
		Reason: jsii.String("Wildcard applies to function aliases and version; policy is restricted to function by arn"),
		AppliesTo: &[]interface{}{
			&cdknag.RegexAppliesTo{
				Regex: jsii.String(`/^Resource::<tickfn[0-9A-F]+\.Arn>:\*$/g`),
			},
		},
	})

	stack.Extension = awsappconfig.NewExtension(root, jsii.String("tick_extn"), &awsappconfig.ExtensionProps{
		Actions: &[]awsappconfig.Action{
			awsappconfig.NewAction(&awsappconfig.ActionProps{
				ActionPoints: &[]awsappconfig.ActionPoint{
					awsappconfig.ActionPoint_AT_DEPLOYMENT_TICK,
				},
				EventDestination: awsappconfig.NewLambdaDestination(stack.Function),
				ExecutionRole:    stack.Role,
				Description:      jsii.String(defaults.ActionDescription),
			}),
		},
		Description:   jsii.String(defaults.ExtensionDescription),
		ExtensionName: jsii.String(cfg.ExtensionName),
	})

	awscdk.NewCfnOutput(root, jsii.String(constants.OutputQueue), &awscdk.CfnOutputProps{
		Value:       stack.Queue.QueueUrl(),
		Description: jsii.String(defaults.QueueOutputDescription),
	})
	awscdk.NewCfnOutput(root, jsii.String(constants.OutputPolicy), &awscdk.CfnOutputProps{
		Value:       stack.Policy.ManagedPolicyName(),
		Description: jsii.String(defaults.PolicyOutputDescription),
	})
	return stack, nil
}

// NewApp returns a new CDK application that runs the AWS Solutions
// compliance checks on every stack it contains
func NewApp(props *awscdk.AppProps, verbose bool) awscdk.App {
	app := awscdk.NewApp(props)
	awscdk.Aspects_Of(app).Add(cdknag.NewAwsSolutionsChecks(&cdknag.NagPackProps{
		Verbose: jsii.Bool(verbose),
	}), nil)
	return app
}

// Synth declares the stack in a new application and writes the cloud
// assembly to outDir. With an empty outDir the location is taken from
// the environment the cdk tool sets up. Returns the assembly directory.
func Synth(cfg Config, outDir string) (string, error) {
	props := &awscdk.AppProps{}
	if outDir != "" {
		props.Outdir = jsii.String(outDir)
	}
	app := NewApp(props, true)
	if _, err := New(app, cfg); err != nil {
		return "", trace.Wrap(err)
	}
	assembly := app.Synth(nil)
	return *assembly.Directory(), nil
}

func suppress(construct constructs.IConstruct, applyToChildren bool, suppressions ...*cdknag.NagPackSuppression) {
	cdknag.NagSuppressions_AddResourceSuppressions(construct, &suppressions, jsii.Bool(applyToChildren))
}

func architecture(name string) awslambda.Architecture {
	if name == ArchitectureX86_64 {
		return awslambda.Architecture_X86_64()
	}
	return awslambda.Architecture_ARM_64()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
