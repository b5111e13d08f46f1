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

package policy

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gravitational/trace"
)

// Service is the AWS service namespace of an action (sqs, lambda etc)
type Service string

const (
	// SQS is the Simple Queue Service namespace
	SQS Service = "sqs"
	// Lambda is the Lambda service namespace
	Lambda Service = "lambda"
)

// Action defines a single AWS service action
type Action struct {
	Service Service
	Name    string
}

var (
	// PublisherActions lists the actions required to post notifications
	PublisherActions = Actions{
		{SQS, "SendMessage"},
	}

	// ConsumerActions lists the actions the tick function requires
	// on the notification queue
	ConsumerActions = Actions{
		{SQS, "ReceiveMessage"},
		{SQS, "DeleteMessage"},
		{SQS, "ChangeMessageVisibility"},
		{SQS, "GetQueueAttributes"},
		{SQS, "GetQueueUrl"},
	}

	// InvokerActions lists the actions AppConfig requires on the tick function
	InvokerActions = Actions{
		{Lambda, "InvokeFunction"},
	}
)

// ParseAction parses the provided string of format "sqs:ActionName" into an Action object
func ParseAction(action string) (*Action, error) {
	parts := strings.Split(action, ":")
	if len(parts) != 2 || parts[1] == "" {
		return nil, trace.BadParameter(
			`invalid action format %q, expected "sqs:APIName" or "lambda:APIName"`, action)
	}
	service := Service(parts[0])
	switch service {
	case SQS, Lambda:
	default:
		return nil, trace.BadParameter("unsupported AWS service %q", parts[0])
	}
	return &Action{Service: service, Name: parts[1]}, nil
}

// String returns the action in IAM notation
func (r Action) String() string {
	return fmt.Sprintf("%v:%v", r.Service, r.Name)
}

// MarshalJSON formats this Action value as JSON
func (r Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON reads an Action value from JSON
func (r *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return trace.Wrap(err)
	}
	action, err := ParseAction(s)
	if err != nil {
		return trace.Wrap(err)
	}
	*r = *action
	return nil
}

// Actions is a list of resource actions
type Actions []Action

// Strings returns the actions in IAM notation
func (r Actions) Strings() []string {
	out := make([]string, 0, len(r))
	for _, action := range r {
		out = append(out, action.String())
	}
	return out
}

// AsPolicy formats the specified set of actions as an AWS policy document
// granting them on the given resources. Actions are grouped into one
// statement per service.
func (r Actions) AsPolicy(policyVersion string, resources ...string) (string, error) {
	if policyVersion == "" {
		return "", trace.BadParameter("invalid policy version")
	}
	if len(resources) == 0 {
		return "", trace.BadParameter("at least one resource is required")
	}
	doc := Document{
		Version: policyVersion,
	}
	rules := map[Service][]Action{}
	var services []Service
	for _, action := range r {
		if _, ok := rules[action.Service]; !ok {
			services = append(services, action.Service)
		}
		rules[action.Service] = append(rules[action.Service], action)
	}
	sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })
	for _, service := range services {
		doc.Statement = append(doc.Statement, Statement{
			Effect:   "Allow",
			Action:   rules[service],
			Resource: resources,
		})
	}
	jsonBytes, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", trace.Wrap(err)
	}
	return string(jsonBytes), nil
}

// Document is an IAM policy document
type Document struct {
	Version   string
	Statement []Statement
}

// Statement is a single IAM policy statement
type Statement struct {
	Effect   string
	Action   []Action
	Resource []string
}
