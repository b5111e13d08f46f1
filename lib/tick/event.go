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

package tick

import (
	"encoding/json"

	"github.com/gravitational/appconfig-tick/lib/constants"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Event is the payload AppConfig sends to an extension action.
// The tick decision does not depend on it, it is only logged.
type Event struct {
	// InvocationID identifies this action invocation
	InvocationID string `json:"InvocationId"`
	// Type is the action point, e.g. AtDeploymentTick
	Type string `json:"Type"`
	// Parameters are the extension association parameters
	Parameters map[string]string `json:"Parameters,omitempty"`
	// Application is the AppConfig application being deployed
	Application Resource `json:"Application"`
	// Environment is the target environment of the deployment
	Environment Resource `json:"Environment"`
	// ConfigurationProfile is the deployed configuration profile
	ConfigurationProfile Resource `json:"ConfigurationProfile"`
	// DeploymentNumber is the sequence number of the deployment
	DeploymentNumber int `json:"DeploymentNumber"`
	// Description is the deployment description
	Description string `json:"Description,omitempty"`
	// ConfigurationVersion is the deployed configuration version
	ConfigurationVersion string `json:"ConfigurationVersion,omitempty"`
}

// Resource references an AppConfig resource in an Event
type Resource struct {
	// ID is the resource ID
	ID string `json:"Id"`
	// Name is the resource name, if provided
	Name string `json:"Name,omitempty"`
}

// ParseEvent decodes an invocation payload. An empty payload
// decodes into an empty event.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if len(payload) == 0 {
		return &event, nil
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, trace.Wrap(err)
	}
	return &event, nil
}

// Fields returns the event attributes worth logging
func (e Event) Fields() logrus.Fields {
	fields := logrus.Fields{}
	if e.InvocationID != "" {
		fields["invocation"] = e.InvocationID
	}
	if e.Type != "" {
		fields["type"] = e.Type
	}
	if e.Application.ID != "" {
		fields["application"] = e.Application.ID
	}
	if e.Environment.ID != "" {
		fields["environment"] = e.Environment.ID
	}
	if e.ConfigurationProfile.ID != "" {
		fields["profile"] = e.ConfigurationProfile.ID
	}
	if e.DeploymentNumber != 0 {
		fields["deployment"] = e.DeploymentNumber
	}
	return fields
}

// Response is the directive returned to AppConfig
type Response struct {
	// Directive is either CONTINUE or ROLL_BACK
	Directive string `json:"Directive"`
	// Description explains a roll back
	Description string `json:"Description,omitempty"`
}

// Continue returns the directive to proceed with the deployment
func Continue() *Response {
	return &Response{Directive: constants.DirectiveContinue}
}

// RollBack returns the directive to roll the deployment back
// with the specified reason
func RollBack(reason string) *Response {
	return &Response{
		Directive:   constants.DirectiveRollBack,
		Description: reason,
	}
}

// IsRollBack returns true if this is a roll back directive
func (r Response) IsRollBack() bool {
	return r.Directive == constants.DirectiveRollBack
}

// ParseReason extracts the reason field from a notification body.
// The body is expected to be a JSON object with a non-empty
// string reason field.
func ParseReason(body string) (string, error) {
	var details map[string]interface{}
	if err := json.Unmarshal([]byte(body), &details); err != nil {
		return "", trace.Wrap(err)
	}
	reason, ok := details["reason"].(string)
	// an empty reason is reported as unparsable, a roll back always carries a description
	if !ok || reason == "" {
		return "", trace.BadParameter("message has no reason")
	}
	return reason, nil
}
