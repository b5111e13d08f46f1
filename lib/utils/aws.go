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

package utils

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gravitational/trace"
)

// NewSession returns a new AWS session for the specified region.
// With an empty region the region is resolved from the environment.
func NewSession(region string) (*session.Session, error) {
	config := aws.NewConfig()
	if region != "" {
		config = config.WithRegion(region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *config,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return sess, nil
}

// ConvertError converts errors specific to AWS to trace-compatible error
func ConvertError(err error) error {
	if err == nil {
		return nil
	}
	if awsErr, ok := err.(awserr.Error); ok {
		switch awsErr.Code() {
		case sqs.ErrCodeQueueDoesNotExist:
			return trace.NotFound("%v", awsErr.Error())
		case sqs.ErrCodeReceiptHandleIsInvalid, sqs.ErrCodeInvalidMessageContents,
			sqs.ErrCodeInvalidIdFormat:
			return trace.BadParameter("%v", awsErr.Error())
		case "AccessDenied", "AccessDeniedException":
			return trace.AccessDenied("%v", awsErr.Error())
		case request.CanceledErrorCode, "RequestError":
			return trace.ConnectionProblem(awsErr, "%v", awsErr.Message())
		default:
			return trace.Wrap(err)
		}
	}
	return trace.Wrap(err)
}
