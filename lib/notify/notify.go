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

// Package notify publishes failure notifications to the queue watched by
// the deployment tick handler. Any message on the queue rolls back the
// deployment in progress.
package notify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Sender is the subset of SQS used to publish notifications
type Sender interface {
	SendMessageWithContext(aws.Context, *sqs.SendMessageInput, ...request.Option) (*sqs.SendMessageOutput, error)
}

// Message is the notification format understood by the tick handler
type Message struct {
	// Reason is reported to AppConfig as the roll back description
	Reason string `json:"reason"`
}

// Config is the publisher configuration
type Config struct {
	// QueueURL is the URL of the notification queue
	QueueURL string
	// Region is an optional AWS region
	Region string
	// Queue is an optional SQS client
	Queue Sender
}

// CheckAndSetDefaults checks and sets default values
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.QueueURL == "" {
		return trace.BadParameter("missing parameter QueueURL")
	}
	if cfg.Queue == nil {
		sess, err := utils.NewSession(cfg.Region)
		if err != nil {
			return trace.Wrap(err)
		}
		cfg.Queue = sqs.New(sess)
	}
	return nil
}

// Publisher sends failure notifications
type Publisher struct {
	Config
	*log.Entry
}

// New returns a new publisher
func New(cfg Config) (*Publisher, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Publisher{
		Config: cfg,
		Entry: log.WithFields(log.Fields{
			trace.Component: constants.ComponentNotify,
			"queue":         cfg.QueueURL,
		}),
	}, nil
}

// Publish sends a notification with the specified reason
// and returns the ID of the queued message
func (p *Publisher) Publish(ctx context.Context, reason string) (messageID string, err error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", trace.BadParameter("notification reason can't be empty")
	}
	body, err := json.Marshal(Message{Reason: reason})
	if err != nil {
		return "", trace.Wrap(err)
	}
	out, err := p.Queue.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return "", trace.Wrap(utils.ConvertError(err), "failed to send to %v", p.QueueURL)
	}
	messageID = aws.StringValue(out.MessageId)
	p.WithField("message", messageID).Infof("Published notification: %v.", reason)
	return messageID, nil
}
