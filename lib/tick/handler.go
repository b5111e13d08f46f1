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
	"context"
	"encoding/json"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/utils"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Handler answers AppConfig deployment ticks. A deployment continues
// while the notification queue is empty and is rolled back as soon as
// any notification shows up.
type Handler struct {
	// Config is the handler configuration
	Config
	*log.Entry
}

// Config is the tick handler configuration
type Config struct {
	// QueueURL is the URL of the notification queue
	QueueURL string
	// Region is an optional AWS region, resolved from the environment if empty
	Region string
	// Queue is an optional SQS client
	Queue SQS
}

// CheckAndSetDefaults checks and sets default values
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.QueueURL == "" {
		return trace.BadParameter("missing parameter QueueURL, set %v", constants.EnvQueueURL)
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

// New returns a new tick handler
func New(cfg Config) (*Handler, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Handler{
		Config: cfg,
		Entry: log.WithFields(log.Fields{
			trace.Component: constants.ComponentTick,
			"queue":         cfg.QueueURL,
		}),
	}, nil
}

// Handle processes a single deployment tick.
//
// It receives from the queue once. An empty receive continues the
// deployment, otherwise the reason of the first notification is returned
// with a roll back directive and all received notifications are deleted.
// Only a failure to receive is returned as an error.
//
// The payload is decoded only to annotate logs, a payload of any
// shape still gets a directive.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (*Response, error) {
	logger := h.Entry
	if event, err := ParseEvent(payload); err != nil {
		logger.WithError(err).Debug("Failed to decode invocation payload.")
	} else {
		logger = logger.WithFields(event.Fields())
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.WithField("request", lc.AwsRequestID)
	}
	out, err := h.Queue.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl: aws.String(h.QueueURL),
	})
	if err != nil {
		return nil, trace.Wrap(utils.ConvertError(err), "failed to receive from %v", h.QueueURL)
	}
	logger.Debugf("SQS response was: %v.", out)
	if len(out.Messages) == 0 {
		logger.Info("No messages in queue, continuing deployment.")
		return Continue(), nil
	}

	logger.Info("Failure message found on queue, rolling back.")
	reason, err := ParseReason(aws.StringValue(out.Messages[0].Body))
	if err != nil {
		logger.WithError(err).Warn("Failed to parse message body.")
		reason = constants.UnparsableReason
	}
	h.deleteMessages(ctx, logger, out.Messages)
	return RollBack(reason), nil
}

// deleteMessages deletes the received messages. Failures are ignored:
// messages expire shortly anyway and must not prevent the response.
func (h *Handler) deleteMessages(ctx context.Context, logger *log.Entry, messages []*sqs.Message) {
	for _, m := range messages {
		_, err := h.Queue.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(h.QueueURL),
			ReceiptHandle: m.ReceiptHandle,
		})
		if err != nil {
			logger.Debugf("Failed to delete message %v: %v.",
				aws.StringValue(m.MessageId), trace.DebugReport(err))
		}
	}
}
