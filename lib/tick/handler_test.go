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
	"testing"

	"github.com/gravitational/appconfig-tick/lib/constants"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gravitational/trace"
	"gopkg.in/check.v1"
)

func TestTick(t *testing.T) { check.TestingT(t) }

type TickSuite struct {
	queue   *mockQueue
	handler *Handler
}

var _ = check.Suite(&TickSuite{})

func (s *TickSuite) SetUpTest(c *check.C) {
	s.queue = newMockQueue("https://sqs.us-west-2.amazonaws.com/123456789012/queue-1")
	var err error
	s.handler, err = New(Config{
		QueueURL: s.queue.url,
		Queue:    s.queue,
	})
	c.Assert(err, check.IsNil)
}

func (s *TickSuite) TestEmptyQueueContinues(c *check.C) {
	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(resp, check.DeepEquals, &Response{Directive: constants.DirectiveContinue})
	c.Assert(s.queue.deleted, check.HasLen, 0)

	out, err := json.Marshal(resp)
	c.Assert(err, check.IsNil)
	c.Assert(string(out), check.Equals, `{"Directive":"CONTINUE"}`)
}

func (s *TickSuite) TestRollsBackWithReason(c *check.C) {
	s.queue.push("receipt-1", `{"reason": "latency spike"}`)

	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(resp, check.DeepEquals, &Response{
		Directive:   constants.DirectiveRollBack,
		Description: "latency spike",
	})
	c.Assert(s.queue.deleted, check.DeepEquals, []string{"receipt-1"})
	c.Assert(s.queue.messages, check.HasLen, 0)

	out, err := json.Marshal(resp)
	c.Assert(err, check.IsNil)
	c.Assert(string(out), check.Equals, `{"Directive":"ROLL_BACK","Description":"latency spike"}`)
}

func (s *TickSuite) TestUnparsableBodies(c *check.C) {
	bodies := []string{
		"not json",
		`{"status": "degraded"}`,
		`{"reason": 42}`,
		`{"reason": ""}`,
		`["reason"]`,
		"null",
		"",
	}
	for _, body := range bodies {
		comment := check.Commentf("body %q", body)
		s.queue.push("receipt", body)
		resp, err := s.handler.Handle(context.TODO(), nil)
		c.Assert(err, check.IsNil, comment)
		c.Assert(resp, check.DeepEquals, RollBack(constants.UnparsableReason), comment)
	}
}

func (s *TickSuite) TestDeletesAllReceivedMessages(c *check.C) {
	s.queue.batch = 10
	s.queue.push("receipt-1", `{"reason": "first"}`)
	s.queue.push("receipt-2", `{"reason": "second"}`)
	s.queue.push("receipt-3", "garbage")

	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(resp, check.DeepEquals, RollBack("first"))
	c.Assert(s.queue.deleted, check.DeepEquals, []string{"receipt-1", "receipt-2", "receipt-3"})
}

func (s *TickSuite) TestIgnoresDeleteFailures(c *check.C) {
	s.queue.batch = 10
	s.queue.deleteErr = awserr.New(sqs.ErrCodeReceiptHandleIsInvalid, "receipt handle is invalid", nil)
	s.queue.push("receipt-1", `{"reason": "error rate"}`)
	s.queue.push("receipt-2", `{"reason": "latency"}`)

	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(resp, check.DeepEquals, RollBack("error rate"))
	// every message is attempted even if an earlier delete fails
	c.Assert(s.queue.deleteAttempts, check.Equals, 2)
}

func (s *TickSuite) TestContinuesOnEmptiedQueue(c *check.C) {
	s.queue.push("receipt-1", `{"reason": "latency spike"}`)
	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(err, check.IsNil)
	c.Assert(resp.IsRollBack(), check.Equals, true)

	for i := 0; i < 2; i++ {
		resp, err := s.handler.Handle(context.TODO(), nil)
		c.Assert(err, check.IsNil)
		c.Assert(resp, check.DeepEquals, Continue())
	}
}

func (s *TickSuite) TestReceiveFailure(c *check.C) {
	s.queue.receiveErr = awserr.New(sqs.ErrCodeQueueDoesNotExist, "queue does not exist", nil)

	resp, err := s.handler.Handle(context.TODO(), nil)
	c.Assert(resp, check.IsNil)
	c.Assert(trace.IsNotFound(err), check.Equals, true, check.Commentf("%v", err))
}

func (s *TickSuite) TestReceivesOnceWithoutWait(c *check.C) {
	_, err := s.handler.Handle(context.TODO(), json.RawMessage(`{"InvocationId": "invocation-1", "Type": "AtDeploymentTick"}`))
	c.Assert(err, check.IsNil)
	c.Assert(s.queue.received, check.HasLen, 1)
	input := s.queue.received[0]
	c.Assert(aws.StringValue(input.QueueUrl), check.Equals, s.queue.url)
	c.Assert(input.WaitTimeSeconds, check.IsNil)
	c.Assert(input.MaxNumberOfMessages, check.IsNil)
}

func (s *TickSuite) TestRequiresQueueURL(c *check.C) {
	_, err := New(Config{Queue: s.queue})
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
}

func (s *TickSuite) TestDecodesEvent(c *check.C) {
	const payload = `{
  "InvocationId": "7d5bbd8a",
  "Type": "AtDeploymentTick",
  "Parameters": {"threshold": "5"},
  "Application": {"Id": "abc1234"},
  "Environment": {"Id": "env5678"},
  "ConfigurationProfile": {"Id": "prof9012", "Name": "flags"},
  "DeploymentNumber": 3,
  "ConfigurationVersion": "2"
}`
	var event Event
	c.Assert(json.Unmarshal([]byte(payload), &event), check.IsNil)
	c.Assert(event.Parameters, check.DeepEquals, map[string]string{"threshold": "5"})
	c.Assert(event.ConfigurationProfile, check.DeepEquals, Resource{ID: "prof9012", Name: "flags"})
	c.Assert(event.Fields()["deployment"], check.Equals, 3)
	c.Assert(event.Fields()["type"], check.Equals, "AtDeploymentTick")
}

func (s *TickSuite) TestAnswersAnyPayload(c *check.C) {
	invoker := lambda.NewHandler(s.handler.Handle)
	payloads := []string{
		`{"InvocationId": "7d5bbd8a", "DeploymentNumber": 3}`,
		`null`,
		`{"DeploymentNumber": "3"}`,
		`{"Parameters": {"threshold": 5}}`,
		`"tick"`,
		`[1, 2]`,
	}
	for _, payload := range payloads {
		comment := check.Commentf("payload %s", payload)
		out, err := invoker.Invoke(context.TODO(), []byte(payload))
		c.Assert(err, check.IsNil, comment)
		var resp Response
		c.Assert(json.Unmarshal(out, &resp), check.IsNil, comment)
		c.Assert(resp, check.DeepEquals, Response{Directive: constants.DirectiveContinue}, comment)
	}

	s.queue.push("receipt-1", `{"reason": "latency spike"}`)
	out, err := invoker.Invoke(context.TODO(), []byte(`{"DeploymentNumber": "3"}`))
	c.Assert(err, check.IsNil)
	var resp Response
	c.Assert(json.Unmarshal(out, &resp), check.IsNil)
	c.Assert(resp, check.DeepEquals, Response{Directive: constants.DirectiveRollBack, Description: "latency spike"})
	c.Assert(s.queue.messages, check.HasLen, 0)
}

func (s *TickSuite) TestParseEvent(c *check.C) {
	event, err := ParseEvent(nil)
	c.Assert(err, check.IsNil)
	c.Assert(event.Fields(), check.HasLen, 0)

	_, err = ParseEvent([]byte(`{"DeploymentNumber": "3"}`))
	c.Assert(err, check.NotNil)
}

func newMockQueue(url string) *mockQueue {
	return &mockQueue{
		url:   url,
		batch: 1,
	}
}

type message struct {
	receipt string
	body    string
}

// mockQueue is an in-memory queue. Received messages stay on the queue
// until deleted.
type mockQueue struct {
	url        string
	batch      int
	messages   []message
	received   []*sqs.ReceiveMessageInput
	deleted    []string
	receiveErr error
	deleteErr  error

	deleteAttempts int
}

func (q *mockQueue) push(receipt, body string) {
	q.messages = append(q.messages, message{receipt: receipt, body: body})
}

func (q *mockQueue) ReceiveMessageWithContext(ctx aws.Context, i *sqs.ReceiveMessageInput, opts ...request.Option) (*sqs.ReceiveMessageOutput, error) {
	q.received = append(q.received, i)
	if q.receiveErr != nil {
		return nil, q.receiveErr
	}
	out := &sqs.ReceiveMessageOutput{}
	for idx, m := range q.messages {
		if idx == q.batch {
			break
		}
		out.Messages = append(out.Messages, &sqs.Message{
			MessageId:     aws.String(m.receipt),
			Body:          aws.String(m.body),
			ReceiptHandle: aws.String(m.receipt),
		})
	}
	return out, nil
}

func (q *mockQueue) DeleteMessageWithContext(ctx aws.Context, i *sqs.DeleteMessageInput, opts ...request.Option) (*sqs.DeleteMessageOutput, error) {
	q.deleteAttempts++
	if q.deleteErr != nil {
		return nil, q.deleteErr
	}
	receipt := aws.StringValue(i.ReceiptHandle)
	for idx, m := range q.messages {
		if m.receipt == receipt {
			q.messages = append(q.messages[:idx], q.messages[idx+1:]...)
			break
		}
	}
	q.deleted = append(q.deleted, receipt)
	return &sqs.DeleteMessageOutput{}, nil
}
