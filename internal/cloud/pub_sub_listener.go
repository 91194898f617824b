// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloud

import (
	"context"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RunIDParam is the pipeline context key of the run identifier.
const RunIDParam = "__RUN_ID__"

// PubSubListener feeds every message of a subscription into a command,
// typically a workflow chain. The message payload is placed under cor.CtxIn.
// Messages are acked when the command leaves no error, nacked otherwise.
type PubSubListener struct {
	subscription *pubsub.Subscription
	command      cor.Command
}

// NewPubSubListener binds command to the subscription. A nil command can be
// set later with SetCommand.
func NewPubSubListener(client *pubsub.Client, subscriptionID string, command cor.Command) *PubSubListener {
	return &PubSubListener{
		subscription: client.Subscription(subscriptionID),
		command:      command,
	}
}

// SetCommand binds the command when none was given at construction.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Handle runs the command for one payload and reports whether it succeeded.
func (m *PubSubListener) Handle(ctx context.Context, data []byte) bool {
	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(RunIDParam, uuid.NewString())
	chainCtx.Add(cor.CtxIn, string(data))

	m.command.Execute(chainCtx)

	for name, err := range chainCtx.GetErrors() {
		slog.ErrorContext(ctx, "error executing chain", "command", name, "error", err)
	}
	return !chainCtx.HasErrors()
}

// Listen receives messages in the background until ctx is cancelled.
func (m *PubSubListener) Listen(ctx context.Context) {
	slog.InfoContext(ctx, "listening", "subscription", m.subscription.ID())

	go func() {
		tracer := otel.Tracer("message-listener")

		err := m.subscription.Receive(ctx, func(msgCtx context.Context, msg *pubsub.Message) {
			spanCtx, span := tracer.Start(msgCtx, "receive-message")
			defer span.End()
			span.SetAttributes(attribute.String("message_id", msg.ID))

			if m.Handle(spanCtx, msg.Data) {
				span.SetStatus(codes.Ok, "")
				msg.Ack()
				return
			}
			span.SetStatus(codes.Error, "failed")
			msg.Nack()
		})
		if err != nil {
			slog.ErrorContext(ctx, "error receiving messages", "subscription", m.subscription.ID(), "error", err)
		}
	}()
}
