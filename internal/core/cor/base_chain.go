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

package cor

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BaseChain runs its commands one after the other in a single span.
//
// After each command the value stored under CtxOut becomes the CtxIn of the
// next command. Commands that publish under a named output parameter are not
// affected by this piping.
//
// By default the chain stops at the first command that records an error.
// Commands whose IsExecutable returns false are skipped without error; this
// is how optional stages (e.g. transcription without URLs) are expressed.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool
	commands          []Command
}

func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// Commands returns the names of the chained commands in execution order.
func (c *BaseChain) Commands() []string {
	names := make([]string, 0, len(c.commands))
	for _, command := range c.commands {
		names = append(names, command.GetName())
	}
	return names
}

// IsExecutable only requires a Go context; each command checks its own input.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context != nil && context.GetContext() != nil
}

func (c *BaseChain) Execute(chCtx Context) {
	parentCtx := chCtx.GetContext()
	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer chainSpan.End()
	defer chCtx.SetContext(parentCtx)

	for _, command := range c.commands {
		if chCtx.HasErrors() && !c.continueOnFailure {
			slog.DebugContext(outerCtx, "chain stopped", "chain", c.GetName(), "skipped", command.GetName())
			break
		}

		commandCtx, commandSpan := c.Tracer.Start(outerCtx, command.GetName())
		chCtx.SetContext(commandCtx)

		if command.IsExecutable(chCtx) {
			command.Execute(chCtx)
			if err, failed := chCtx.GetErrors()[command.GetName()]; failed {
				commandSpan.RecordError(err)
				commandSpan.SetStatus(codes.Error, err.Error())
			} else {
				commandSpan.SetStatus(codes.Ok, "")
			}
		} else {
			commandSpan.SetAttributes(attribute.Bool("skipped", true))
			slog.DebugContext(commandCtx, "command skipped", "command", command.GetName())
		}

		chCtx.SetContext(outerCtx)
		commandSpan.End()

		out := chCtx.Get(CtxOut)
		chCtx.Remove(CtxIn)
		if out != nil {
			chCtx.Add(CtxIn, out)
		}
		chCtx.Remove(CtxOut)
	}

	if chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Error, "chain failed")
		c.Fail(chCtx, chCtx.Err())
		return
	}
	chainSpan.SetStatus(codes.Ok, "")
	c.Succeed(chCtx)
}
