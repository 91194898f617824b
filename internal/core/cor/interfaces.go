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

// Package cor (Chain of Responsibility) is the small pipeline runtime every
// generation flow in the service is assembled from.
//
// A pipeline is a Chain of Commands sharing a single Context. The Context is a
// property bag that carries the request, the intermediate values produced by
// each stage and the errors recorded along the way. Commands read their input
// from a well-known key, write their output to another, and record failures
// under their own name so the caller can tell which stage broke.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Keys used to pipe the output of one command into the next one.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the state shared by every command of a single pipeline run.
type Context interface {
	// SetContext replaces the Go context used for cancellation and tracing.
	SetContext(ctx context.Context)

	// GetContext returns the Go context of the current stage.
	GetContext() context.Context

	Add(key string, value any) Context

	Get(key string) any

	Remove(key string)

	// AddError records a failure under the name of the command that produced it.
	AddError(key string, err error)

	// GetErrors returns every recorded error keyed by command name.
	GetErrors() map[string]error

	// Err returns the first recorded error, or nil.
	Err() error

	HasErrors() bool

	// AddTempFile registers a file to be deleted by Close.
	AddTempFile(file string)

	GetTempFiles() []string

	// Close releases the resources owned by the run.
	Close()
}

// Executable is anything that can act on a Context.
type Executable interface {
	Execute(context Context)
}

// Command is a single named and instrumented pipeline stage.
type Command interface {
	Executable

	GetName() string

	GetInputParam() string

	GetOutputParam() string

	// IsExecutable reports whether the Context holds what the command needs.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer

	GetMeter() metric.Meter

	GetSuccessCounter() metric.Int64Counter

	GetErrorCounter() metric.Int64Counter
}

// Chain is a Command that runs other commands in order.
type Chain interface {
	Command

	ContinueOnFailure(bool) Chain

	AddCommand(command Command) Chain
}
