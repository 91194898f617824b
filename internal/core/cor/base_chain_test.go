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

package cor_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends its name to a shared log and optionally fails.
type recorder struct {
	cor.BaseCommand
	log  *[]string
	err  error
	out  any
	need bool
}

func newRecorder(name string, log *[]string) *recorder {
	return &recorder{BaseCommand: *cor.NewBaseCommand(name), log: log}
}

func (r *recorder) IsExecutable(context cor.Context) bool {
	if r.need {
		return r.BaseCommand.IsExecutable(context)
	}
	return true
}

func (r *recorder) Execute(context cor.Context) {
	*r.log = append(*r.log, r.GetName())
	if r.err != nil {
		r.Fail(context, r.err)
		return
	}
	if r.out != nil {
		context.Add(r.GetOutputParam(), r.out)
	}
	r.Succeed(context)
}

func TestChainRunsCommandsInOrder(t *testing.T) {
	var log []string
	chain := cor.NewBaseChain("ordered")
	chain.AddCommand(newRecorder("a", &log)).
		AddCommand(newRecorder("b", &log)).
		AddCommand(newRecorder("c", &log))

	ctx := cor.NewBaseContext()
	chain.Execute(ctx)

	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.Equal(t, []string{"a", "b", "c"}, chain.Commands())
	assert.False(t, ctx.HasErrors())
}

func TestChainStopsOnFirstError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	failing := newRecorder("b", &log)
	failing.err = boom

	chain := cor.NewBaseChain("stopping")
	chain.AddCommand(newRecorder("a", &log)).
		AddCommand(failing).
		AddCommand(newRecorder("c", &log))

	ctx := cor.NewBaseContext()
	chain.Execute(ctx)

	assert.Equal(t, []string{"a", "b"}, log)
	assert.ErrorIs(t, ctx.Err(), boom)
	assert.Contains(t, ctx.GetErrors(), "b")
}

func TestChainContinueOnFailure(t *testing.T) {
	var log []string
	failing := newRecorder("a", &log)
	failing.err = errors.New("first")
	second := newRecorder("b", &log)
	second.err = errors.New("second")

	chain := cor.NewBaseChain("tolerant")
	chain.ContinueOnFailure(true)
	chain.AddCommand(failing).AddCommand(second).AddCommand(newRecorder("c", &log))

	ctx := cor.NewBaseContext()
	chain.Execute(ctx)

	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.EqualError(t, ctx.Err(), "first")
}

func TestChainPipesOutputToNextInput(t *testing.T) {
	var log []string
	producer := newRecorder("producer", &log)
	producer.out = "payload"
	consumer := newRecorder("consumer", &log)
	consumer.need = true

	chain := cor.NewBaseChain("piping")
	chain.AddCommand(producer).AddCommand(consumer)

	ctx := cor.NewBaseContext()
	chain.Execute(ctx)

	assert.Equal(t, []string{"producer", "consumer"}, log)
	assert.Nil(t, ctx.Get(cor.CtxOut))
}

func TestChainSkipsCommandWithoutInput(t *testing.T) {
	var log []string
	optional := newRecorder("optional", &log)
	optional.need = true
	optional.InputParamName = "missing"

	chain := cor.NewBaseChain("skipping")
	chain.AddCommand(optional).AddCommand(newRecorder("after", &log))

	ctx := cor.NewBaseContext()
	chain.Execute(ctx)

	assert.Equal(t, []string{"after"}, log)
	assert.False(t, ctx.HasErrors())
}

func TestContextValueAndClose(t *testing.T) {
	ctx := cor.NewBaseContext()
	ctx.Add("count", 3)

	n, ok := cor.Value[int](ctx, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = cor.Value[string](ctx, "count")
	assert.False(t, ok)

	file := filepath.Join(t.TempDir(), "scratch.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	ctx.AddTempFile(file)
	ctx.Close()

	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}
