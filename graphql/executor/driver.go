/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package executor

import (
	"github.com/vellumql/jit/concurrent"
	"github.com/vellumql/jit/graphql"
)

// executor runs a prepared ExecutionContext to completion and reports the outcome on a channel.
// PreparedOperation.Execute picks one of the three implementations below based on whether the
// caller supplied a concurrent.Executor and, if so, whether the operation is a mutation.
type executor interface {
	Run(ctx *ExecutionContext) <-chan ExecutionResult
}

// dispatcherExecutor adapts a Dispatcher constructor to the executor interface: it builds a fresh
// Dispatcher for the run, walks the operation's root selection set with it, waits for every
// dispatched Task to settle and assembles the ExecutionResult.
type dispatcherExecutor struct {
	newDispatcher func() Dispatcher
}

// newBlockingExecutor creates an executor that runs every field on the calling goroutine. Used when
// ExecuteParams.Runner is nil.
func newBlockingExecutor() executor {
	return dispatcherExecutor{newDispatcher: func() Dispatcher {
		return NewBlockingDispatcher()
	}}
}

// newSerialExecutor creates an executor for mutation operations: root fields run one at a time, on
// runner, per https://graphql.github.io/graphql-spec/June2018/#sec-Mutation.
func newSerialExecutor(runner concurrent.Executor) executor {
	return dispatcherExecutor{newDispatcher: func() Dispatcher {
		return NewSerialDispatcher(runner)
	}}
}

// newParallelExecutor creates an executor for query and subscription operations: root fields may
// run concurrently with one another on runner.
func newParallelExecutor(runner concurrent.Executor) executor {
	return dispatcherExecutor{newDispatcher: func() Dispatcher {
		return NewParallelDispatcher(runner)
	}}
}

// Run implements executor.
func (e dispatcherExecutor) Run(ctx *ExecutionContext) <-chan ExecutionResult {
	resultChan := make(chan ExecutionResult, 1)

	dispatcher := e.newDispatcher()

	data, err := collectAndDispatchRootTasks(ctx, dispatcher)
	if err != nil {
		resultChan <- ExecutionResult{Errors: graphql.ErrorsOf(err)}
		return resultChan
	}

	dispatcher.Wait()

	resultChan <- ExecutionResult{
		Data:   data,
		Errors: dispatcher.Errors(),
	}
	return resultChan
}
