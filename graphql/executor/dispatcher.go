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
	"sync"
	"sync/atomic"

	"github.com/vellumql/jit/concurrent"
	"github.com/vellumql/jit/graphql"
)

// A Task is one unit of work dispatched while walking a compiled plan: resolving a single field
// (ExecuteNodeTask) or polling a pending future.Future for a value a resolver has already returned
// (AsyncValueTask). Both live in the compiler package, which is plan-aware; this package only needs
// to be able to run them.
type Task interface {
	Run()
}

// DataLoaderCycle counts how many times data loaders have been dispatched during one execution. It
// lets concurrently-running tasks agree on which one of them is responsible for triggering the next
// round of batched loads, via Dispatcher.IncDataLoaderCycle's compare-and-swap.
type DataLoaderCycle int64

// A Dispatcher runs Tasks to completion, accumulating field errors, and arbitrates which goroutine
// (if any) dispatches pending DataLoaders. Three implementations are provided: a synchronous one used
// when the caller supplies no concurrent.Executor, and two backed by one, differing in whether
// root-level fields of the plan may run concurrently with one another (queries/subscriptions) or must
// run one at a time (mutations, per the GraphQL spec's serial-mutation-execution requirement).
type Dispatcher interface {
	// Dispatch submits task to run for the first time.
	Dispatch(task Task)

	// Yield is called by a Task that polled a pending future.Future: it has no value yet and will be
	// handed back to the Dispatcher later via Resume, once its Waker fires.
	Yield(task Task)

	// Resume re-submits a Task previously given to Yield, after its Waker fired.
	Resume(task Task)

	// AppendError records a field error and propagates null to the nearest nullable ancestor of
	// result, per the GraphQL specification's rules for errors and non-null.
	AppendError(err *graphql.Error, result *ResultNode)

	// DataLoaderCycle returns the current cycle counter.
	DataLoaderCycle() DataLoaderCycle

	// IncDataLoaderCycle attempts to advance the cycle counter to newCycle, succeeding only if no
	// other task already did so (i.e., the counter was still newCycle-1). Returns whether it won.
	IncDataLoaderCycle(newCycle DataLoaderCycle) bool

	// SerializesRootFields reports whether the caller driving the top-level object (the operation
	// root) must dispatch one field at a time, calling Wait between each, rather than dispatching
	// every root field up front.
	SerializesRootFields() bool

	// Wait blocks until every Task dispatched so far - and anything those Tasks went on to dispatch
	// or resume - has settled.
	Wait()

	// Errors returns the field errors accumulated so far.
	Errors() graphql.Errors
}

// dispatcherCore holds the bookkeeping shared by every Dispatcher implementation: the field error
// list (appended to from possibly many goroutines) and the DataLoader dispatch cycle counter.
type dispatcherCore struct {
	mu              sync.Mutex
	errs            graphql.Errors
	dataLoaderCycle int64
}

func (core *dispatcherCore) AppendError(err *graphql.Error, result *ResultNode) {
	core.mu.Lock()
	core.errs.Append(err)
	core.mu.Unlock()

	// A field error always nils its own ResultNode (the caller does that before calling us). If the
	// node - or any ancestor chained through non-null types - must not be null, the nil propagates up
	// to the nearest ancestor that is allowed to be null, per
	// https://graphql.github.io/graphql-spec/June2018/#sec-Errors-and-Non-Nullability.
	for result.IsNonNull() {
		parent := result.Parent
		if parent == nil {
			break
		}
		parent.Kind = ResultKindNil
		parent.Value = nil
		result = parent
	}
}

func (core *dispatcherCore) DataLoaderCycle() DataLoaderCycle {
	return DataLoaderCycle(atomic.LoadInt64(&core.dataLoaderCycle))
}

func (core *dispatcherCore) IncDataLoaderCycle(newCycle DataLoaderCycle) bool {
	return atomic.CompareAndSwapInt64(&core.dataLoaderCycle, int64(newCycle)-1, int64(newCycle))
}

func (core *dispatcherCore) Errors() graphql.Errors {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.errs
}

//===----------------------------------------------------------------------------------------====//
// Blocking dispatcher
//===----------------------------------------------------------------------------------------====//

// blockingDispatcher runs every Task on the calling goroutine, in FIFO order, blocking until there is
// nothing left to run - including Tasks yielded while waiting on a future.Future. It is used whenever
// the caller supplies no concurrent.Executor.
type blockingDispatcher struct {
	dispatcherCore

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	pending map[Task]bool
}

// NewBlockingDispatcher creates a Dispatcher that never runs two Tasks concurrently.
func NewBlockingDispatcher() Dispatcher {
	d := &blockingDispatcher{pending: map[Task]bool{}}
	d.cond = sync.NewCond(&d.mu)
	return d
}

func (d *blockingDispatcher) Dispatch(task Task) {
	d.mu.Lock()
	d.queue = append(d.queue, task)
	d.cond.Signal()
	d.mu.Unlock()

	d.drain()
}

func (d *blockingDispatcher) Yield(task Task) {
	d.mu.Lock()
	d.pending[task] = true
	d.mu.Unlock()
}

func (d *blockingDispatcher) Resume(task Task) {
	d.mu.Lock()
	delete(d.pending, task)
	d.queue = append(d.queue, task)
	d.cond.Signal()
	d.mu.Unlock()
}

// drain runs queued Tasks until none are queued and none are pending a Resume. Tasks are free to
// Dispatch/Yield/Resume further Tasks while running - drain simply keeps consuming the queue they
// feed until it empties out with nothing left outstanding.
func (d *blockingDispatcher) drain() {
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && len(d.pending) > 0 {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		task := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		task.Run()
	}
}

func (d *blockingDispatcher) SerializesRootFields() bool {
	return true
}

func (d *blockingDispatcher) Wait() {
	d.drain()
}

//===----------------------------------------------------------------------------------------====//
// Pool-backed dispatchers
//===----------------------------------------------------------------------------------------====//

// poolDispatcher submits every Task to a concurrent.Executor, tracking outstanding work with a
// WaitGroup so Wait can block until it is safe to read the result tree.
type poolDispatcher struct {
	dispatcherCore

	runner   concurrent.Executor
	outstanding sync.WaitGroup
	serial   bool
}

// NewSerialDispatcher creates a Dispatcher backed by runner that only ever has one root-level field
// of the plan in flight at a time, as the GraphQL specification requires for mutation operations.
// Fields nested under a root field may still run concurrently with one another.
func NewSerialDispatcher(runner concurrent.Executor) Dispatcher {
	return &poolDispatcher{runner: runner, serial: true}
}

// NewParallelDispatcher creates a Dispatcher backed by runner with no such restriction, used for
// query and subscription operations.
func NewParallelDispatcher(runner concurrent.Executor) Dispatcher {
	return &poolDispatcher{runner: runner}
}

func (d *poolDispatcher) submit(task Task) {
	d.outstanding.Add(1)
	if _, err := d.runner.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		defer d.outstanding.Done()
		task.Run()
		return nil, nil
	})); err != nil {
		// The runner rejected the submission (e.g. already shutting down); run it inline rather than
		// silently dropping the field.
		defer d.outstanding.Done()
		task.Run()
	}
}

func (d *poolDispatcher) Dispatch(task Task) {
	d.submit(task)
}

func (d *poolDispatcher) Yield(task Task) {
	// Nothing to do: the Task's own goroutine simply returns. It is handed back via Resume once its
	// Waker fires.
}

func (d *poolDispatcher) Resume(task Task) {
	d.submit(task)
}

func (d *poolDispatcher) SerializesRootFields() bool {
	return d.serial
}

func (d *poolDispatcher) Wait() {
	d.outstanding.Wait()
}
