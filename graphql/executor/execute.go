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
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/vellumql/jit/concurrent/future"
	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
	values "github.com/vellumql/jit/graphql/internal/value"
	"github.com/vellumql/jit/iterator"
)

// parentFieldType returns the concrete Object type under which node.Field was planned, used only
// to compose error messages (e.g. "Cannot return null for non-nullable field X.y.").
func parentFieldType(ctx *ExecutionContext, node *PlanNode) *graphql.Object {
	parent := node.Parent
	if parent == nil || parent.IsRoot() {
		return ctx.Operation().RootType()
	}

	if obj, ok := graphql.NamedTypeOf(parent.Field.Type()).(*graphql.Object); ok {
		return obj
	}

	// parent.Field's type is an abstract type: node lives under one of the concrete child plans keyed
	// by runtime type in parent.Children. Find it.
	for concreteType, children := range parent.Children {
		for _, child := range children {
			if child == node {
				return concreteType
			}
		}
	}
	return nil
}

// resolveArguments assembles ArgumentValues for each of nodes against vars. An argument resolution
// failure here fails the whole selection set being completed, matching the coercion-time failure
// this replaces: before the plan existed, a bad argument aborted field collection for the entire
// object, not just the one field.
func resolveArguments(nodes []*PlanNode, vars graphql.VariableValues) ([]graphql.ArgumentValues, error) {
	resolved := make([]graphql.ArgumentValues, len(nodes))
	for i, node := range nodes {
		args, err := node.Arguments.Resolve(vars)
		if err != nil {
			return nil, err
		}
		resolved[i] = args
	}
	return resolved, nil
}

func collectAndDispatchRootTasks(ctx *ExecutionContext, dispatcher Dispatcher) (*ResultNode, error) {
	rootType := ctx.Operation().RootType()
	nodes := filterIncludedNodes(ctx.Operation().Plan().Children[rootType], ctx.VariableValues())

	args, err := resolveArguments(nodes, ctx.VariableValues())
	if err != nil {
		return nil, err
	}

	result := &ResultNode{}

	if dispatcher.SerializesRootFields() {
		// Mutation root fields must be resolved one at a time, waiting for each to settle before
		// starting the next.
		//
		// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Mutation.
		dispatchRootTasksSerially(ctx, dispatcher, result, nodes, args)
	} else {
		dispatchTasksForObject(ctx, dispatcher, result, nodes, args, ctx.RootValue())
	}

	return result, nil
}

// dispatchRootTasksSerially evaluates each top-level field of nodes to completion, via
// dispatcher.Wait, before dispatching the next one.
func dispatchRootTasksSerially(
	ctx *ExecutionContext,
	dispatcher Dispatcher,
	result *ResultNode,
	nodes []*PlanNode,
	args []graphql.ArgumentValues) {

	numNodes := len(nodes)
	nodeResults := make([]ResultNode, numNodes)

	result.Kind = ResultKindObject
	result.Value = &ObjectResultValue{
		Nodes:       nodes,
		FieldValues: nodeResults,
	}

	rootValue := ctx.RootValue()
	for i, node := range nodes {
		nodeResult := &nodeResults[i]
		nodeResult.Parent = result

		if graphql.IsNonNullType(node.Field.Type()) {
			nodeResult.SetToRejectNull()
		}

		task := newExecuteNodeTask(dispatcher, ctx, node, nodeResult, rootValue, args[i])
		dispatcher.Dispatch(task)
		dispatcher.Wait()
	}
}

// dispatchTasksForObject dispatches tasks to evaluate an object value comprised of the fields
// planned in childNodes, writing each field's ResultNode into result.
func dispatchTasksForObject(
	ctx *ExecutionContext,
	dispatcher Dispatcher,
	result *ResultNode,
	childNodes []*PlanNode,
	args []graphql.ArgumentValues,
	value interface{}) {

	numChildNodes := len(childNodes)

	nodeResults := make([]ResultNode, numChildNodes)

	result.Kind = ResultKindObject
	result.Value = &ObjectResultValue{
		Nodes:       childNodes,
		FieldValues: nodeResults,
	}

	for i := 0; i < numChildNodes; i++ {
		nodeResult := &nodeResults[i]
		nodeResult.Parent = result
		childNode := childNodes[i]

		if graphql.IsNonNullType(childNode.Field.Type()) {
			nodeResult.SetToRejectNull()
		}

		task := newExecuteNodeTask(dispatcher, ctx, childNode, nodeResult, value, args[i])
		dispatcher.Dispatch(task)
	}
}

//===----------------------------------------------------------------------------------------====//
// ExecuteNodeTask
//===----------------------------------------------------------------------------------------====//

var executeNodeTaskFreeList = sync.Pool{
	New: func() interface{} {
		return &ExecuteNodeTask{}
	},
}

func newExecuteNodeTask(
	dispatcher Dispatcher,
	ctx *ExecutionContext,
	node *PlanNode,
	result *ResultNode,
	source interface{},
	args graphql.ArgumentValues,
) *ExecuteNodeTask {

	// Find one from the free list.
	task := executeNodeTaskFreeList.Get().(*ExecuteNodeTask)
	task.dispatcher = dispatcher
	task.ctx = ctx
	task.node = node
	task.result = result
	task.source = source
	task.args = args
	// Initialze reference count to 1.
	task.refCount = 1

	return task
}

// ExecuteNodeTask executes a field (represented by a PlanNode). It is scheduled and is run by an
// executor.
//
// ExecuteNodeTask is a temporary object used extensively during execution. Its allocation is
// managed by a sync.Pool (i.e., executeNodeTaskFreeList) to improve the allocation rate. A field
// "refCount" is added to track the number of references to this task object. Once the count reaches
// 0, the task is put back to the free list automatically.
type ExecuteNodeTask struct {
	// Dispatcher that runs this task
	dispatcher Dispatcher

	// Context for execution
	ctx *ExecutionContext

	// The plan node to evaluate
	node *PlanNode

	// The ResultNode for writing the field value. It is allocated by the one that prepares the
	// ExecuteNodeTask for execution.
	result *ResultNode

	// Source value which is passed to the field resolver; This is the field value of the parent.
	source interface{}

	// args is node.Arguments already resolved against this request's VariableValues, computed once
	// before the task was dispatched.
	args graphql.ArgumentValues

	// Track the number of references to this object. See retain and release.
	refCount int64
}

// ExecuteNodeTask implements Task.
var _ Task = (*ExecuteNodeTask)(nil)

// retain increment the reference count of the task.
func (task *ExecuteNodeTask) retain() *ExecuteNodeTask {
	atomic.AddInt64(&task.refCount, 1)
	return task
}

// release decrement the reference count of the task. If the count reaches the task is considered
// unused (and should not be used thereafter) and will be put to the free list for later reuse by
// others (for another task).
func (task *ExecuteNodeTask) release() {
	if atomic.AddInt64(&task.refCount, -1) == 0 {
		executeNodeTaskFreeList.Put(task)
	}
}

// Run implements Task. It executes the task to value for the field corresponding to the PlanNode.
// The execution result is written to the task.result and errors are added to dispatcher (via
// task.dispatcher.AppendError) so nothing is returned from this method.
func (task *ExecuteNodeTask) Run() {
	var (
		ctx    = task.ctx
		node   = task.node
		result = task.result
		field  = node.Field
	)

	// Get field resolver to execute.
	resolver := field.Resolver()
	if resolver == nil {
		resolver = ctx.Operation().DefaultFieldResolver()
	}

	// Execute resolver to retrieve the field value
	value, err := resolver.Resolve(ctx.Context(), task.source, task.newResolveInfoFor(result))
	if err != nil {
		task.handleNodeError(err, result)
		task.release()
		return
	}

	// Complete subfields with value.
	task.completeValue(field.Type(), task.result, value)

	// Decrement reference count.
	task.release()

	return
}

// handleNodeError first creates a graphql.Error for an error value (which includes additional
// information such as field location) to be included in the GraphQL response and then adds the
// error to the dispatcher (using task.dispatcher.AppendError) to indicate a failed field execution.
func (task *ExecuteNodeTask) handleNodeError(err error, result *ResultNode) {
	node := task.node

	// Attach location info.
	locations := make([]graphql.ErrorLocation, len(node.Definitions))
	for i := range node.Definitions {
		locations[i] = graphql.ErrorLocationOfASTNode(node.Definitions[i])
	}

	// Compute response path.
	path := result.Path()

	// Wrap it as a graphql.Error to ensure a consistent Error interface.
	e, ok := err.(*graphql.Error)
	if !ok {
		e = graphql.NewError(err.Error(), locations, path).(*graphql.Error)
	} else {
		e.Locations = locations
		e.Path = path
	}

	// Set result value to a nil value.
	result.Kind = ResultKindNil
	result.Value = nil

	// Append error to the dispatcher.
	task.dispatcher.AppendError(e, result)
}

// completeValue implements "Value Completion" [0]. It ensures the value resolved from the field
// resolver adheres to the expected return type.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Value-Completion
func (task *ExecuteNodeTask) completeValue(
	returnType graphql.Type,
	result *ResultNode,
	value interface{}) {

	if wrappingType, isWrappingType := returnType.(graphql.WrappingType); isWrappingType {
		task.completeWrappingValue(wrappingType, result, value)
	} else {
		task.completeNonWrappingValue(returnType, result, value)
	}
}

func (task *ExecuteNodeTask) completeValuePrologue(
	returnType graphql.Type,
	result *ResultNode,
	value interface{}) (completed bool) {

	// Resolvers can return error to signify failure. See https://github.com/graphql/graphql-js/commit/f62c0a25.
	if err, ok := value.(*graphql.Error); ok && err != nil {
		task.handleNodeError(err, result)
		return true
	}

	// Resolves can return a Future whose value is generated by an asynchronous computation and may
	// not be ready yet. Dispatch a task to poll its result.
	if value, ok := value.(future.Future); ok {
		task.dispatcher.Dispatch(&AsyncValueTask{
			// Increment the reference count because the task is now referenced by the AsyncValueTask.
			nodeTask:        task.retain(),
			dataLoaderCycle: task.dispatcher.DataLoaderCycle(),
			returnType:      returnType,
			result:          result,
			value:           value,
		})
		return true
	}

	return false
}

// completeWrappingValue completes value for NonNull and List type.
func (task *ExecuteNodeTask) completeWrappingValue(
	returnType graphql.WrappingType,
	result *ResultNode,
	value interface{}) {

	if task.completeValuePrologue(returnType, result, value) {
		return
	}

	type ValueNode struct {
		returnType graphql.WrappingType
		result     *ResultNode
		value      interface{}
	}
	queue := []ValueNode{
		{
			returnType: returnType,
			result:     result,
			value:      value,
		},
	}

	for len(queue) > 0 {
		var valueNode *ValueNode
		// Pop one value node from queue.
		valueNode, queue = &queue[0], queue[1:]

		var (
			returnType graphql.Type = valueNode.returnType
			result                  = valueNode.result
			value                   = valueNode.value
		)

		// If the parent was resolved to nil, stop processing this node.
		if result.Parent.IsNil() {
			continue
		}

		// Handle non-null.
		nonNullType, isNonNullType := returnType.(*graphql.NonNull)

		if isNonNullType {
			// For non-null type, continue on its unwrapped type.
			returnType = nonNullType.ElementType()
		}

		// Handle nil value.
		if values.IsNullish(value) {
			// Check for non-nullability.
			if isNonNullType {
				node := task.node
				task.handleNodeError(
					graphql.NewError(fmt.Sprintf("Cannot return null for non-nullable field %v.%s.",
						parentFieldType(task.ctx, node).Name(), node.Field.Name())),
					result)
			} else {
				// Resolve the value to nil without error.
				result.Kind = ResultKindNil
				result.Value = nil
			}

			// Continue to the next value.
			continue
		} // if values.IsNullish(value)

		listType, isListType := returnType.(graphql.List)
		if !isListType {
			task.completeNonWrappingValue(returnType, result, value)
			continue
		}

		// Complete a list value by completing each item in the list with the inner type.
		elementType := listType.ElementType()
		elementWrappingType, isWrappingElementType := elementType.(graphql.WrappingType)

		// The following code is a bit mess. If the value implements Iterable interfaces, we want to
		// enumerates the its item values via its custom iterator. Otherwise, we fallback to use
		// reflect.Value.Index to obtain item values. It's possible to implement an Iterable for the
		// fallback path and merges the control flow. But we choose to avoid indirection to minimize
		// overheads.
		//
		// Invariants for the former case (value implements Iterable interfaces):
		//
		//  - iterable != nil
		//  - v.IsValid() returns false
		//  - numElements is undefined
		//
		// Invariants for the latter case (use reflection to get item values):
		//
		//  - iterable is nil
		//  - v.Kind() returns reflect.Array or reflect.Slice
		//  - numElements is defined
		//
		// We check "iterable" to see which case being dealt with as needed.
		var (
			iterable    graphql.Iterable
			v           reflect.Value
			resultNodes ResultNodeList
			numElements int
		)

		// Setup iterable and v.
		if iterableValue, ok := value.(graphql.Iterable); ok {
			iterable = iterableValue
			if sizedIterable, ok := iterable.(graphql.SizedIterable); ok {
				// Make use of size hint to avoid list grow as possible.
				resultNodes = NewFixedSizeResultNodeList(sizedIterable.Size())
			} else {
				resultNodes = NewResultNodeList()
			}
		} else {
			v = reflect.ValueOf(value)
			if v.Kind() == reflect.Ptr {
				v = v.Elem()
			}

			if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
				node := task.node
				task.handleNodeError(
					graphql.NewError(
						fmt.Sprintf("Expected Iterable, but did not find one for field %s.%s.",
							parentFieldType(task.ctx, node).Name(), node.Field.Name())),
					result)
				continue
			}

			numElements = v.Len()
			resultNodes = NewFixedSizeResultNodeList(numElements)
		}

		// Complete result.
		result.Kind = ResultKindList
		result.Value = resultNodes

		// The following control flow diverage into 4 paths:
		//
		//	if iterable != nil {
		//		if isWrappingElementType {
		//			...
		//		} else {
		//			...
		//		}
		//	} else { // iterable == nil
		//		// v must be a valid reflect.Value.
		//		if isWrappingElementType {
		//			...
		//		} else {
		//			...
		//		}
		//	}
		if iterable != nil {
			// Invariants: iterable != nil
			iter := iterable.Iterator()

			for {
				value, err := iter.Next()
				if err == iterator.Done {
					break
				} else if err != nil {
					node := task.node
					task.handleNodeError(
						graphql.NewError(
							fmt.Sprintf("Error occurred while enumerates values in the list field %s.%s.",
								parentFieldType(task.ctx, node).Name(), node.Field.Name()), err),
						result)
					break
				} else {
					// Prepare resultNode for element.
					resultNode := resultNodes.EmplaceBack(result, !isNonNullType)

					if isWrappingElementType {
						queue = append(queue, ValueNode{
							returnType: elementWrappingType,
							result:     resultNode,
							value:      value,
						})
					} else { // !isWrappingElementType
						if !task.completeNonWrappingValue(elementType, resultNode, value) {
							// If the err causes the parent to be nil'ed, stop procsessing the remaining elements.
							if result.IsNil() {
								break
							}
						}
					}
				}
			}
		} else { // iterable == nil
			// Invariants: v.IsValid() and numElements is defined

			if isWrappingElementType {
				for i := 0; i < numElements; i++ {
					resultNode := resultNodes.EmplaceBack(result, !isNonNullType)
					queue = append(queue, ValueNode{
						returnType: elementWrappingType,
						result:     resultNode,
						value:      v.Index(i).Interface(),
					})
				}
			} else { // !isWrappingElementType
				for i := 0; i < numElements; i++ {
					resultNode := resultNodes.EmplaceBack(result, !isNonNullType)
					value := v.Index(i).Interface()
					if !task.completeNonWrappingValue(elementType, resultNode, value) {
						// If the err causes the parent to be nil'ed, stop procsessing the remaining elements.
						if result.IsNil() {
							break
						}
					}
				}
			} // if isWrappingElementType
		} // if iterable != nil
	}
}

func (task *ExecuteNodeTask) completeNonWrappingValue(
	returnType graphql.Type,
	result *ResultNode,
	value interface{}) (ok bool) {

	if task.completeValuePrologue(returnType, result, value) {
		return true
	}

	// Chack for nullish. Non-null type should already be handled by completeWrappingValue.
	if values.IsNullish(value) {
		result.Value = nil
		result.Kind = ResultKindNil
		return true
	}

	switch returnType := returnType.(type) {
	// Scalar and Enum
	case graphql.LeafType:
		return task.completeLeafValue(returnType, result, value)

	case *graphql.Object:
		return task.completeObjectValue(returnType, result, value)

	// Union and Interface
	case graphql.AbstractType:
		return task.completeAbstractValue(returnType, result, value)
	}

	task.handleNodeError(
		graphql.NewError(fmt.Sprintf(`Cannot complete value of unexpected type "%v".`, returnType)),
		result)

	return false
}

func (task *ExecuteNodeTask) completeLeafValue(
	returnType graphql.LeafType,
	result *ResultNode,
	value interface{}) (ok bool) {

	options := task.ctx.Operation().Options()
	if options.DisableLeafSerialization {
		result.Kind = ResultKindLeaf
		result.Value = value
		return true
	}

	coercer := graphql.ScalarResultCoercer(nil)
	if options.CustomSerializers != nil {
		coercer = options.CustomSerializers[returnType.Name()]
	}

	var coercedValue interface{}
	var err error
	if coercer != nil {
		coercedValue, err = coercer.CoerceResultValue(value)
	} else {
		coercedValue, err = returnType.CoerceResultValue(value)
	}
	if err != nil {
		// See comments in graphql.NewCoercionError for the rules of handling error.
		if e, ok := err.(*graphql.Error); !ok || e.Kind != graphql.ErrKindCoercion {
			// Wrap the error in our own.
			err = graphql.NewDefaultResultCoercionError(returnType.Name(), value, err)
		}
		task.handleNodeError(err, result)
		return false
	}

	// Setup result and return.
	result.Kind = ResultKindLeaf
	result.Value = coercedValue
	return true
}

// completeObjectValue dispatches tasks for returnType's planned children, filtered for this
// request's VariableValues. Unlike a request-time field collection, the children themselves were
// already built when the operation was prepared - returnType only selects which of the plan's
// precomputed concrete-type branches applies.
func (task *ExecuteNodeTask) completeObjectValue(
	returnType *graphql.Object,
	result *ResultNode,
	value interface{}) (ok bool) {

	ctx := task.ctx
	node := task.node

	childNodes, known := node.Children[returnType]
	if !known {
		task.handleNodeError(unreachablePlanError(parentFieldType(ctx, node), node.Field, returnType), result)
		return false
	}

	childNodes = filterIncludedNodes(childNodes, ctx.VariableValues())

	args, err := resolveArguments(childNodes, ctx.VariableValues())
	if err != nil {
		task.handleNodeError(err, result)
		return false
	}

	dispatchTasksForObject(ctx, task.dispatcher, result, childNodes, args, value)

	return true
}

func (task *ExecuteNodeTask) completeAbstractValue(
	returnType graphql.AbstractType,
	result *ResultNode,
	value interface{}) (ok bool) {

	var (
		ctx  = task.ctx
		node = task.node
	)

	resolver := returnType.TypeResolver()
	if resolver == nil {
		task.handleNodeError(
			graphql.NewError(
				fmt.Sprintf("Abstract type %s must provide resolver to resolve to an Object type at "+
					"runtime for field %s.%s with value %s",
					returnType, parentFieldType(ctx, node).Name(), node.Field.Name(),
					graphql.Inspect(value))), result)
		return false
	}

	runtimeType, err := resolver.Resolve(ctx.Context(), value, task.newResolveInfoFor(result))
	if err != nil {
		task.handleNodeError(err, result)
		return false
	}

	if runtimeType == nil {
		task.handleNodeError(
			graphql.NewError(
				fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime for field %s.%s "+
					"with value %s, received nil.",
					returnType, parentFieldType(ctx, node).Name(), node.Field.Name(),
					graphql.Inspect(value))), result)
		return false
	}

	possibleTypes := task.ctx.Schema().PossibleTypes(returnType)
	if !possibleTypes.Contains(runtimeType) {
		task.handleNodeError(
			graphql.NewError(
				fmt.Sprintf(`Runtime Object type "%s" is not a possible type for "%s".`,
					runtimeType, returnType)), result)
		return false
	}

	return task.completeObjectValue(runtimeType, result, value)
}

// newResolveInfoFor creates a ResolveInfo to resolve result with current task context.
func (task *ExecuteNodeTask) newResolveInfoFor(result *ResultNode) graphql.ResolveInfo {
	if result == task.result {
		return task
	}

	return &ResolveInfo{
		ExecutionContext: task.ctx,
		PlanNode:         task.node,
		ResultNode:       result,
		args:             task.args,
	}
}

// The following implements graphql.ResolveInfo for ExecuteNodeTask. This is a memory optimization.
// When resolving value for task.result (that's the case for ExecuteNodeTask.run), we can pass:
//
//	info := &ResolveInfo{
//		ExecutionContext: task.ctx,
//		PlanNode:         task.node,
//		ResultNode:       task.result,
//	}
//
// But a better way is to use "task" as an ResolveInfo object to save allocation overheads.

// Schema implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Schema() graphql.Schema {
	return task.ctx.Operation().Schema()
}

// Document implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Document() ast.Document {
	return task.ctx.Operation().Document()
}

// Operation implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Operation() *ast.OperationDefinition {
	return task.ctx.Operation().Definition()
}

// DataLoaderManager implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) DataLoaderManager() graphql.DataLoaderManager {
	return task.ctx.DataLoaderManager()
}

// RootValue implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) RootValue() interface{} {
	return task.ctx.RootValue()
}

// AppContext implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) AppContext() interface{} {
	return task.ctx.AppContext()
}

// VariableValues implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) VariableValues() graphql.VariableValues {
	return task.ctx.VariableValues()
}

// ParentFieldSelection implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) ParentFieldSelection() graphql.FieldSelectionInfo {
	return fieldSelectionInfo{node: task.node.Parent, vars: task.ctx.VariableValues()}
}

// Object implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Object() *graphql.Object {
	return parentFieldType(task.ctx, task.node)
}

// FieldDefinitions implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) FieldDefinitions() []*ast.Field {
	return task.node.Definitions
}

// Field implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Field() graphql.Field {
	return task.node.Field
}

// Path implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Path() graphql.ResponsePath {
	return task.result.Path()
}

// Args implements graphql.ResolveInfo.
func (task *ExecuteNodeTask) Args() graphql.ArgumentValues {
	return task.args
}

//===----------------------------------------------------------------------------------------====//
// AsyncValueTask
//===----------------------------------------------------------------------------------------====//

// AsyncValueTask polls a Future to get a value from an asynchronous computation. The value will be
// used to complete node execution (by calling completeValue with the value).
type AsyncValueTask struct {
	// Node that requires the value to complete
	nodeTask *ExecuteNodeTask

	// dataLoaderCycle specifies which cycle of data loaders dispatching this task is waiting for. See
	// comments for DataLoaderCycle type in dispatcher.go for details.
	dataLoaderCycle DataLoaderCycle

	// The value to wait for calling completeValue
	value future.Future

	// Corresponding parameters to call completeValue
	returnType graphql.Type
	result     *ResultNode
}

// AsyncValueTask implements Task.
var _ Task = (*AsyncValueTask)(nil)

// Run implements Task.
func (task *AsyncValueTask) Run() {
	// Poll task.value to see whether it is ready.
	value, err := task.value.Poll(future.WakerFunc(task.wake))
	if err != nil {
		task.nodeTask.handleNodeError(err, task.result)
	} else if value != future.PollResultPending {
		task.nodeTask.completeValue(task.returnType, task.result, value)
		task.nodeTask.release()
	} else {
		// Value is not available at the time. Someone will perform the computation and notifies us via
		// wake when the value is ready.
		task.nodeTask.dispatcher.Yield(task)

		// Dispatch data loaders if there's any pending .
		tryDispatchDataLoaders(task.nodeTask.ctx, task.nodeTask.dispatcher, task.dataLoaderCycle)
	}
}

// wake dispatch the task to the executor (again) to poll its result.
func (task *AsyncValueTask) wake() error {
	task.nodeTask.dispatcher.Resume(task)
	return nil
}

// tryDispatchDataLoaders dispatches data loaders if the dispatch hasn't occurred in the given
// taskCycle.
func tryDispatchDataLoaders(
	ctx *ExecutionContext,
	dispatcher Dispatcher,
	taskCycle DataLoaderCycle) (newCycle DataLoaderCycle) {

	dataLoaderManager := ctx.DataLoaderManager()
	if dataLoaderManager == nil || !dataLoaderManager.HasPendingDataLoaders() {
		// Quick return if data loader is not enabled or there's no any loaders pending for dispatch.
		return
	}

	for {
		// Obtain current data loader cycle.
		curCycle := dispatcher.DataLoaderCycle()

		if taskCycle == curCycle {
			// The task depends on the dispatch of data loaders in given cycle which hasn't happened.
			// Increment the cycle to obtain the permit to run dispatch for the cycle. The increment may
			// fail. For example, concurrent dispatcher performs a CAS to ensure only one successfully
			// increment the counter. In such case, restart the loop to reload dispatcher's cycle counter.
			if dispatcher.IncDataLoaderCycle(taskCycle + 1) {
				// Successfully increment the cycle counter. Perform the actual data loader dispatch.
				dispatchDataLoaders(ctx.Context(), dataLoaderManager)
				return taskCycle + 1
			}
		} else {
			// Someone has dispatched the data loaders.
			return curCycle
		}
	}
}

func dispatchDataLoaders(ctx context.Context, manager graphql.DataLoaderManager) {
	// Dispatching a DataLoader may request more data which generate a new set of loaders that is
	// waiting for dispatch.
	for {
		pendingLoaders := manager.GetAndResetPendingDataLoaders()
		if len(pendingLoaders) == 0 {
			break
		}

		for loader := range pendingLoaders {
			loader.Dispatch(ctx)
		}
	}
}
