/**
 * Copyright (c) 2018, The Artemis Authors.
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

	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
)

// ResolveInfo implements graphql.ResolveInfo to provide execution states for field and type
// resolvers. It is used for resolving values reached indirectly (list elements, values unwrapped
// from a Future) where the node being resolved isn't the ExecuteNodeTask's own node/result pair and
// ExecuteNodeTask can't double as the ResolveInfo itself.
type ResolveInfo struct {
	ExecutionContext *ExecutionContext
	PlanNode         *PlanNode
	ResultNode       *ResultNode

	// args is PlanNode.Arguments already resolved against the request's VariableValues.
	args graphql.ArgumentValues

	// This is embedded in the struct to make pass the context to completeValue and variants
	// (specifically for calling type resolvers in completeAbstractValue) without adding a parameter.
	ctx context.Context
}

// fieldSelectionInfo is an adapter which implements graphql.FieldSelectionInfo for PlanNode.
type fieldSelectionInfo struct {
	node *PlanNode
	vars graphql.VariableValues
}

var (
	_ graphql.ResolveInfo        = (*ResolveInfo)(nil)
	_ graphql.FieldSelectionInfo = fieldSelectionInfo{}
)

// Schema implements graphql.ResolveInfo.
func (info *ResolveInfo) Schema() graphql.Schema {
	return info.ExecutionContext.Operation().Schema()
}

// DataLoaderManager implements graphql.ResolveInfo.
func (info *ResolveInfo) DataLoaderManager() graphql.DataLoaderManager {
	return info.ExecutionContext.DataLoaderManager()
}

// Document implements graphql.ResolveInfo.
func (info *ResolveInfo) Document() ast.Document {
	return info.ExecutionContext.Operation().Document()
}

// Operation implements graphql.ResolveInfo.
func (info *ResolveInfo) Operation() *ast.OperationDefinition {
	return info.ExecutionContext.Operation().Definition()
}

// RootValue implements graphql.ResolveInfo.
func (info *ResolveInfo) RootValue() interface{} {
	return info.ExecutionContext.RootValue()
}

// AppContext implements graphql.ResolveInfo.
func (info *ResolveInfo) AppContext() interface{} {
	return info.ExecutionContext.AppContext()
}

// VariableValues implements graphql.ResolveInfo.
func (info *ResolveInfo) VariableValues() graphql.VariableValues {
	return info.ExecutionContext.VariableValues()
}

// ParentFieldSelection implements graphql.ResolveInfo.
func (info *ResolveInfo) ParentFieldSelection() graphql.FieldSelectionInfo {
	return fieldSelectionInfo{node: info.PlanNode.Parent, vars: info.ExecutionContext.VariableValues()}
}

// Object implements graphql.ResolveInfo.
func (info *ResolveInfo) Object() *graphql.Object {
	return parentFieldType(info.ExecutionContext, info.PlanNode)
}

// FieldDefinitions implements graphql.ResolveInfo.
func (info *ResolveInfo) FieldDefinitions() []*ast.Field {
	return info.PlanNode.Definitions
}

// Field implements graphql.ResolveInfo.
func (info *ResolveInfo) Field() graphql.Field {
	return info.PlanNode.Field
}

// Path implements graphql.ResolveInfo.
func (info *ResolveInfo) Path() graphql.ResponsePath {
	return info.ResultNode.Path()
}

// Args implements graphql.ResolveInfo.
func (info *ResolveInfo) Args() graphql.ArgumentValues {
	return info.args
}

//===------------------------------------------------------------------------------------------===//
// fieldSelectionInfo
//===------------------------------------------------------------------------------------------===//

// Parent implements graphql.FieldSelectionInfo.
func (info fieldSelectionInfo) Parent() graphql.FieldSelectionInfo {
	return fieldSelectionInfo{node: info.node.Parent, vars: info.vars}
}

// FieldDefinitions implements graphql.FieldSelectionInfo.
func (info fieldSelectionInfo) FieldDefinitions() []*ast.Field {
	return info.node.Definitions
}

// Field implements graphql.FieldSelectionInfo.
func (info fieldSelectionInfo) Field() graphql.Field {
	return info.node.Field
}

// Args implements graphql.FieldSelectionInfo.
//
// The node's own Run already resolved its arguments successfully once (a resolution failure would
// have short-circuited before any resolver, including this one's caller, ran); re-resolving here
// against the same VariableValues is redundant work on an already-known-good path, not a new
// failure mode, so an error is treated as NoArgumentValues rather than propagated through an
// interface that has no error return.
func (info fieldSelectionInfo) Args() graphql.ArgumentValues {
	args, err := info.node.Arguments.Resolve(info.vars)
	if err != nil {
		return graphql.NoArgumentValues()
	}
	return args
}
