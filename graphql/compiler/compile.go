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

package compiler

import (
	"context"

	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
	"github.com/vellumql/jit/graphql/executor"
)

// CompileOptions is executor.CompileOptions under the name the compile entry point uses. See
// executor.CompileOptions for field documentation.
type CompileOptions = executor.CompileOptions

// PrepareParams is executor.PrepareParams. Kept as an alias (rather than a wrapping struct) so a
// *executor.PreparedOperation-shaped call site and a compiler-shaped one agree on the same value.
type PrepareParams = executor.PrepareParams

// ExecuteParams is executor.ExecuteParams.
type ExecuteParams = executor.ExecuteParams

// ResultSerializer renders one ExecutionResult as a string. A CompileOptions.CustomJSONSerializer
// factory returns one of these, specialized for the operation it was built from.
type ResultSerializer func(result *executor.ExecutionResult) (string, error)

// CompiledQuery is the result of a successful Compile. It embeds *executor.PreparedOperation, so
// Execute and every PreparedOperation accessor (Schema, Document, RootType, ...) are available
// directly; Query and Stringify are the spec-level conveniences layered on top.
type CompiledQuery struct {
	*executor.PreparedOperation

	jsonShape  *JSONShape
	serializer ResultSerializer
}

// Compile validates schema, document and operationName, then builds a CompiledQuery for the
// selected operation. If options.CustomJSONSerializer is non-nil and not false, Compile also
// derives a JSON-shape descriptor (see BuildJSONShape); when one can be derived, it is stored on the
// CompiledQuery and the factory is called with that CompiledQuery to obtain the ResultSerializer
// that Stringify will use.
func Compile(
	schema graphql.Schema,
	document ast.Document,
	operationName string,
	options CompileOptions) (*CompiledQuery, graphql.Errors) {

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        schema,
		Document:      document,
		OperationName: operationName,
		Options:       options,
	})
	if errs.HaveOccurred() {
		return nil, errs
	}

	compiled := &CompiledQuery{PreparedOperation: operation}

	switch factory := options.CustomJSONSerializer.(type) {
	case nil:
		// Standard JSON (ExecutionResult.MarshalJSON) is used.
	case bool:
		// Prepare already rejected true; false is the default, nothing to do.
	case func(*CompiledQuery) ResultSerializer:
		shape, ok := BuildJSONShape(operation)
		if ok {
			compiled.jsonShape = shape
			compiled.serializer = factory(compiled)
		}
	default:
		errs.Emplace("customJSONSerializer must be false, nil, or a func(*compiler.CompiledQuery) compiler.ResultSerializer value.")
		return nil, errs
	}

	return compiled, graphql.NoErrors()
}

// Prepare is Compile with its arguments taken from params (including params.Options), matching the
// name and shape a caller migrating straight from executor.Prepare expects: a zero-value Options
// reproduces executor.Prepare's defaults exactly (standard result serialization, no
// leaf-serialization overrides).
func Prepare(params PrepareParams) (*CompiledQuery, graphql.Errors) {
	return Compile(params.Schema, params.Document, params.OperationName, params.Options)
}

// JSONShape returns the operation's derived JSON-shape descriptor, or nil if one was never
// requested (CompileOptions.CustomJSONSerializer was nil/false) or couldn't be derived (see
// BuildJSONShape).
func (cq *CompiledQuery) JSONShape() *JSONShape {
	return cq.jsonShape
}

// Query executes the compiled operation against rootValue and variableValues, blocking the calling
// goroutine until the result is ready. It is Execute with the Runner/DataLoaderManager/AppContext
// knobs dropped, for callers who only need the three values the spec's query() names.
func (cq *CompiledQuery) Query(
	ctx context.Context,
	rootValue interface{},
	variableValues map[string]interface{}) executor.ExecutionResult {

	return <-cq.Execute(ctx, ExecuteParams{
		RootValue:      rootValue,
		VariableValues: variableValues,
	})
}

// Stringify renders result as a string. When a custom JSON serializer was installed via
// CompileOptions.CustomJSONSerializer, that serializer is used; otherwise (including when the
// operation's shape could not be described, e.g. a deeply polymorphic union with incomplete
// concrete-type coverage) Stringify falls back to result's standard JSON encoding.
func (cq *CompiledQuery) Stringify(result *executor.ExecutionResult) (string, error) {
	if cq.serializer != nil {
		return cq.serializer(result)
	}
	b, err := result.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
