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
	"fmt"

	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
	values "github.com/vellumql/jit/graphql/internal/value"
)

// argumentDefinitions is satisfied by the field or directive definition an ArgumentPlan is built
// against.
type argumentDefinitions interface {
	Args() []graphql.Argument
}

// argumentHolder is satisfied by the AST node (field, directive application) an ArgumentPlan reads
// its argument literals from.
type argumentHolder interface {
	ast.Node
	GetArguments() ast.Arguments
}

// variableArgument is an argument whose AST value is a bare variable reference: "id: $userID".
// Its value can only be known once a request supplies VariableValues, but everything else about
// it - which argument it fills, the argument's type, whether a default applies - is already fixed
// by the document, so only the small residual lookup runs per call.
type variableArgument struct {
	name         string
	argType      graphql.Type
	variableName string
	hasDefault   bool
	defaultValue interface{}
}

// deferredArgument is an argument whose literal value contains a variable reference somewhere
// inside a list or input-object literal ("tags: [$a, \"b\"]"). There are too few of these in
// practice to warrant partially folding the surrounding literal, so the whole value is re-coerced
// against the request's VariableValues.
type deferredArgument struct {
	name    string
	argType graphql.Type
	value   ast.Value
}

// ArgumentPlan is the compile-time half of argument resolution for one field or directive
// application. Building it walks the argument list once against the definition's Args(), exactly
// as the runtime resolver used to on every request; everything that doesn't depend on a variable -
// literal values, applied defaults, missing-required-argument validation - is resolved right here
// and never revisited. Resolve, called once per request, only has to deal with the (usually empty)
// remainder that does depend on VariableValues.
type ArgumentPlan struct {
	literals  map[string]interface{}
	variables []variableArgument
	deferred  []deferredArgument
}

// noArguments is shared by every field and directive application that takes no arguments, so the
// overwhelmingly common case allocates nothing.
var noArguments = &ArgumentPlan{}

// buildArgumentPlan partitions holder's arguments against def's argument definitions at plan-build
// time. An argument error that cannot depend on a request's variables (a required argument with no
// value and no default, a literal null given to a non-null argument, an ill-typed literal) is
// reported now, during Prepare, instead of on every subsequent call.
func buildArgumentPlan(def argumentDefinitions, holder argumentHolder) (*ArgumentPlan, error) {
	argDefs := def.Args()
	argNodes := holder.GetArguments()
	if len(argDefs) == 0 {
		return noArguments, nil
	}

	argNodeMap := make(map[string]*ast.Argument, len(argNodes))
	for _, argNode := range argNodes {
		argNodeMap[argNode.Name.Value()] = argNode
	}

	plan := &ArgumentPlan{}

	for _, argDef := range argDefs {
		argName := argDef.Name()
		argType := argDef.Type()
		argNode := argNodeMap[argName]

		if argNode == nil {
			if argDef.HasDefaultValue() {
				plan.setLiteral(argName, argDef.DefaultValue())
			} else if graphql.IsNonNullType(argType) {
				return nil, graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%v" was not provided.`, argName, argType),
					graphql.ErrorLocationOfASTNode(holder))
			}
			continue
		}

		switch value := argNode.Value.(type) {
		case ast.Variable:
			plan.variables = append(plan.variables, variableArgument{
				name:         argName,
				argType:      argType,
				variableName: value.Name.Value(),
				hasDefault:   argDef.HasDefaultValue(),
				defaultValue: argDef.DefaultValue(),
			})
			continue

		case ast.NullValue:
			if graphql.IsNonNullType(argType) {
				return nil, graphql.NewError(
					fmt.Sprintf(`Argument "%s" of non-null type "%v" must not be null.`, argName, argType),
					graphql.ErrorLocationOfASTNode(argNode))
			}
			plan.setLiteral(argName, nil)
			continue
		}

		if containsVariableReference(argNode.Value) {
			plan.deferred = append(plan.deferred, deferredArgument{
				name:    argName,
				argType: argType,
				value:   argNode.Value,
			})
			continue
		}

		coercedValue, err := values.CoerceFromAST(argNode.Value, argType, graphql.NoVariableValues())
		if err != nil {
			return nil, graphql.NewError(
				fmt.Sprintf(`Argument "%s" has invalid value %s.`, argName, graphql.Inspect(argNode.Value.Interface())),
				graphql.ErrorLocationOfASTNode(argNode.Value), err)
		}
		plan.setLiteral(argName, coercedValue)
	}

	return plan, nil
}

func (plan *ArgumentPlan) setLiteral(name string, value interface{}) {
	if plan.literals == nil {
		plan.literals = map[string]interface{}{}
	}
	plan.literals[name] = value
}

// containsVariableReference reports whether value, or anything nested inside it, refers to a
// variable. A bare top-level ast.Variable is handled separately by buildArgumentPlan before this
// is ever called; this only needs to look inside list and input-object literals.
func containsVariableReference(value ast.Value) bool {
	switch value := value.(type) {
	case ast.Variable:
		return true
	case ast.ListValue:
		for _, item := range value.Values() {
			if containsVariableReference(item) {
				return true
			}
		}
	case ast.ObjectValue:
		for _, field := range value.Fields() {
			if containsVariableReference(field.Value) {
				return true
			}
		}
	}
	return false
}

// Resolve produces the fully coerced ArgumentValues for one call, given that call's
// VariableValues. When the plan has no variable-dependent arguments at all - the common case -
// Resolve does no per-call work beyond handing back the literals computed at build time.
func (plan *ArgumentPlan) Resolve(variableValues graphql.VariableValues) (graphql.ArgumentValues, error) {
	if len(plan.variables) == 0 && len(plan.deferred) == 0 {
		if len(plan.literals) == 0 {
			return graphql.NoArgumentValues(), nil
		}
		return graphql.NewArgumentValues(plan.literals), nil
	}

	coerced := make(map[string]interface{}, len(plan.literals)+len(plan.variables)+len(plan.deferred))
	for name, value := range plan.literals {
		coerced[name] = value
	}

	for _, arg := range plan.variables {
		value, ok := variableValues.Lookup(arg.variableName)
		isNil := ok && value == nil

		switch {
		case !ok && arg.hasDefault:
			coerced[arg.name] = arg.defaultValue

		case (!ok || isNil) && graphql.IsNonNullType(arg.argType):
			if isNil {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of non-null type "%v" must not be null.`, arg.name, arg.argType))
			}
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" of required type "%v" was provided the variable "$%s" which was `+
					`not provided a runtime value.`, arg.name, arg.argType, arg.variableName))

		case isNil:
			coerced[arg.name] = nil

		case ok:
			coerced[arg.name] = value
		}
	}

	for _, arg := range plan.deferred {
		value, err := values.CoerceFromAST(arg.value, arg.argType, variableValues)
		if err != nil {
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" has invalid value %s.`, arg.name, graphql.Inspect(arg.value.Interface())),
				graphql.ErrorLocationOfASTNode(arg.value), err)
		}
		coerced[arg.name] = value
	}

	return graphql.NewArgumentValues(coerced), nil
}
