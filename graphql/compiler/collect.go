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
	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
)

// collectStaticFields walks selectionSet the same way an executor.PlanNode tree is built (recursive
// DFS, named-fragment cycle guard, inline/named fragment type-condition matching) but without a
// schema's possible-types expansion and without ever resolving a variable-bound @skip/@include: a
// selection gated on a variable is resolved in favor of inclusion rather than deferred to runtime.
// That is a deliberate simplification for the one caller that needs a static collection,
// BuildJSONShape (C6): the JSON shape it derives is a hint for response serialization, and
// over-including an optional field costs nothing a schema consumer can't already tolerate from a
// nullable field.
//
// The return value preserves field declaration order and merges same-response-key occurrences the
// way the spec's "selection merging" rule requires, leaving compatibility checking to validation.
func collectStaticFields(
	schema graphql.Schema,
	fragments map[string]*ast.FragmentDefinition,
	objectType *graphql.Object,
	selectionSet ast.SelectionSet) (order []string, byKey map[string][]*ast.Field) {

	byKey = map[string][]*ast.Field{}
	visitedFragments := map[string]bool{}

	var walk func(set ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, selection := range set {
			if !staticallyIncluded(selection) {
				continue
			}

			switch selection := selection.(type) {
			case *ast.Field:
				key := selection.ResponseKey()
				if _, seen := byKey[key]; !seen {
					order = append(order, key)
				}
				byKey[key] = append(byKey[key], selection)

			case *ast.InlineFragment:
				if selection.HasTypeCondition() && !satisfiesTypeCondition(schema, selection.TypeCondition, objectType) {
					continue
				}
				walk(selection.SelectionSet)

			case *ast.FragmentSpread:
				name := selection.Name.Value()
				if visitedFragments[name] {
					continue
				}
				visitedFragments[name] = true

				def := fragments[name]
				if def == nil || !satisfiesTypeCondition(schema, def.TypeCondition, objectType) {
					continue
				}
				walk(def.SelectionSet)
			}
		}
	}
	walk(selectionSet)

	return order, byKey
}

// staticallyIncluded reports whether a selection's @skip/@include directives, evaluated using only
// their literal arguments, keep it in the static collection. A variable-bound "if" argument cannot
// be resolved here and is treated as included; see collectStaticFields's doc comment.
func staticallyIncluded(selection ast.Selection) bool {
	for _, directive := range selection.GetDirectives() {
		literal, ok := literalIfArgument(directive)
		if !ok {
			continue
		}
		switch directive.Name.Value() {
		case "skip":
			if literal {
				return false
			}
		case "include":
			if !literal {
				return false
			}
		}
	}
	return true
}

func literalIfArgument(directive *ast.Directive) (value bool, ok bool) {
	for _, arg := range directive.GetArguments() {
		if arg.Name.Value() != "if" {
			continue
		}
		if b, isBool := arg.Value.(ast.BooleanValue); isBool {
			return b.Value(), true
		}
		return false, false
	}
	return false, false
}

// satisfiesTypeCondition mirrors the plan builder's own type-condition check without requiring a
// schema-bound planBuilder value.
func satisfiesTypeCondition(schema graphql.Schema, typeCondition ast.NamedType, t *graphql.Object) bool {
	conditionalType := schema.TypeFromAST(typeCondition)
	if conditionalType == t {
		return true
	}
	if abstractType, ok := conditionalType.(graphql.AbstractType); ok {
		return schema.PossibleTypes(abstractType).Contains(t)
	}
	return false
}
