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
	"github.com/vellumql/jit/iterator"
)

// planBuilder turns an operation's AST into its PlanNode tree exactly once, at Prepare time. It
// replaces the request-time approach of re-walking the selection set the first time a field of a
// given concrete type is reached: every field/concrete-type combination the schema says is
// reachable is expanded here, up front, whether or not a particular request's data ever exercises
// it.
type planBuilder struct {
	schema      graphql.Schema
	fragmentMap map[string]*ast.FragmentDefinition
}

// buildRootPlan builds the PlanNode tree rooted at rootType for the operation's top-level
// selection set. The returned node's Children holds a single entry keyed by rootType; a query's
// or mutation's root selection set does not vary by runtime type the way an interface-typed
// field's does.
func buildRootPlan(schema graphql.Schema, rootType *graphql.Object, operation *ast.OperationDefinition, fragmentMap map[string]*ast.FragmentDefinition) (*PlanNode, error) {
	b := &planBuilder{schema: schema, fragmentMap: fragmentMap}

	root := &PlanNode{}
	children, err := b.buildSelectionSets(root, rootType, []ast.SelectionSet{operation.SelectionSet})
	if err != nil {
		return nil, err
	}
	root.Children = map[*graphql.Object][]*PlanNode{rootType: children}
	return root, nil
}

// buildFieldChildren builds node.Children for every concrete Object type node.Field's return type
// could resolve to: the single type itself if it is already concrete, or one entry per
// schema.PossibleTypes() member if it is an interface or union. A leaf (scalar/enum) field has no
// children at all and is left with a nil map.
func (b *planBuilder) buildFieldChildren(node *PlanNode) error {
	namedType := graphql.NamedTypeOf(node.Field.Type())

	concreteTypes, err := b.possibleConcreteTypes(namedType)
	if err != nil {
		return err
	}
	if concreteTypes == nil {
		// Leaf type: nothing to select.
		return nil
	}

	children := make(map[*graphql.Object][]*PlanNode, len(concreteTypes))
	for _, concreteType := range concreteTypes {
		selectionSets := fieldSelectionSets(node.Definitions)
		nodes, err := b.buildSelectionSets(node, concreteType, selectionSets)
		if err != nil {
			return err
		}
		children[concreteType] = nodes
	}
	node.Children = children
	return nil
}

func fieldSelectionSets(definitions []*ast.Field) []ast.SelectionSet {
	sets := make([]ast.SelectionSet, 0, len(definitions))
	for _, def := range definitions {
		if def.SelectionSet != nil {
			sets = append(sets, def.SelectionSet)
		}
	}
	return sets
}

// possibleConcreteTypes returns the Object types t could resolve to, or nil if t is a leaf type.
func (b *planBuilder) possibleConcreteTypes(t graphql.Type) ([]*graphql.Object, error) {
	if obj, ok := t.(*graphql.Object); ok {
		return []*graphql.Object{obj}, nil
	}

	abstractType, ok := t.(graphql.AbstractType)
	if !ok {
		return nil, nil
	}

	set := b.schema.PossibleTypes(abstractType)
	types := make([]*graphql.Object, 0, set.Len())
	iter := set.Iterator()
	for {
		value, err := iter.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, err
		}
		types = append(types, value.(*graphql.Object))
	}
	return types, nil
}

// buildSelectionSets expands selectionSets - the (possibly several, when the same field was
// requested more than once) selection sets contributing to parent - against concreteType. It is
// the compile-time counterpart of the request-time "collect fields" pass: same stack-based DFS
// over fields, inline fragments and fragment spreads, same field-merging-by-response-key and
// @skip/@include handling, run once per (parent, concreteType) instead of once per request.
func (b *planBuilder) buildSelectionSets(parent *PlanNode, concreteType *graphql.Object, selectionSets []ast.SelectionSet) ([]*PlanNode, error) {
	visitedFragments := map[string]bool{}
	byResponseKey := map[string]*PlanNode{}
	var nodes []*PlanNode

	type frame struct {
		selectionSet ast.SelectionSet
		index        int
		gate         *runtimeGate
	}

	stack := make([]frame, len(selectionSets))
	for i, set := range selectionSets {
		stack[len(selectionSets)-i-1] = frame{selectionSet: set}
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		interrupted := false

		for top.index < len(top.selectionSet) && !interrupted {
			selection := top.selectionSet[top.index]
			top.index++
			if top.index >= len(top.selectionSet) {
				stack = stack[:len(stack)-1]
			}

			include, ownGate := planSelectionDirectives(selection.GetDirectives())
			if !include {
				continue
			}
			gate := mergeGates(top.gate, ownGate)

			switch selection := selection.(type) {
			case *ast.Field:
				name := selection.ResponseKey()
				if existing := byResponseKey[name]; existing != nil {
					existing.Definitions = append(existing.Definitions, selection)
					existing.Gates = append(existing.Gates, gate)
					continue
				}

				fieldDef := findFieldDef(b.schema, concreteType, selection.Name.Value())
				if fieldDef == nil {
					// Per https://graphql.github.io/graphql-spec/June2018/#ExecuteSelectionSet(), a field the
					// schema doesn't define on this concrete type is skipped, not an error.
					continue
				}

				argPlan, err := buildArgumentPlan(fieldDef, selection)
				if err != nil {
					return nil, err
				}

				child := &PlanNode{
					Parent:      parent,
					Definitions: []*ast.Field{selection},
					Gates:       []*runtimeGate{gate},
					Field:       fieldDef,
					Arguments:   argPlan,
				}
				if err := b.buildFieldChildren(child); err != nil {
					return nil, err
				}

				nodes = append(nodes, child)
				byResponseKey[name] = child

			case *ast.InlineFragment:
				if selection.HasTypeCondition() && !b.doesTypeConditionSatisfy(selection.TypeCondition, concreteType) {
					continue
				}
				stack = append(stack, frame{selectionSet: selection.SelectionSet, gate: gate})
				interrupted = true

			case *ast.FragmentSpread:
				fragmentName := selection.Name.Value()
				if visitedFragments[fragmentName] {
					continue
				}
				visitedFragments[fragmentName] = true

				fragmentDef := b.fragmentMap[fragmentName]
				if fragmentDef == nil {
					continue
				}
				if !b.doesTypeConditionSatisfy(fragmentDef.TypeCondition, concreteType) {
					continue
				}

				stack = append(stack, frame{selectionSet: fragmentDef.SelectionSet, gate: gate})
				interrupted = true
			}
		}
	}

	return nodes, nil
}

func (b *planBuilder) doesTypeConditionSatisfy(typeCondition ast.NamedType, t *graphql.Object) bool {
	conditionalType := b.schema.TypeFromAST(typeCondition)
	if conditionalType == t {
		return true
	}
	if abstractType, ok := conditionalType.(graphql.AbstractType); ok {
		return b.schema.PossibleTypes(abstractType).Contains(t)
	}
	return false
}

// findFieldDef looks up fieldName on parentType, special-casing the introspection meta-fields:
// __schema and __type are only reachable from the query root, __typename from any composite type.
func findFieldDef(schema graphql.Schema, parentType *graphql.Object, fieldName string) graphql.Field {
	if schema.Query() == parentType {
		if fieldName == schemaMetaFieldName {
			return schemaMetaField{}
		} else if fieldName == typeMetaFieldName {
			return typeMetaField{}
		}
	}
	if fieldName == typenameMetaFieldName {
		return typenameMetaField{}
	}
	return parentType.Fields()[fieldName]
}

// unreachablePlanError is returned when a request resolves a field to a concrete type the plan
// never enumerated. Soundly-validated resolvers and abstract-type resolvers that only ever return
// a schema.PossibleTypes() member cannot trigger this; it exists so a misbehaving type resolver
// produces a GraphQL error instead of a nil-map panic.
func unreachablePlanError(fieldOwner *graphql.Object, field graphql.Field, concreteType *graphql.Object) error {
	return graphql.NewError(fmt.Sprintf(
		`"%s" was not among the possible types planned for field %s.%s.`,
		concreteType.Name(), fieldOwner.Name(), field.Name()))
}
