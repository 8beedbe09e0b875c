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
	"github.com/vellumql/jit/graphql/executor"
)

// JSONShapeKind tags a JSONShape node with the category of type it describes.
type JSONShapeKind int

// The kinds a JSONShape node can take, one per completion strategy spec §3 lists for a plan node,
// collapsed to the categories that matter for describing a JSON document's shape (List and NonNull
// fold into the element shape's Nullable/Repeated flags rather than being their own kind).
const (
	JSONShapePrimitive JSONShapeKind = iota
	JSONShapeObject
	JSONShapeList
)

// JSONShape describes the shape of one position in an operation's "data" result: the primitive
// type a scalar/enum serializes to, or the fields of a composite selection, or the element shape of
// a list. Abstract-typed fields (interface/union) are represented as JSONShapeObject with Fields
// holding the union of properties across every possible concrete type that was selected into, per
// spec §4.6 ("Abstract types produce an object with the union of possible-type properties").
type JSONShape struct {
	Kind JSONShapeKind

	// Nullable is true unless the field's declared type is NonNull.
	Nullable bool

	// Primitive is set when Kind == JSONShapePrimitive: "integer", "number", "string", "boolean", or
	// the teacher's JSON writer default of "string" for a scalar with no recognized mapping.
	Primitive string

	// Fields and FieldOrder are set when Kind == JSONShapeObject: the response key -> shape map, and
	// the order response keys were first encountered in the selection.
	Fields     map[string]*JSONShape
	FieldOrder []string

	// Element is set when Kind == JSONShapeList: the shape of one list entry.
	Element *JSONShape
}

// primitiveForScalar maps a scalar's name to the JSON Schema primitive type spec §4.6 names. A
// custom scalar with no recognized name falls back to "string", matching how the teacher's
// jsonwriter renders an unknown leaf today (best-effort, not load-bearing for correctness: the
// shape is a serialization hint, not used to validate the actual resolved value).
func primitiveForScalar(name string) string {
	switch name {
	case "Int":
		return "integer"
	case "Float":
		return "number"
	case "String", "ID":
		return "string"
	case "Boolean":
		return "boolean"
	default:
		return "string"
	}
}

// BuildJSONShape derives a JSON-shape descriptor for operation's response. It returns (nil, false)
// when the shape cannot be fully described: today that is exactly the case spec §9's open question
// names, an abstract type whose possible-type selections can't be exhaustively enumerated because
// the schema hasn't registered any possible types for it.
func BuildJSONShape(operation *executor.PreparedOperation) (*JSONShape, bool) {
	builder := &jsonShapeBuilder{
		schema:    operation.Schema(),
		fragments: fragmentMap(operation),
	}

	shape, ok := builder.objectShape(operation.RootType(), operation.Definition().SelectionSet)
	if !ok {
		return nil, false
	}
	return shape, true
}

// fragmentMap re-derives the name -> *ast.FragmentDefinition map from the operation's document; a
// PreparedOperation only exposes single-name lookup (FragmentDef), which is all the executor needs,
// but the shape builder needs the full set to walk fragments unknown ahead of time.
func fragmentMap(operation *executor.PreparedOperation) map[string]*ast.FragmentDefinition {
	fragments := map[string]*ast.FragmentDefinition{}
	for _, definition := range operation.Document().Definitions {
		if fragment, ok := definition.(*ast.FragmentDefinition); ok {
			fragments[fragment.Name.Value()] = fragment
		}
	}
	return fragments
}

type jsonShapeBuilder struct {
	schema    graphql.Schema
	fragments map[string]*ast.FragmentDefinition
}

// objectShape builds the JSONShapeObject for a selection set evaluated against objectType.
// abstractShape calls this once per possible concrete type and merges the results, per spec §4.6.
func (b *jsonShapeBuilder) objectShape(
	objectType *graphql.Object,
	selectionSet ast.SelectionSet) (*JSONShape, bool) {

	order, byKey := collectStaticFields(b.schema, b.fragments, objectType, selectionSet)

	shape := &JSONShape{
		Kind:       JSONShapeObject,
		Nullable:   true,
		Fields:     map[string]*JSONShape{},
		FieldOrder: order,
	}

	for _, key := range order {
		fieldDef := b.findFieldDef(objectType, byKey[key][0])
		if fieldDef == nil {
			// Survives validation as an unknown field; dropped from output per spec §4.7 item 1's
			// sibling rule for unknown selections, so it has no place in the shape either.
			shape.FieldOrder = removeKey(shape.FieldOrder, key)
			continue
		}

		fieldShape, ok := b.typeShape(fieldDef.Type(), byKey[key][0].SelectionSet)
		if !ok {
			return nil, false
		}
		shape.Fields[key] = fieldShape
	}

	return shape, true
}

func removeKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// findFieldDef mirrors executor's unexported findFieldDef: schema field lookup plus the
// __typename introspection field, the one meta-field whose shape (a plain String) is cheap and
// unambiguous to describe without reaching into the executor's unexported meta-field machinery.
func (b *jsonShapeBuilder) findFieldDef(objectType *graphql.Object, node *ast.Field) graphql.Field {
	if node.Name.Value() == "__typename" {
		return typenameFieldDef{}
	}
	return objectType.Fields()[node.Name.Value()]
}

// typenameFieldDef is a minimal graphql.Field for __typename, sufficient for typeShape to describe
// it as a non-null String without depending on executor's unexported meta field type.
type typenameFieldDef struct{}

func (typenameFieldDef) Name() string                      { return "__typename" }
func (typenameFieldDef) Description() string               { return "" }
func (typenameFieldDef) Type() graphql.Type                { return graphql.MustNewNonNullOfType(graphql.String()) }
func (typenameFieldDef) Args() []graphql.Argument           { return nil }
func (typenameFieldDef) Resolver() graphql.FieldResolver    { return nil }
func (typenameFieldDef) Deprecation() *graphql.Deprecation  { return nil }

// typeShape unwraps returnType (NonNull/List layers) and dispatches to the right JSONShape kind.
func (b *jsonShapeBuilder) typeShape(returnType graphql.Type, selectionSet ast.SelectionSet) (*JSONShape, bool) {
	nullable := graphql.IsNullableType(returnType)
	named := returnType

	if nonNull, ok := returnType.(*graphql.NonNull); ok {
		named = nonNull.ElementType()
	}

	switch t := named.(type) {
	case graphql.List:
		element, ok := b.typeShape(t.ElementType(), selectionSet)
		if !ok {
			return nil, false
		}
		return &JSONShape{Kind: JSONShapeList, Nullable: nullable, Element: element}, true

	case graphql.LeafType:
		return &JSONShape{Kind: JSONShapePrimitive, Nullable: nullable, Primitive: primitiveForScalar(t.Name())}, true

	case *graphql.Object:
		shape, ok := b.objectShape(t, selectionSet)
		if !ok {
			return nil, false
		}
		shape.Nullable = nullable
		return shape, true

	case graphql.AbstractType:
		return b.abstractShape(t, selectionSet, nullable)
	}

	return nil, false
}

// abstractShape merges the per-concrete-type object shapes of every possible type of t into a
// single JSONShapeObject. It fails (returns false) when the schema has no possible types
// registered for t, matching spec §9's open question: "the source falls back to standard JSON for
// error responses; preserve that" — the caller (BuildJSONShape) interprets a false return the same
// way.
func (b *jsonShapeBuilder) abstractShape(t graphql.AbstractType, selectionSet ast.SelectionSet, nullable bool) (*JSONShape, bool) {
	possible := b.schema.PossibleTypes(t)
	if possible.Len() == 0 {
		return nil, false
	}

	merged := &JSONShape{
		Kind:     JSONShapeObject,
		Nullable: nullable,
		Fields:   map[string]*JSONShape{},
	}

	it := possible.Iterator()
	for {
		v, err := it.Next()
		if err != nil {
			break
		}
		concreteType := v.(*graphql.Object)

		concreteShape, ok := b.objectShape(concreteType, selectionSet)
		if !ok {
			return nil, false
		}

		for _, key := range concreteShape.FieldOrder {
			if _, seen := merged.Fields[key]; !seen {
				merged.FieldOrder = append(merged.FieldOrder, key)
			}
			merged.Fields[key] = concreteShape.Fields[key]
		}
	}

	return merged, true
}
