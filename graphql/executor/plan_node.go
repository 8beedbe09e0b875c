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
	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
)

// A PlanNode represents one field position in a query's execution plan. Unlike a node that gets
// discovered the first time a request reaches it, every PlanNode in an operation's plan is built
// once, up front, when the operation is prepared: for a field whose return type is an interface or
// union, PlanNode.Children already holds one child list per concrete Object the field could
// possibly resolve to at runtime, computed from the schema rather than from any particular
// request's data. Preparing an operation therefore does all of the AST walking, field-definition
// lookup and argument-literal coercion it will ever need; running it against a RootValue only
// walks the plan and invokes resolvers.
//
// Given a schema:
//
//	type Query {
//	  hero: Character
//	}
//
//	type Character {
//	  name: String
//	  friends: [Character]
//	}
//
// and a query document:
//
//	{
//	  hero {
//	    name
//	    friends {
//	      name
//	    }
//	  }
//	}
//
// the "friends" PlanNode's Children are built exactly once, even though a list of friends means
// that subtree is walked once per element in the result.
type PlanNode struct {
	// Parent of this node in the plan; nil for the root node.
	Parent *PlanNode

	// Definitions holds one *ast.Field per syntactic occurrence that was merged into this node
	// (the same response key requested more than once, typically via different fragments). nil for
	// the root node.
	Definitions []*ast.Field

	// Gates holds, for each entry in Definitions at the same index, the runtime directive check that
	// occurrence still needs because its @skip/@include condition is bound to a variable. A nil entry
	// means that occurrence is unconditionally present - either it carried no directive, or the
	// directive's condition was a literal and was already folded away while the plan was built.
	Gates []*runtimeGate

	// Field is the schema field definition this node evaluates; nil for the root node.
	Field graphql.Field

	// Arguments assembles this field's ArgumentValues for a given request's VariableValues. nil for
	// the root node.
	Arguments *ArgumentPlan

	// Children maps a concrete Object type to the plan nodes produced by this field's selection set
	// evaluated against that type. It holds exactly one entry (keyed by the field's own return type)
	// for a field that returns a concrete Object, and one entry per graphql.Schema.PossibleTypes
	// member for a field returning an interface or union. nil for a leaf (scalar/enum) field, and for
	// the operation's root node it holds a single entry keyed by the operation's root type.
	Children map[*graphql.Object][]*PlanNode
}

// IsRoot returns true if this node represents the operation's root node.
func (node *PlanNode) IsRoot() bool {
	return node.Parent == nil
}

// ResponseKey is the field alias name if defined, otherwise the field name.
func (node *PlanNode) ResponseKey() string {
	return node.Definitions[0].ResponseKey()
}

// includedForRequest reports whether at least one of node's merged occurrences survives this
// request's VariableValues. A node with no variable-bound directives at all (the common case, and
// the only case once every literal @skip/@include has been folded at build time) always returns
// true without inspecting VariableValues.
func (node *PlanNode) includedForRequest(vars graphql.VariableValues) bool {
	if len(node.Gates) == 0 {
		return true
	}
	for _, gate := range node.Gates {
		if gate == nil || gate.included(vars) {
			return true
		}
	}
	return false
}

// filterIncludedNodes drops nodes not included for this request's VariableValues. It returns nodes
// unchanged, without allocating, when none of them carry a variable-bound directive.
func filterIncludedNodes(nodes []*PlanNode, vars graphql.VariableValues) []*PlanNode {
	hasGate := false
	for _, node := range nodes {
		if len(node.Gates) > 0 {
			hasGate = true
			break
		}
	}
	if !hasGate {
		return nodes
	}

	filtered := make([]*PlanNode, 0, len(nodes))
	for _, node := range nodes {
		if node.includedForRequest(vars) {
			filtered = append(filtered, node)
		}
	}
	return filtered
}
