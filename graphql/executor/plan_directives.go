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
	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/graphql/ast"
)

// gateKind distinguishes a @skip check from an @include check: the two directives have opposite
// polarity ("if" means "drop it" for @skip, "keep it" for @include).
type gateKind int

const (
	gateSkip gateKind = iota
	gateInclude
)

// gateCheck is one directive occurrence ("@skip(if: $x)") whose condition could not be decided
// while the plan was built, because its "if" argument names a variable.
type gateCheck struct {
	kind         gateKind
	variableName string
}

// runtimeGate is the set of directive checks a selection still needs re-evaluated per request. A
// selection whose @skip/@include conditions were all literal never gets a runtimeGate at all - see
// planSelectionDirectives.
type runtimeGate struct {
	checks []gateCheck
}

// included evaluates every check against vars, per https://graphql.github.io/graphql-spec/June2018/#sec--skip:
// @skip takes precedence, and an unset variable is treated as false (the directive has no effect).
func (g *runtimeGate) included(vars graphql.VariableValues) bool {
	if g == nil {
		return true
	}
	for _, check := range g.checks {
		value, ok := vars.Lookup(check.variableName)
		if !ok {
			continue
		}
		flag, ok := value.(bool)
		if !ok {
			continue
		}
		switch check.kind {
		case gateSkip:
			if flag {
				return false
			}
		case gateInclude:
			if !flag {
				return false
			}
		}
	}
	return true
}

// mergeGates combines the runtime checks carried by nested fragments (outer) with those on the
// selection itself (inner), so a field nested under a variable-gated fragment spread still gets
// re-checked per request even though the field's own directives, if any, were already literal.
func mergeGates(outer, inner *runtimeGate) *runtimeGate {
	if outer == nil {
		return inner
	}
	if inner == nil {
		return outer
	}
	merged := &runtimeGate{checks: make([]gateCheck, 0, len(outer.checks)+len(inner.checks))}
	merged.checks = append(merged.checks, outer.checks...)
	merged.checks = append(merged.checks, inner.checks...)
	return merged
}

// planSelectionDirectives inspects a selection's @skip and @include directives at plan-build time.
// include reports whether the selection can ever be reached for any request - false means its
// condition was a literal that folds the selection away entirely, once, right now. gate is non-nil
// only when at least one of the two directives is bound to a variable, meaning the decision has to
// be repeated per request.
func planSelectionDirectives(directives ast.Directives) (include bool, gate *runtimeGate) {
	var checks []gateCheck

	if value := directiveIfArgument(directives, graphql.SkipDirective().Name()); value != nil {
		switch value := value.(type) {
		case ast.BooleanValue:
			if value.Value() {
				return false, nil
			}
		case ast.Variable:
			checks = append(checks, gateCheck{kind: gateSkip, variableName: value.Name.Value()})
		}
	}

	if value := directiveIfArgument(directives, graphql.IncludeDirective().Name()); value != nil {
		switch value := value.(type) {
		case ast.BooleanValue:
			if !value.Value() {
				return false, nil
			}
		case ast.Variable:
			checks = append(checks, gateCheck{kind: gateInclude, variableName: value.Name.Value()})
		}
	}

	if len(checks) == 0 {
		return true, nil
	}
	return true, &runtimeGate{checks: checks}
}

func directiveIfArgument(directives ast.Directives, name string) ast.Value {
	for _, directive := range directives {
		if directive.Name.Value() != name {
			continue
		}
		for _, arg := range directive.Arguments {
			if arg.Name.Value() == "if" {
				return arg.Value
			}
		}
	}
	return nil
}
