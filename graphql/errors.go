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

package graphql

import (
	"fmt"

	"github.com/vellumql/jit/graphql/token"
)

// Source is the GraphQL source text that a Document was parsed from. It is defined in this package
// (rather than requiring every caller to import graphql/token) because error values throughout this
// package carry a *Source for diagnostics.
type Source = token.Source

//===----------------------------------------------------------------------------------------====//
// Syntax Error
//===----------------------------------------------------------------------------------------====//

type syntaxError struct {
	source      *Source
	location    token.SourceLocation
	description string
}

var (
	_ error              = (*syntaxError)(nil)
	_ ErrorWithLocations = (*syntaxError)(nil)
)

// Error implements Go's error interface.
func (e *syntaxError) Error() string {
	return fmt.Sprintf("Syntax Error: %s", e.description)
}

// Locations implements ErrorWithLocations.
func (e *syntaxError) Locations() []ErrorLocation {
	locInfo := e.source.LocationInfoOf(e.location)
	return []ErrorLocation{
		{
			Line:   locInfo.Line,
			Column: locInfo.Column,
		},
	}
}

// NewSyntaxError produces an error representing a syntax error, containing useful descriptive
// information about the syntax error's position in the source.
func NewSyntaxError(source *Source, location token.SourceLocation, description string) error {
	e := &syntaxError{
		source:      source,
		location:    location,
		description: description,
	}
	return NewError(e.Error(), e)
}

//===----------------------------------------------------------------------------------------====//
// Result Coercion Error
//===----------------------------------------------------------------------------------------====//

// NewDefaultResultCoercionError builds the error returned when a field resolver's value cannot be
// coerced into the shape its GraphQL return type expects. typeName names the GraphQL type the value
// was being coerced into (a scalar or enum name); value is the offending resolver value; err, when
// non-nil, carries the underlying reason (e.g., no matching enum value).
func NewDefaultResultCoercionError(typeName string, value interface{}, err error) error {
	message := fmt.Sprintf("Expected a value of type %q but received: %v", typeName, value)
	if err != nil {
		return NewError(message, ErrKindCoercion, err)
	}
	return NewError(message, ErrKindCoercion)
}
