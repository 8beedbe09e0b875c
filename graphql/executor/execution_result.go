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
	"io"

	"github.com/vellumql/jit/graphql"
	"github.com/vellumql/jit/jsonwriter"
)

// ExecutionResult contains the result of running a compiled plan once: the result tree rooted at
// Data (nil when the operation failed before producing a root value) and any Errors accumulated
// along the way. A field error always leaves its ResultNode set to nil and appends to Errors rather
// than aborting the whole operation, except when non-null propagation bubbles the nil further up the
// tree (see ResultNode.Path and the completion logic that walks Parent pointers).
type ExecutionResult struct {
	Data   *ResultNode
	Errors graphql.Errors
}

// MarshalJSONTo writes the JSON encoding of result to w. It makes use of the jsonwriter
// implementation which offers better performance compared to Go's built-in encoding/json. Using
// this API to write result is preferred rather than encoding/json.Marshal.
func (result *ExecutionResult) MarshalJSONTo(w io.Writer) error {
	stream := jsonwriter.NewStream(w)
	stream.WriteValue(NewExecutionResultMarshaler(result))
	stream.WriteRawString("\n")
	return stream.Flush()
}

// MarshalJSON implements json.Marshaler interface for ExecutionResult.
func (result ExecutionResult) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(NewExecutionResultMarshaler(&result))
}
