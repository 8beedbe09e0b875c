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

// Package compiler is the caller-facing entry point to the query compiler. Compile (and its
// convenience wrapper Prepare) validate a schema/document/operation-name triple, produce a
// CompiledQuery bound to one operation, and optionally derive a JSON-shape descriptor for that
// operation's response.
//
// A CompiledQuery wraps an executor.PreparedOperation: Query (and the lower-level Execute it
// embeds) drive the query against a root value, a context.Context, and variable values; Stringify
// renders an executor.ExecutionResult with the serializer built from the operation's JSON shape when
// one was installed, and with ExecutionResult.MarshalJSON (jsonwriter) otherwise.
package compiler
