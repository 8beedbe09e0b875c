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

package iterator

// done is defined to serve as type for Done. It allows us to define an immutable global variable.
type done int

// Error implements Go's error inteface for "done".
func (done) Error() string {
	return "no more items in iterator"
}

var _ error = done(0)

// Done is returned by an iterator's Next method when the iteration is complete; when there are no
// more items to return.
const Done done = 0

// Iterator defines a way to access values in an Iterable, one at a time.
type Iterator interface {
	// Next returns the next value in iteration, following the convention documented for Done above:
	//
	//  - (value, nil): the next value in sequence.
	//  - (<ignored>, Done): the iterator is past the end of the sequence.
	//  - (<ignored>, <other error>): an error occurred producing the next value.
	Next() (interface{}, error)
}

// Iterable is recognized specially by the executor when a field resolver returns it for a field of
// List type, in place of a Go slice or array. It lives in this package (rather than in graphql or
// executor, which would otherwise each need their own copy) so that a value produced by one package
// and completed by the other - as introspection's list-valued fields are - is recognized by exactly
// the same interface on both sides.
type Iterable interface {
	// Iterator returns an iterator to loop over its values.
	Iterator() Iterator
}

// SizedIterable provides a hint about the size of the iterable, letting the executor preallocate the
// result list.
type SizedIterable interface {
	Iterable

	// Size provides a hint about number of values in the sequence.
	Size() int
}
