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

// PossibleTypeSet is the set of concrete Object types that can appear where an AbstractType
// (Interface or Union) is expected: the Objects implementing an Interface, or the member types of a
// Union. Schema.PossibleTypes returns one of these per abstract type, computed once in NewSchema so
// that abstract-type dispatch during execution is a map lookup rather than a scan of every type in
// the schema.
type PossibleTypeSet struct {
	types map[*Object]bool
}

// NewPossibleTypeSet creates an empty PossibleTypeSet.
func NewPossibleTypeSet() PossibleTypeSet {
	return PossibleTypeSet{types: map[*Object]bool{}}
}

// Add includes t in the set.
func (set PossibleTypeSet) Add(t *Object) {
	set.types[t] = true
}

// Contains reports whether t is a member of the set.
func (set PossibleTypeSet) Contains(t *Object) bool {
	return set.types[t]
}

// Len returns the number of types in the set.
func (set PossibleTypeSet) Len() int {
	return len(set.types)
}

// Iterator implements Iterable, so a PossibleTypeSet can be returned directly from a resolver for a
// field of List type (see the "possibleTypes" introspection field).
func (set PossibleTypeSet) Iterator() Iterator {
	return NewMapKeysIterator(set.types)
}

// Size implements SizedIterable.
func (set PossibleTypeSet) Size() int {
	return len(set.types)
}

var _ SizedIterable = PossibleTypeSet{}
