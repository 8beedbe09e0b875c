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

package graphql

import (
	"github.com/vellumql/jit/internal/util"
	"github.com/vellumql/jit/iterator"
)

// Iterable and Iterator are aliases for the types of the same name in the iterator package, so that
// the introspection resolvers in introspection.go - which produce values for List-typed fields without going
// through a Go slice - are recognized by the executor package, which cannot be imported from here.
type Iterable = iterator.Iterable

// SizedIterable provides a hint about the size of the iterable.
type SizedIterable = iterator.SizedIterable

// Iterator defines a way to access values in an Iterable.
type Iterator = iterator.Iterator

// mapKeysIterator loops over the keys of a Go map.
type mapKeysIterator struct {
	iter *util.ImmutableMapIter
}

// Next implements Iterator.
func (iter mapKeysIterator) Next() (interface{}, error) {
	if !iter.iter.Next() {
		return nil, iterator.Done
	}
	return iter.iter.Key().Interface(), nil
}

// NewMapKeysIterator returns an Iterator over the keys of m, which must be a Go map.
func NewMapKeysIterator(m interface{}) Iterator {
	return mapKeysIterator{util.NewImmutableMapIter(m)}
}

// mapValuesIterator loops over the values of a Go map.
type mapValuesIterator struct {
	iter *util.ImmutableMapIter
}

// Next implements Iterator.
func (iter mapValuesIterator) Next() (interface{}, error) {
	if !iter.iter.Next() {
		return nil, iterator.Done
	}
	return iter.iter.Value().Interface(), nil
}

// NewMapValuesIterator returns an Iterator over the values of m, which must be a Go map.
func NewMapValuesIterator(m interface{}) Iterator {
	return mapValuesIterator{util.NewImmutableMapIter(m)}
}
