// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := Make[int](10)
	assert.Len(t, s, 0)

	s.Insert(3, 7, 3)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))
}

func TestInsertNew(t *testing.T) {
	s := Make[string]()
	assert.True(t, s.InsertNew("x"))
	assert.False(t, s.InsertNew("x"))
	assert.True(t, s.InsertNew("y"))
	assert.Len(t, s, 2)

	type key struct{ id int }
	a, b := &key{1}, &key{1}
	pointers := Make[*key]()
	assert.True(t, pointers.InsertNew(a))
	assert.True(t, pointers.InsertNew(b), "distinct pointers are distinct keys, even with equal contents")
	assert.False(t, pointers.InsertNew(a))
}
