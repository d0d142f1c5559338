// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidlabs/fluid-staking/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := map[string]string{"base": "from-src"}
	sm := stackedmap.New(func(key any) (any, bool) {
		v, ok := src[key.(string)]
		return v, ok
	})

	sm.Push()
	sm.Put("k1", "v1")

	v, ok := sm.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// falls through to the source
	v, ok = sm.Get("base")
	assert.True(t, ok)
	assert.Equal(t, "from-src", v)

	rev := sm.Push()
	sm.Put("k1", "v1'")
	sm.Put("k2", "v2")

	v, _ = sm.Get("k1")
	assert.Equal(t, "v1'", v)

	sm.PopTo(rev)

	v, _ = sm.Get("k1")
	assert.Equal(t, "v1", v)
	_, ok = sm.Get("k2")
	assert.False(t, ok)
}

func TestJournal(t *testing.T) {
	sm := stackedmap.New(func(key any) (any, bool) {
		return nil, false
	})

	sm.Push()
	sm.Put("k1", "v1")
	sm.Push()
	sm.Put("k2", "v2")
	sm.Put("k1", "v1'")

	seen := make(map[any]any)
	sm.Journal(func(k, v any) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[any]any{"k1": "v1'", "k2": "v2"}, seen)

	// early termination
	n := 0
	sm.Journal(func(k, v any) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}
