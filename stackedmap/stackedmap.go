// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap implements a map with save-restore manner.
// Values put after a Push can be discarded all at once by popping back
// to the depth returned by that Push.
package stackedmap

// MapGetter defines the getter method of the underlying data source.
type MapGetter func(key any) (value any, exist bool)

// JournalEntry entry of journal.
type JournalEntry struct {
	Key   any
	Value any
}

type level struct {
	kvs     map[any]any
	journal []*JournalEntry
}

// StackedMap maintains maps in a stack.
// Each map inherits the key/value pairs of the maps at lower levels.
type StackedMap struct {
	src    MapGetter
	levels []*level
}

// New creates an instance of StackedMap.
// src acts as the source of data.
func New(src MapGetter) *StackedMap {
	return &StackedMap{src: src}
}

// Depth returns the depth of the stack.
func (sm *StackedMap) Depth() int {
	return len(sm.levels)
}

// Push pushes a new map on the stack.
// It returns the stack depth before push.
func (sm *StackedMap) Push() int {
	sm.levels = append(sm.levels, &level{kvs: make(map[any]any)})
	return len(sm.levels) - 1
}

// Pop pops the map at the top of the stack.
// It reverts all Put operations since the last Push.
func (sm *StackedMap) Pop() {
	sm.levels = sm.levels[:len(sm.levels)-1]
}

// PopTo pops maps until the stack depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	sm.levels = sm.levels[:depth]
}

// Get gets the value for the given key.
// The second return value indicates whether the key was found.
func (sm *StackedMap) Get(key any) (any, bool) {
	for i := len(sm.levels) - 1; i >= 0; i-- {
		if v, ok := sm.levels[i].kvs[key]; ok {
			return v, true
		}
	}
	return sm.src(key)
}

// Put puts key value into the map at the stack top.
// It panics if the stack is empty.
func (sm *StackedMap) Put(key, value any) {
	top := sm.levels[len(sm.levels)-1]
	top.kvs[key] = value
	top.journal = append(top.journal, &JournalEntry{Key: key, Value: value})
}

// Journal traverses all Put operations not yet popped, in order.
// The traversal stops if cb returns false.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	for _, lvl := range sm.levels {
		for _, entry := range lvl.journal {
			if !cb(entry.Key, entry.Value) {
				return
			}
		}
	}
}
