// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidlabs/fluid-staking/kv"
)

func TestLevelDB(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	key := []byte("key")
	value := []byte("value")

	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))

	has, err := db.Has(key)
	assert.Nil(t, err)
	assert.False(t, has)

	assert.Nil(t, db.Put(key, value))

	got, err := db.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)

	assert.Nil(t, db.Delete(key))
	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))
}

func TestBatch(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	batch := db.NewBatch()
	assert.Nil(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.Nil(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible before write
	_, err = db.Get([]byte("k1"))
	assert.True(t, db.IsNotFound(err))

	assert.Nil(t, batch.Write())

	v1, err := db.Get([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), v1)
}

func TestIterator(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	assert.Nil(t, db.Put([]byte("a1"), []byte("1")))
	assert.Nil(t, db.Put([]byte("a2"), []byte("2")))
	assert.Nil(t, db.Put([]byte("b1"), []byte("3")))

	it := db.NewIterator(kv.Range{Start: []byte("a"), Limit: []byte("b")})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Nil(t, it.Error())
	assert.Equal(t, []string{"a1", "a2"}, keys)
}
