// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/kv"
	"github.com/fluidlabs/fluid-staking/stackedmap"
)

var (
	storagePrefix = []byte("s")
	balancePrefix = []byte("b")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

type (
	storageKey struct {
		addr fluid.Address
		key  fluid.Bytes32
	}
	balanceKey fluid.Address
)

// State manages typed records and balances addressed by (address, key).
//
// All mutations are journaled. A checkpoint taken via NewCheckpoint can be
// reverted with RevertTo, which makes every operation built on top of it
// all-or-nothing. Commit stages the journal into the backing kv store.
type State struct {
	kv  kv.GetPutter
	sm  *stackedmap.StackedMap
	err error
}

// New create state object.
func New(kv kv.GetPutter) *State {
	state := State{kv: kv}
	state.sm = stackedmap.New(func(key any) (any, bool) {
		return state.cacheGetter(key)
	})
	// base level
	state.sm.Push()
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool) {
	switch k := key.(type) {
	case storageKey:
		data, err := s.kv.Get(storageDBKey(k))
		if err != nil {
			if !s.kv.IsNotFound(err) {
				s.setError(err)
			}
			return []byte(nil), true
		}
		return data, true
	case balanceKey:
		data, err := s.kv.Get(balanceDBKey(k))
		if err != nil {
			if !s.kv.IsNotFound(err) {
				s.setError(err)
			}
			return &big.Int{}, true
		}
		var bal big.Int
		if err := rlp.DecodeBytes(data, &bal); err != nil {
			s.setError(err)
			return &big.Int{}, true
		}
		return &bal, true
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	if s.err != nil {
		return &Error{s.err}
	}
	return nil
}

// GetBalance returns the native balance for the given address.
func (s *State) GetBalance(addr fluid.Address) (*big.Int, error) {
	v, _ := s.sm.Get(balanceKey(addr))
	if s.err != nil {
		return nil, &Error{s.err}
	}
	return v.(*big.Int), nil
}

// SetBalance set the native balance for the given address.
func (s *State) SetBalance(addr fluid.Address, balance *big.Int) error {
	s.sm.Put(balanceKey(addr), balance)
	return s.Err()
}

// GetRawStorage returns the storage value in rlp raw for the given address and key.
func (s *State) GetRawStorage(addr fluid.Address, key fluid.Bytes32) ([]byte, error) {
	v, _ := s.sm.Get(storageKey{addr, key})
	if s.err != nil {
		return nil, &Error{s.err}
	}
	return v.([]byte), nil
}

// SetRawStorage set the storage value in rlp raw.
// A nil or empty raw deletes the record.
func (s *State) SetRawStorage(addr fluid.Address, key fluid.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// An empty encoded value deletes the record.
func (s *State) EncodeStorage(addr fluid.Address, key fluid.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return s.Err()
}

// DecodeStorage get and decode storage value.
// The dec method receives nil raw if the record does not exist.
func (s *State) DecodeStorage(addr fluid.Address, key fluid.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStructuredStorage get and decode the storage value at key into val.
// If the record does not exist, val is left untouched.
func (s *State) GetStructuredStorage(addr fluid.Address, key fluid.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage encode val and store it at key.
// A nil val deletes the record.
func (s *State) SetStructuredStorage(addr fluid.Address, key fluid.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if val == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(val)
	})
}

// HasStorage returns whether a record exists at key.
func (s *State) HasStorage(addr fluid.Address, key fluid.Bytes32) (bool, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit stages all journaled changes and writes them to the backing kv store.
func (s *State) Commit() error {
	if s.err != nil {
		return &Error{s.err}
	}

	batch := s.kv.NewBatch()
	var err error
	s.sm.Journal(func(key, value any) bool {
		switch k := key.(type) {
		case storageKey:
			raw := value.([]byte)
			if len(raw) == 0 {
				err = batch.Delete(storageDBKey(k))
			} else {
				err = batch.Put(storageDBKey(k), raw)
			}
		case balanceKey:
			bal := value.(*big.Int)
			if bal.Sign() == 0 {
				err = batch.Delete(balanceDBKey(k))
			} else {
				var data []byte
				if data, err = rlp.EncodeToBytes(bal); err == nil {
					err = batch.Put(balanceDBKey(k), data)
				}
			}
		}
		return err == nil
	})
	if err != nil {
		return &Error{err}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}

func storageDBKey(k storageKey) []byte {
	key := make([]byte, 0, len(storagePrefix)+fluid.AddressLength+32)
	key = append(key, storagePrefix...)
	key = append(key, k.addr.Bytes()...)
	return append(key, k.key.Bytes()...)
}

func balanceDBKey(k balanceKey) []byte {
	key := make([]byte, 0, len(balancePrefix)+fluid.AddressLength)
	key = append(key, balancePrefix...)
	return append(key, fluid.Address(k).Bytes()...)
}
