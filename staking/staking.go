// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/log"
	"github.com/fluidlabs/fluid-staking/state"
	"github.com/fluidlabs/fluid-staking/token"
)

var logger = log.WithContext("pkg", "staking")

// storageDeposit is charged from the payer for every record created and
// refunded to the closer when the record is deleted.
var storageDeposit = big.NewInt(1_000_000)

// StorageDeposit returns the deposit charged per created record.
func StorageDeposit() *big.Int {
	return new(big.Int).Set(storageDeposit)
}

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Staking implements the tiered, time-locked token-staking reward program.
//
// It maintains farms, their tier and asset-bonus registries and the open
// stake positions as records in its own storage namespace, and moves staked
// and reward funds through the token ledger. Each operation is a synchronous
// state transition; atomicity on failure is provided by the caller through
// state checkpoints.
type Staking struct {
	addr   fluid.Address
	state  *state.State
	ledger *token.Ledger
}

// New create a new instance.
func New(addr fluid.Address, state *state.State, ledger *token.Ledger) *Staking {
	return &Staking{addr, state, ledger}
}

func (s *Staking) chargeDeposit(payer fluid.Address) error {
	bal, err := s.state.GetBalance(payer)
	if err != nil {
		return err
	}
	if bal.Cmp(storageDeposit) < 0 {
		return errors.New("insufficient balance for storage deposit")
	}
	if err := s.state.SetBalance(payer, new(big.Int).Sub(bal, storageDeposit)); err != nil {
		return err
	}
	own, err := s.state.GetBalance(s.addr)
	if err != nil {
		return err
	}
	return s.state.SetBalance(s.addr, new(big.Int).Add(own, storageDeposit))
}

func (s *Staking) refundDeposit(to fluid.Address) error {
	own, err := s.state.GetBalance(s.addr)
	if err != nil {
		return err
	}
	if err := s.state.SetBalance(s.addr, new(big.Int).Sub(own, storageDeposit)); err != nil {
		return err
	}
	bal, err := s.state.GetBalance(to)
	if err != nil {
		return err
	}
	return s.state.SetBalance(to, new(big.Int).Add(bal, storageDeposit))
}
