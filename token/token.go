// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"
	"math/big"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/state"
)

var (
	// ErrInsufficientFunds is returned when a transfer exceeds the sender balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized is returned when the presented authority does not control
	// the sending account.
	ErrUnauthorized = errors.New("authority mismatch")
	// ErrNegativeAmount is returned on negative transfer or mint amounts.
	ErrNegativeAmount = errors.New("negative amount")
)

func balanceKey(asset, holder fluid.Address) fluid.Bytes32 {
	return fluid.Blake2b([]byte("balance"), asset.Bytes(), holder.Bytes())
}

func supplyKey(asset fluid.Address) fluid.Bytes32 {
	return fluid.Blake2b([]byte("supply"), asset.Bytes())
}

// Ledger tracks balances of multiple fungible assets and moves them between
// accounts on command of an authorized signer.
type Ledger struct {
	addr  fluid.Address
	state *state.State
}

// New create a new ledger instance bound to the given address.
func New(addr fluid.Address, state *state.State) *Ledger {
	return &Ledger{addr, state}
}

func (l *Ledger) getAmount(key fluid.Bytes32) (*big.Int, error) {
	amount := new(big.Int)
	if err := l.state.GetStructuredStorage(l.addr, key, amount); err != nil {
		return nil, err
	}
	return amount, nil
}

func (l *Ledger) setAmount(key fluid.Bytes32, amount *big.Int) error {
	if amount.Sign() == 0 {
		return l.state.SetStructuredStorage(l.addr, key, nil)
	}
	return l.state.SetStructuredStorage(l.addr, key, amount)
}

// BalanceOf returns the balance of asset held by holder.
func (l *Ledger) BalanceOf(asset, holder fluid.Address) (*big.Int, error) {
	return l.getAmount(balanceKey(asset, holder))
}

// TotalSupply returns the total minted supply of asset.
func (l *Ledger) TotalSupply(asset fluid.Address) (*big.Int, error) {
	return l.getAmount(supplyKey(asset))
}

// Mint creates amount units of asset on the account of to.
func (l *Ledger) Mint(asset, to fluid.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	bal, err := l.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	if err := l.setAmount(balanceKey(asset, to), new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	supply, err := l.TotalSupply(asset)
	if err != nil {
		return err
	}
	return l.setAmount(supplyKey(asset), new(big.Int).Add(supply, amount))
}

// Transfer moves amount units of asset from one account to another.
//
// The presented authority must control the sending account: either it is the
// account itself, or it resolves to the account through seed derivation.
// A zero amount transfer is a no-op that still verifies the authority.
func (l *Ledger) Transfer(auth Authority, asset, from, to fluid.Address, amount *big.Int) error {
	if auth.Account() != from {
		return ErrUnauthorized
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}

	fromBal, err := l.BalanceOf(asset, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	toBal, err := l.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	if err := l.setAmount(balanceKey(asset, from), new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	return l.setAmount(balanceKey(asset, to), new(big.Int).Add(toBal, amount))
}
