// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/lvldb"
	"github.com/fluidlabs/fluid-staking/state"
	"github.com/fluidlabs/fluid-staking/token"
)

func newLedger() *token.Ledger {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	return token.New(fluid.BytesToAddress([]byte("ledger")), st)
}

func TestMint(t *testing.T) {
	ledger := newLedger()

	asset := fluid.BytesToAddress([]byte("asset"))
	holder := fluid.BytesToAddress([]byte("holder"))

	bal, err := ledger.BalanceOf(asset, holder)
	assert.Nil(t, err)
	assert.Equal(t, 0, bal.Sign())

	assert.Nil(t, ledger.Mint(asset, holder, big.NewInt(100)))
	assert.Nil(t, ledger.Mint(asset, holder, big.NewInt(50)))

	bal, err = ledger.BalanceOf(asset, holder)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(150), bal)

	supply, err := ledger.TotalSupply(asset)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(150), supply)

	assert.Equal(t, token.ErrNegativeAmount, ledger.Mint(asset, holder, big.NewInt(-1)))
}

func TestTransfer(t *testing.T) {
	ledger := newLedger()

	asset := fluid.BytesToAddress([]byte("asset"))
	a := fluid.BytesToAddress([]byte("a"))
	b := fluid.BytesToAddress([]byte("b"))

	assert.Nil(t, ledger.Mint(asset, a, big.NewInt(100)))

	assert.Nil(t, ledger.Transfer(token.AccountAuthority(a), asset, a, b, big.NewInt(40)))

	balA, _ := ledger.BalanceOf(asset, a)
	balB, _ := ledger.BalanceOf(asset, b)
	assert.Equal(t, big.NewInt(60), balA)
	assert.Equal(t, big.NewInt(40), balB)

	// balances of other assets are untouched
	other := fluid.BytesToAddress([]byte("other"))
	bal, _ := ledger.BalanceOf(other, b)
	assert.Equal(t, 0, bal.Sign())

	err := ledger.Transfer(token.AccountAuthority(a), asset, a, b, big.NewInt(1000))
	assert.Equal(t, token.ErrInsufficientFunds, err)

	err = ledger.Transfer(token.AccountAuthority(b), asset, a, b, big.NewInt(1))
	assert.Equal(t, token.ErrUnauthorized, err)

	err = ledger.Transfer(token.AccountAuthority(a), asset, a, b, big.NewInt(-1))
	assert.Equal(t, token.ErrNegativeAmount, err)

	// zero amount and self transfers are no-ops
	assert.Nil(t, ledger.Transfer(token.AccountAuthority(a), asset, a, b, new(big.Int)))
	assert.Nil(t, ledger.Transfer(token.AccountAuthority(a), asset, a, a, big.NewInt(10)))
	balA, _ = ledger.BalanceOf(asset, a)
	assert.Equal(t, big.NewInt(60), balA)
}

func TestDerivedAuthority(t *testing.T) {
	ledger := newLedger()

	asset := fluid.BytesToAddress([]byte("asset"))
	seeds := [][]byte{[]byte("escrow"), []byte("n1")}
	escrow := fluid.DeriveAddress(seeds...)
	out := fluid.BytesToAddress([]byte("out"))

	assert.Nil(t, ledger.Mint(asset, escrow, big.NewInt(10)))

	// wrong seeds resolve to a different account
	err := ledger.Transfer(token.DerivedAuthority([]byte("escrow"), []byte("n2")), asset, escrow, out, big.NewInt(1))
	assert.Equal(t, token.ErrUnauthorized, err)

	assert.Nil(t, ledger.Transfer(token.DerivedAuthority(seeds...), asset, escrow, out, big.NewInt(1)))
	bal, _ := ledger.BalanceOf(asset, out)
	assert.Equal(t, big.NewInt(1), bal)
}
