// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/lvldb"
	"github.com/fluidlabs/fluid-staking/state"
	"github.com/fluidlabs/fluid-staking/staking"
	"github.com/fluidlabs/fluid-staking/token"
)

var (
	admin       = fluid.BytesToAddress([]byte("admin"))
	staker      = fluid.BytesToAddress([]byte("staker"))
	rewardAsset = fluid.BytesToAddress([]byte("reward-asset"))
	stakeAsset  = fluid.BytesToAddress([]byte("stake-asset"))
)

type env struct {
	t       *testing.T
	state   *state.State
	ledger  *token.Ledger
	staking *staking.Staking
	farm    fluid.Address
}

// newEnv builds a funded farm with no tiers or bonuses yet.
// tickLength is in seconds; accounts are generously funded so that storage
// deposits never get in the way of what a test actually checks.
func newEnv(t *testing.T, tickLength uint64) *env {
	kv, err := lvldb.NewMem()
	require.Nil(t, err)
	st := state.New(kv)

	ledger := token.New(fluid.BytesToAddress([]byte("ledger")), st)
	stk := staking.New(fluid.BytesToAddress([]byte("staking")), st, ledger)

	for _, addr := range []fluid.Address{admin, staker} {
		require.Nil(t, st.SetBalance(addr, new(big.Int).Mul(staking.StorageDeposit(), big.NewInt(100))))
	}
	require.Nil(t, ledger.Mint(rewardAsset, admin, big.NewInt(1_000_000)))
	require.Nil(t, ledger.Mint(stakeAsset, staker, big.NewInt(10)))

	farm, err := stk.AddFarm(admin, rewardAsset, tickLength, 0)
	require.Nil(t, err)
	require.Nil(t, stk.FundFarm(admin, farm, rewardAsset, big.NewInt(1_000_000)))

	return &env{t, st, ledger, stk, farm}
}

func (e *env) addTier(lockPeriod uint64, rewardPerTick int64) fluid.Bytes32 {
	tier, err := e.staking.AddTier(admin, e.farm, lockPeriod, big.NewInt(rewardPerTick))
	require.Nil(e.t, err)
	return tier
}

func (e *env) addBonus(bonusPerTick int64) {
	require.Nil(e.t, e.staking.AddAssetBonus(admin, e.farm, stakeAsset, big.NewInt(bonusPerTick)))
}

func (e *env) stake(tier fluid.Bytes32, now uint64) fluid.Bytes32 {
	id, err := e.staking.Stake(staker, stakeAsset, tier, e.farm, now)
	require.Nil(e.t, err)
	return id
}

func (e *env) rewardBalance(addr fluid.Address) *big.Int {
	bal, err := e.ledger.BalanceOf(rewardAsset, addr)
	require.Nil(e.t, err)
	return bal
}

func (e *env) stakeBalance(addr fluid.Address) *big.Int {
	bal, err := e.ledger.BalanceOf(stakeAsset, addr)
	require.Nil(e.t, err)
	return bal
}
