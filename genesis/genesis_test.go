// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidlabs/fluid-staking/genesis"
	"github.com/fluidlabs/fluid-staking/lvldb"
	"github.com/fluidlabs/fluid-staking/staking"
	"github.com/fluidlabs/fluid-staking/token"
)

const customGenesisJSON = `{
	"launchTime": 1700000000,
	"accounts": [
		{
			"address": "0x0000000000000000000000000000000061646d31",
			"balance": "100000000",
			"tokens": [
				{"asset": "0x0000000000000000000000000000007265776172", "amount": "0x3e8"}
			]
		},
		{
			"address": "0x0000000000000000000000000000007374616b72",
			"balance": "10000000",
			"tokens": [
				{"asset": "0x00000000000000000000000000000000006c7074", "amount": "5"}
			]
		}
	],
	"farms": [
		{
			"administrator": "0x0000000000000000000000000000000061646d31",
			"rewardAsset": "0x0000000000000000000000000000007265776172",
			"tickLength": 60,
			"nonce": 0,
			"escrowFund": "500",
			"tiers": [
				{"lockPeriod": 600, "rewardPerTick": "10"},
				{"lockPeriod": 0, "rewardPerTick": "2"}
			],
			"bonuses": [
				{"asset": "0x00000000000000000000000000000000006c7074", "bonusPerTick": "1"}
			]
		}
	]
}`

func TestNewCustomNet(t *testing.T) {
	var gen genesis.CustomGenesis
	require.Nil(t, json.Unmarshal([]byte(customGenesisJSON), &gen))

	builder, err := genesis.NewCustomNet(&gen)
	require.Nil(t, err)

	kv, err := lvldb.NewMem()
	require.Nil(t, err)
	st, err := builder.Build(kv)
	require.Nil(t, err)

	adminAddr := gen.Farms[0].Administrator
	reward := gen.Farms[0].RewardAsset

	ledger := token.New(genesis.LedgerAddress, st)
	stk := staking.New(genesis.StakingAddress, st, ledger)

	farm := staking.FarmID(adminAddr, 0)
	entry, err := stk.GetFarm(farm)
	assert.Nil(t, err)
	assert.False(t, entry.IsEmpty())
	assert.Equal(t, uint64(60), entry.TickLength)

	// escrow funded out of the administrator's minted tokens
	escrow, err := ledger.BalanceOf(reward, farm)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(500), escrow)
	adminBal, err := ledger.BalanceOf(reward, adminAddr)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(500), adminBal)

	tier, err := stk.GetTier(staking.TierID(farm, 600, big.NewInt(10)))
	assert.Nil(t, err)
	assert.False(t, tier.IsEmpty())

	bonus, err := stk.GetAssetBonus(farm, gen.Farms[0].Bonuses[0].Asset)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1), bonus.BonusPerTick)

	// rebuilding over the same store collides with the committed records
	_, err = builder.Build(kv)
	assert.NotNil(t, err)
}

func TestNewCustomNetValidation(t *testing.T) {
	var gen genesis.CustomGenesis
	require.Nil(t, json.Unmarshal([]byte(customGenesisJSON), &gen))

	broken := gen
	broken.Farms = append([]genesis.Farm{}, gen.Farms...)
	broken.Farms[0].TickLength = 0
	_, err := genesis.NewCustomNet(&broken)
	assert.NotNil(t, err)

	broken.Farms[0].TickLength = 60
	broken.Farms[0].Tiers = nil
	_, err = genesis.NewCustomNet(&broken)
	assert.NotNil(t, err)
}
