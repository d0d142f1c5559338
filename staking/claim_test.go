// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/staking"
)

func TestClaimUnlocked(t *testing.T) {
	e := newEnv(t, 30)
	tier := e.addTier(0, 5)
	e.addBonus(0)
	id := e.stake(tier, 0)

	// 95s elapsed, 3 whole ticks pay out, 5s remainder carries over
	reward, err := e.staking.Claim(staker, id, e.farm, 95)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(15), reward)
	assert.Equal(t, big.NewInt(15), e.rewardBalance(staker))

	position, err := e.staking.GetPosition(stakeAsset, staker)
	assert.Nil(t, err)
	assert.Equal(t, uint64(90), position.ClaimedAt)
	assert.Equal(t, big.NewInt(15), position.ClaimedTotal)

	// claiming again inside the same tick pays nothing and keeps the marker
	reward, err = e.staking.Claim(staker, id, e.farm, 95)
	assert.Nil(t, err)
	assert.Equal(t, 0, reward.Sign())

	position, err = e.staking.GetPosition(stakeAsset, staker)
	assert.Nil(t, err)
	assert.Equal(t, uint64(90), position.ClaimedAt)

	// the carried 5s count toward the next tick
	reward, err = e.staking.Claim(staker, id, e.farm, 120)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(5), reward)
}

func TestClaimLockCap(t *testing.T) {
	e := newEnv(t, 60)
	tier := e.addTier(600, 10)
	e.addBonus(0)
	id := e.stake(tier, 0)

	// far beyond the lock period, payout is capped at the lock's worth
	reward, err := e.staking.Claim(staker, id, e.farm, 3600)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), reward)

	// the cap is lifetime, further claims pay zero
	reward, err = e.staking.Claim(staker, id, e.farm, 7200)
	assert.Nil(t, err)
	assert.Equal(t, 0, reward.Sign())

	position, err := e.staking.GetPosition(stakeAsset, staker)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), position.ClaimedTotal)
}

func TestClaimIncremental(t *testing.T) {
	// claiming every tick accumulates to the same total as one late claim
	one := newEnv(t, 60)
	tier := one.addTier(600, 10)
	one.addBonus(0)
	id := one.stake(tier, 0)

	total := new(big.Int)
	for now := uint64(60); now <= 600; now += 60 {
		reward, err := one.staking.Claim(staker, id, one.farm, now)
		assert.Nil(t, err)
		total.Add(total, reward)
	}

	late := newEnv(t, 60)
	tier = late.addTier(600, 10)
	late.addBonus(0)
	id = late.stake(tier, 0)

	reward, err := late.staking.Claim(staker, id, late.farm, 600)
	assert.Nil(t, err)
	assert.Equal(t, reward, total)
	assert.Equal(t, big.NewInt(100), total)
}

func TestClaimBonusSnapshot(t *testing.T) {
	e := newEnv(t, 60)
	tier := e.addTier(0, 5)
	e.addBonus(3)
	id := e.stake(tier, 0)

	// later bonus changes don't touch the open position
	assert.Nil(t, e.staking.RemoveAssetBonus(admin, e.farm, stakeAsset))
	assert.Nil(t, e.staking.AddAssetBonus(admin, e.farm, stakeAsset, big.NewInt(100)))

	reward, err := e.staking.Claim(staker, id, e.farm, 60)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(8), reward)
}

func TestClaimErrors(t *testing.T) {
	e := newEnv(t, 60)
	tier := e.addTier(0, 5)
	e.addBonus(0)
	id := e.stake(tier, 0)

	_, err := e.staking.Claim(staker, id, fluid.BytesToAddress([]byte("nope")), 60)
	assert.Equal(t, staking.ErrUnauthorized, err)

	_, err = e.staking.Claim(admin, id, e.farm, 60)
	assert.Equal(t, staking.ErrKeyMismatch, err)
}

func TestClaimDrainsEscrow(t *testing.T) {
	e := newEnv(t, 60)
	tier := e.addTier(0, 1_000_000)
	e.addBonus(0)
	id := e.stake(tier, 0)

	// first claim consumes the whole escrow
	reward, err := e.staking.Claim(staker, id, e.farm, 60)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1_000_000), reward)

	// an empty escrow cannot pay the next tick
	_, err = e.staking.Claim(staker, id, e.farm, 120)
	assert.NotNil(t, err)
}
