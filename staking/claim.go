// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/token"
)

// Claim pays out the reward accrued by the staker's position since the last
// claim and returns the paid amount.
//
// Accrual is discretized to the farm's tick length: only whole elapsed ticks
// pay out, and the sub-tick remainder is preserved by rolling the claim
// timestamp back to the last tick boundary rather than to now. For a locked
// position the lifetime payout is capped at the reward of the whole ticks
// that fit inside the lock period; once the cap is reached further claims pay
// zero. Payment is made from the farm's escrow in the farm's reward asset.
func (s *Staking) Claim(staker fluid.Address, position fluid.Bytes32, farm fluid.Address, now uint64) (*big.Int, error) {
	farmEntry, err := s.GetFarm(farm)
	if err != nil {
		return nil, err
	}
	if farmEntry.IsEmpty() {
		return nil, ErrUnauthorized
	}

	entry, err := s.GetPositionByID(position)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() || entry.Staker != staker {
		return nil, ErrKeyMismatch
	}

	elapsed := now - entry.ClaimedAt
	remainder := elapsed % farmEntry.TickLength
	ticks := (elapsed - remainder) / farmEntry.TickLength

	reward := new(big.Int).Mul(entry.RewardPerTick, new(big.Int).SetUint64(ticks))
	if entry.LockPeriod > 0 {
		maxTicks := entry.LockPeriod / farmEntry.TickLength
		maxReward := new(big.Int).Mul(entry.RewardPerTick, new(big.Int).SetUint64(maxTicks))
		if new(big.Int).Add(reward, entry.ClaimedTotal).Cmp(maxReward) >= 0 {
			// give them everything that is left
			reward.Sub(maxReward, entry.ClaimedTotal)
			if reward.Sign() < 0 {
				reward.SetUint64(0)
			}
		}
	}

	auth := token.DerivedAuthority(farmSeeds(farmEntry.Administrator, farmEntry.Nonce)...)
	if err := s.ledger.Transfer(auth, farmEntry.RewardAsset, farm, staker, reward); err != nil {
		return nil, err
	}

	entry.ClaimedAt = now - remainder
	entry.ClaimedTotal = new(big.Int).Add(entry.ClaimedTotal, reward)
	if err := s.setPosition(entry); err != nil {
		return nil, err
	}

	logger.Debug("reward claimed", "staker", staker, "position", position, "farm", farm, "reward", reward)
	return reward, nil
}
