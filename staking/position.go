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

// one unit of the staked asset moves per position
var stakeAmount = big.NewInt(1)

// Stake opens a position for the staker against the chosen tier, depositing
// one unit of asset into the farm's escrow for that asset.
//
// The tier must belong to the farm and the asset must be registered under the
// farm through an asset-bonus record. The tier's lock period and the combined
// reward rate are snapshotted into the position.
func (s *Staking) Stake(staker, asset fluid.Address, tier fluid.Bytes32, farm fluid.Address, now uint64) (fluid.Bytes32, error) {
	tierEntry, err := s.GetTier(tier)
	if err != nil {
		return fluid.Bytes32{}, err
	}
	if tierEntry.IsEmpty() || tierEntry.Farm != farm {
		return fluid.Bytes32{}, ErrUnauthorized
	}

	bonusEntry, err := s.GetAssetBonus(farm, asset)
	if err != nil {
		return fluid.Bytes32{}, err
	}
	if bonusEntry.IsEmpty() || bonusEntry.Asset != asset {
		return fluid.Bytes32{}, ErrUnauthorized
	}

	existing, err := s.GetPosition(asset, staker)
	if err != nil {
		return fluid.Bytes32{}, err
	}
	if !existing.IsEmpty() {
		return fluid.Bytes32{}, ErrDuplicateRecord
	}

	if err := s.chargeDeposit(staker); err != nil {
		return fluid.Bytes32{}, err
	}
	position := &Position{
		Staker:        staker,
		Asset:         asset,
		Tier:          tier,
		StakedAt:      now,
		ClaimedAt:     now,
		ClaimedTotal:  new(big.Int),
		LockPeriod:    tierEntry.LockPeriod,
		RewardPerTick: new(big.Int).Add(tierEntry.RewardPerTick, bonusEntry.BonusPerTick),
	}
	if err := s.setPosition(position); err != nil {
		return fluid.Bytes32{}, err
	}

	if err := s.ledger.Transfer(token.AccountAuthority(staker), asset, staker, farm, stakeAmount); err != nil {
		return fluid.Bytes32{}, err
	}

	id := PositionID(asset, staker)
	logger.Debug("position opened", "position", id, "staker", staker, "asset", asset, "farm", farm)
	return id, nil
}

// Unstake closes the given position, returning the deposited unit from the
// farm's escrow. It fails while the position's lock period has not fully
// elapsed. The position record is deleted and its storage cost refunded to
// the staker.
func (s *Staking) Unstake(staker, asset, farm fluid.Address, position fluid.Bytes32, now uint64) error {
	entry, err := s.GetPositionByID(position)
	if err != nil {
		return err
	}
	if entry.Asset != asset {
		return ErrMintMismatch
	}
	if entry.Staker != staker {
		return ErrKeyMismatch
	}
	if entry.Locked(now) {
		return ErrInvalidUnstake
	}

	farmEntry, err := s.GetFarm(farm)
	if err != nil {
		return err
	}
	if farmEntry.IsEmpty() {
		return ErrUnauthorized
	}

	// escrow-outbound, signed with the farm's derivation seeds
	auth := token.DerivedAuthority(farmSeeds(farmEntry.Administrator, farmEntry.Nonce)...)
	if err := s.ledger.Transfer(auth, asset, farm, staker, stakeAmount); err != nil {
		return err
	}

	if err := s.deletePosition(position); err != nil {
		return err
	}
	if err := s.refundDeposit(staker); err != nil {
		return err
	}

	logger.Debug("position closed", "staker", staker, "asset", asset, "farm", farm)
	return nil
}
