// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fluidlabs/fluid-staking/fluid"
)

func (s *Staking) requireAdministrator(caller, farm fluid.Address) (*Farm, error) {
	entry, err := s.GetFarm(farm)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() || entry.Administrator != caller {
		return nil, ErrUnauthorized
	}
	return entry, nil
}

// AddTier creates a tier under the farm. The tier is immutable; its identity
// is derived from its defining values, so recreating the same tier fails.
func (s *Staking) AddTier(caller, farm fluid.Address, lockPeriod uint64, rewardPerTick *big.Int) (fluid.Bytes32, error) {
	if rewardPerTick == nil || rewardPerTick.Sign() < 0 {
		return fluid.Bytes32{}, errors.New("reward per tick must be non-negative")
	}
	if _, err := s.requireAdministrator(caller, farm); err != nil {
		return fluid.Bytes32{}, err
	}

	tier := TierID(farm, lockPeriod, rewardPerTick)
	entry, err := s.GetTier(tier)
	if err != nil {
		return fluid.Bytes32{}, err
	}
	if !entry.IsEmpty() {
		return fluid.Bytes32{}, ErrDuplicateRecord
	}

	if err := s.chargeDeposit(caller); err != nil {
		return fluid.Bytes32{}, err
	}
	if err := s.setTier(tier, &Tier{
		Farm:          farm,
		LockPeriod:    lockPeriod,
		RewardPerTick: rewardPerTick,
	}); err != nil {
		return fluid.Bytes32{}, err
	}

	logger.Debug("tier created", "farm", farm, "tier", tier, "lockPeriod", lockPeriod, "rewardPerTick", rewardPerTick)
	return tier, nil
}

// CloseTier deletes a tier, refunding its storage cost to the administrator.
// Open positions that snapshotted this tier's values are unaffected; closing
// only prevents new stakes against it.
func (s *Staking) CloseTier(caller, farm fluid.Address, tier fluid.Bytes32) error {
	if _, err := s.requireAdministrator(caller, farm); err != nil {
		return err
	}
	entry, err := s.GetTier(tier)
	if err != nil {
		return err
	}
	if entry.Farm != farm {
		return ErrUnauthorized
	}

	if err := s.deleteTier(tier); err != nil {
		return err
	}
	return s.refundDeposit(caller)
}

// AddAssetBonus registers asset as stakeable under the farm with the given
// flat per-tick bonus. At most one bonus exists per (farm, asset) pair.
func (s *Staking) AddAssetBonus(caller, farm, asset fluid.Address, bonusPerTick *big.Int) error {
	if bonusPerTick == nil || bonusPerTick.Sign() < 0 {
		return errors.New("bonus per tick must be non-negative")
	}
	if asset.IsZero() {
		return errors.New("asset must be set")
	}
	if _, err := s.requireAdministrator(caller, farm); err != nil {
		return err
	}

	entry, err := s.GetAssetBonus(farm, asset)
	if err != nil {
		return err
	}
	if !entry.IsEmpty() {
		return ErrDuplicateRecord
	}

	if err := s.chargeDeposit(caller); err != nil {
		return err
	}
	if err := s.setAssetBonus(farm, asset, &AssetBonus{
		Farm:         farm,
		Asset:        asset,
		BonusPerTick: bonusPerTick,
	}); err != nil {
		return err
	}

	logger.Debug("asset bonus created", "farm", farm, "asset", asset, "bonusPerTick", bonusPerTick)
	return nil
}

// RemoveAssetBonus deletes the bonus record for the (farm, asset) pair,
// refunding its storage cost to the administrator. Open positions keep the
// bonus they snapshotted.
func (s *Staking) RemoveAssetBonus(caller, farm, asset fluid.Address) error {
	if _, err := s.requireAdministrator(caller, farm); err != nil {
		return err
	}
	entry, err := s.GetAssetBonus(farm, asset)
	if err != nil {
		return err
	}
	if entry.Farm != farm {
		return ErrUnauthorized
	}

	if err := s.deleteAssetBonus(farm, asset); err != nil {
		return err
	}
	return s.refundDeposit(caller)
}
