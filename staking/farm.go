// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/token"
)

// AddFarm creates a new farm for the administrator at the address derived
// from (administrator, nonce). The farm is read-only after creation.
func (s *Staking) AddFarm(administrator, rewardAsset fluid.Address, tickLength, nonce uint64) (fluid.Address, error) {
	if tickLength == 0 {
		return fluid.Address{}, errors.New("tick length must be positive")
	}
	if rewardAsset.IsZero() {
		return fluid.Address{}, errors.New("reward asset must be set")
	}

	farm := FarmID(administrator, nonce)
	entry, err := s.GetFarm(farm)
	if err != nil {
		return fluid.Address{}, err
	}
	if !entry.IsEmpty() {
		return fluid.Address{}, ErrDuplicateRecord
	}

	if err := s.chargeDeposit(administrator); err != nil {
		return fluid.Address{}, err
	}
	if err := s.setFarm(farm, &Farm{
		Administrator: administrator,
		RewardAsset:   rewardAsset,
		TickLength:    tickLength,
		Nonce:         nonce,
	}); err != nil {
		return fluid.Address{}, err
	}

	logger.Debug("farm created", "farm", farm, "administrator", administrator, "tickLength", tickLength)
	return farm, nil
}

// FundFarm moves amount units of the farm's reward asset from the caller's
// account into the farm's reward escrow. Only the farm administrator may
// fund, with their own signature.
func (s *Staking) FundFarm(caller, farm, asset fluid.Address, amount *big.Int) error {
	entry, err := s.GetFarm(farm)
	if err != nil {
		return err
	}
	if entry.IsEmpty() || entry.Administrator != caller {
		return ErrUnauthorized
	}
	if asset != entry.RewardAsset {
		return ErrMintMismatch
	}

	if err := s.ledger.Transfer(token.AccountAuthority(caller), asset, caller, farm, amount); err != nil {
		return err
	}

	logger.Debug("farm funded", "farm", farm, "amount", amount)
	return nil
}
