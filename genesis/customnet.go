// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"

	"github.com/fluidlabs/fluid-staking/state"
	"github.com/fluidlabs/fluid-staking/staking"
	"github.com/fluidlabs/fluid-staking/token"
)

// NewCustomNet create custom genesis.
func NewCustomNet(gen *CustomGenesis) (*Builder, error) {
	launchTime := gen.LaunchTime

	for _, farm := range gen.Farms {
		if farm.TickLength == 0 {
			return nil, fmt.Errorf("farm of %s: tickLength must not be 0", farm.Administrator)
		}
		if farm.RewardAsset.IsZero() {
			return nil, fmt.Errorf("farm of %s: rewardAsset must be set", farm.Administrator)
		}
		if len(farm.Tiers) == 0 {
			return nil, fmt.Errorf("farm of %s: at least one tier", farm.Administrator)
		}
	}

	builder := new(Builder).
		LaunchTime(launchTime).
		State(func(state *state.State) error {
			ledger := token.New(LedgerAddress, state)

			for _, a := range gen.Accounts {
				if a.Balance == nil && len(a.Tokens) == 0 {
					return fmt.Errorf("%s: balance or tokens must be set", a.Address)
				}
				if a.Balance != nil {
					if a.Balance.Sign() < 0 {
						return fmt.Errorf("%s: balance must be a non-negative integer", a.Address)
					}
					if err := state.SetBalance(a.Address, a.Balance.Int()); err != nil {
						return err
					}
				}
				for _, t := range a.Tokens {
					if t.Amount.Sign() < 0 {
						return fmt.Errorf("%s: token amount must be a non-negative integer", a.Address)
					}
					if err := ledger.Mint(t.Asset, a.Address, t.Amount.Int()); err != nil {
						return err
					}
				}
			}
			return nil
		}).
		State(func(state *state.State) error {
			ledger := token.New(LedgerAddress, state)
			stk := staking.New(StakingAddress, state, ledger)

			for _, f := range gen.Farms {
				farm, err := stk.AddFarm(f.Administrator, f.RewardAsset, f.TickLength, f.Nonce)
				if err != nil {
					return fmt.Errorf("farm of %s: %w", f.Administrator, err)
				}
				for _, t := range f.Tiers {
					if _, err := stk.AddTier(f.Administrator, farm, t.LockPeriod, t.RewardPerTick.Int()); err != nil {
						return fmt.Errorf("farm %s: %w", farm, err)
					}
				}
				for _, b := range f.Bonuses {
					if err := stk.AddAssetBonus(f.Administrator, farm, b.Asset, b.BonusPerTick.Int()); err != nil {
						return fmt.Errorf("farm %s: %w", farm, err)
					}
				}
				if f.EscrowFund.Sign() > 0 {
					if err := stk.FundFarm(f.Administrator, farm, f.RewardAsset, f.EscrowFund.Int()); err != nil {
						return fmt.Errorf("farm %s: %w", farm, err)
					}
				}
			}
			return nil
		})

	return builder, nil
}
