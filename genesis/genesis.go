// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis bootstraps an initial program state from a declarative
// document: account balances, farms with their tiers and asset bonuses, and
// pre-funded reward escrows.
package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/fluidlabs/fluid-staking/fluid"
)

// Well-known service addresses. The token ledger and the staking program keep
// their records in these namespaces.
var (
	LedgerAddress  = fluid.BytesToAddress([]byte("token-ledger"))
	StakingAddress = fluid.BytesToAddress([]byte("staking"))
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	LaunchTime uint64    `json:"launchTime"`
	Accounts   []Account `json:"accounts"`
	Farms      []Farm    `json:"farms"`
}

// Account is an account funded in the genesis state.
type Account struct {
	Address fluid.Address    `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
	Tokens  []TokenBalance   `json:"tokens"`
}

// TokenBalance is an asset balance minted to a genesis account.
type TokenBalance struct {
	Asset  fluid.Address    `json:"asset"`
	Amount *HexOrDecimal256 `json:"amount"`
}

// Farm is a staking farm created in the genesis state.
type Farm struct {
	Administrator fluid.Address    `json:"administrator"`
	RewardAsset   fluid.Address    `json:"rewardAsset"`
	TickLength    uint64           `json:"tickLength"`
	Nonce         uint64           `json:"nonce"`
	EscrowFund    *HexOrDecimal256 `json:"escrowFund"`
	Tiers         []Tier           `json:"tiers"`
	Bonuses       []Bonus          `json:"bonuses"`
}

// Tier is a reward tier registered under a genesis farm.
type Tier struct {
	LockPeriod    uint64           `json:"lockPeriod"`
	RewardPerTick *HexOrDecimal256 `json:"rewardPerTick"`
}

// Bonus registers a stakeable asset under a genesis farm.
type Bonus struct {
	Asset        fluid.Address    `json:"asset"`
	BonusPerTick *HexOrDecimal256 `json:"bonusPerTick"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json.Marshaler
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// Int returns the wrapped value as *big.Int, nil-safe.
func (i *HexOrDecimal256) Int() *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return (*big.Int)(i)
}

// Sign is nil-safe big.Int.Sign.
func (i *HexOrDecimal256) Sign() int {
	if i == nil {
		return 0
	}
	return (*big.Int)(i).Sign()
}
