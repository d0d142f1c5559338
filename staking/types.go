// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/fluidlabs/fluid-staking/fluid"
)

// Farm is the root configuration entity of one staking program.
// It is read-only after creation.
type Farm struct {
	Administrator fluid.Address // the only account allowed to mutate the farm's children
	RewardAsset   fluid.Address // the asset rewards are paid in
	TickLength    uint64        // seconds per reward tick, always > 0
	Nonce         uint64        // derivation nonce the farm address was derived with
}

// IsEmpty returns whether the entry can be treated as empty.
func (f *Farm) IsEmpty() bool {
	return f.TickLength == 0
}

// Tier is an administrator-defined (lock period, reward rate) pair.
// Immutable once created.
type Tier struct {
	Farm          fluid.Address // the owning farm
	LockPeriod    uint64        // minimum open duration in seconds, zero means unlocked
	RewardPerTick *big.Int      // reward asset units payable per elapsed tick
}

// IsEmpty returns whether the entry can be treated as empty.
func (t *Tier) IsEmpty() bool {
	return t.Farm.IsZero()
}

// AssetBonus registers an asset as stakeable under a farm and grants an
// additional flat reward bonus for staking it. At most one exists per
// (farm, asset) pair.
type AssetBonus struct {
	Farm         fluid.Address
	Asset        fluid.Address
	BonusPerTick *big.Int
}

// IsEmpty returns whether the entry can be treated as empty.
func (b *AssetBonus) IsEmpty() bool {
	return b.Farm.IsZero()
}

// Position is one active staking deposit. The tier's lock period and reward
// rate plus the asset bonus are snapshotted into the position at open time,
// so later tier or bonus changes never affect it.
type Position struct {
	Staker fluid.Address
	Asset  fluid.Address
	Tier   fluid.Bytes32

	StakedAt  uint64 // open timestamp
	ClaimedAt uint64 // advances in whole tick multiples only

	ClaimedTotal *big.Int

	LockPeriod    uint64   // snapshot of the tier's lock period
	RewardPerTick *big.Int // snapshot of tier reward + asset bonus
}

// IsEmpty returns whether the entry can be treated as empty.
func (p *Position) IsEmpty() bool {
	return p.Staker.IsZero()
}

// Locked returns whether the position's lock period has not yet fully
// elapsed at the given time.
func (p *Position) Locked(now uint64) bool {
	if p.LockPeriod == 0 {
		return false
	}
	return p.StakedAt+p.LockPeriod > now
}
