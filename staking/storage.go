// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/fluidlabs/fluid-staking/fluid"
)

var (
	seedFarm     = []byte("stake-farm")
	seedTier     = []byte("stake-tier")
	seedBonus    = []byte("stake-mint")
	seedPosition = []byte("stake-account")
)

func u64ToBytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// FarmID derives the farm address for the given administrator and nonce.
// The same seed tuple is the farm's signing capability over its escrow.
func FarmID(administrator fluid.Address, nonce uint64) fluid.Address {
	return fluid.DeriveAddress(seedFarm, administrator.Bytes(), u64ToBytes(nonce))
}

func farmSeeds(administrator fluid.Address, nonce uint64) [][]byte {
	return [][]byte{seedFarm, administrator.Bytes(), u64ToBytes(nonce)}
}

// TierID derives the tier identity from its defining values, scoped to a farm.
func TierID(farm fluid.Address, lockPeriod uint64, rewardPerTick *big.Int) fluid.Bytes32 {
	return fluid.Blake2b(seedTier, farm.Bytes(), u64ToBytes(lockPeriod), rewardPerTick.Bytes())
}

// PositionID derives the position identity for an (asset, staker) pair.
// At most one position exists per pair at a time.
func PositionID(asset, staker fluid.Address) fluid.Bytes32 {
	return fluid.Blake2b(seedPosition, asset.Bytes(), staker.Bytes())
}

func farmKey(farm fluid.Address) fluid.Bytes32 {
	return fluid.Blake2b(seedFarm, farm.Bytes())
}

func tierKey(tier fluid.Bytes32) fluid.Bytes32 {
	return fluid.Blake2b(seedTier, tier.Bytes())
}

func bonusKey(farm, asset fluid.Address) fluid.Bytes32 {
	return fluid.Blake2b(seedBonus, farm.Bytes(), asset.Bytes())
}

func positionKey(position fluid.Bytes32) fluid.Bytes32 {
	return fluid.Blake2b(seedPosition, position.Bytes())
}

func (s *Staking) getStorage(key fluid.Bytes32, val any) error {
	return s.state.GetStructuredStorage(s.addr, key, val)
}

func (s *Staking) setStorage(key fluid.Bytes32, val any) error {
	return s.state.SetStructuredStorage(s.addr, key, val)
}

// GetFarm retrieves the farm record at the given farm address.
// Missing farms are returned as empty records.
func (s *Staking) GetFarm(farm fluid.Address) (*Farm, error) {
	var entry Farm
	if err := s.getStorage(farmKey(farm), &entry); err != nil {
		return nil, errors.Wrap(err, "failed to get farm")
	}
	return &entry, nil
}

func (s *Staking) setFarm(farm fluid.Address, entry *Farm) error {
	return errors.Wrap(s.setStorage(farmKey(farm), entry), "failed to set farm")
}

// GetTier retrieves the tier record with the given identity.
func (s *Staking) GetTier(tier fluid.Bytes32) (*Tier, error) {
	var entry Tier
	if err := s.getStorage(tierKey(tier), &entry); err != nil {
		return nil, errors.Wrap(err, "failed to get tier")
	}
	return &entry, nil
}

func (s *Staking) setTier(tier fluid.Bytes32, entry *Tier) error {
	return errors.Wrap(s.setStorage(tierKey(tier), entry), "failed to set tier")
}

func (s *Staking) deleteTier(tier fluid.Bytes32) error {
	return errors.Wrap(s.setStorage(tierKey(tier), nil), "failed to delete tier")
}

// GetAssetBonus retrieves the bonus record for the (farm, asset) pair.
func (s *Staking) GetAssetBonus(farm, asset fluid.Address) (*AssetBonus, error) {
	var entry AssetBonus
	if err := s.getStorage(bonusKey(farm, asset), &entry); err != nil {
		return nil, errors.Wrap(err, "failed to get asset bonus")
	}
	return &entry, nil
}

func (s *Staking) setAssetBonus(farm, asset fluid.Address, entry *AssetBonus) error {
	return errors.Wrap(s.setStorage(bonusKey(farm, asset), entry), "failed to set asset bonus")
}

func (s *Staking) deleteAssetBonus(farm, asset fluid.Address) error {
	return errors.Wrap(s.setStorage(bonusKey(farm, asset), nil), "failed to delete asset bonus")
}

// GetPositionByID retrieves the stake position record with the given identity.
func (s *Staking) GetPositionByID(id fluid.Bytes32) (*Position, error) {
	var entry Position
	if err := s.getStorage(positionKey(id), &entry); err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return &entry, nil
}

// GetPosition retrieves the stake position for the (asset, staker) pair.
func (s *Staking) GetPosition(asset, staker fluid.Address) (*Position, error) {
	return s.GetPositionByID(PositionID(asset, staker))
}

func (s *Staking) setPosition(entry *Position) error {
	key := positionKey(PositionID(entry.Asset, entry.Staker))
	return errors.Wrap(s.setStorage(key, entry), "failed to set position")
}

func (s *Staking) deletePosition(id fluid.Bytes32) error {
	return errors.Wrap(s.setStorage(positionKey(id), nil), "failed to delete position")
}
