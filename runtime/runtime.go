// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime drives staking operations against a state instance with
// all-or-nothing semantics. Each invocation runs inside a state checkpoint
// and is fully reverted if any step fails, so partially applied record
// mutations and balance moves never become observable.
package runtime

import (
	"math/big"

	"github.com/fluidlabs/fluid-staking/eventdb"
	"github.com/fluidlabs/fluid-staking/fluid"
	"github.com/fluidlabs/fluid-staking/log"
	"github.com/fluidlabs/fluid-staking/metrics"
	"github.com/fluidlabs/fluid-staking/staking"
	"github.com/fluidlabs/fluid-staking/state"
)

var logger = log.WithContext("pkg", "runtime")

var (
	invocationCounter = metrics.CounterVec("staking_invocations_total", []string{"status"})
	positionsGauge    = metrics.Gauge("staking_open_positions")
)

// Clock supplies the current program time in seconds.
type Clock func() uint64

// Runtime executes staking invocations atomically.
type Runtime struct {
	state   *state.State
	staking *staking.Staking
	events  *eventdb.EventDB
	clock   Clock
}

// New creates a runtime. events may be nil to disable event recording.
func New(st *state.State, stk *staking.Staking, events *eventdb.EventDB, clock Clock) *Runtime {
	return &Runtime{
		state:   st,
		staking: stk,
		events:  events,
		clock:   clock,
	}
}

// Session is the scope of a single invocation. Operations called on the
// session share one checkpoint and one observation of the clock.
type Session struct {
	rt     *Runtime
	now    uint64
	events []*eventdb.Event
}

// Execute runs fn atomically. State changes are reverted if fn returns an
// error, and events recorded by fn are only persisted on success.
func (rt *Runtime) Execute(fn func(*Session) error) error {
	checkpoint := rt.state.NewCheckpoint()
	session := &Session{rt: rt, now: rt.clock()}

	if err := fn(session); err != nil {
		rt.state.RevertTo(checkpoint)
		invocationCounter.AddWithLabel(1, map[string]string{"status": "reverted"})
		return err
	}

	if rt.events != nil && len(session.events) > 0 {
		if err := rt.events.Insert(session.events); err != nil {
			logger.Warn("failed to record events", "err", err)
		}
	}
	invocationCounter.AddWithLabel(1, map[string]string{"status": "committed"})
	return nil
}

// Commit flushes accumulated state changes to the underlying store.
func (rt *Runtime) Commit() error {
	return rt.state.Commit()
}

// Now returns the invocation time observed at session start.
func (s *Session) Now() uint64 {
	return s.now
}

func (s *Session) record(kind eventdb.Kind, farm, staker, asset fluid.Address, amount *big.Int) {
	s.events = append(s.events, &eventdb.Event{
		Farm:   farm,
		Staker: staker,
		Asset:  asset,
		Kind:   kind,
		Amount: amount,
		Time:   s.now,
	})
}

// AddFarm creates a farm administered by admin.
func (s *Session) AddFarm(admin, rewardAsset fluid.Address, tickLength, nonce uint64) (fluid.Address, error) {
	return s.rt.staking.AddFarm(admin, rewardAsset, tickLength, nonce)
}

// FundFarm tops up the farm's reward escrow.
func (s *Session) FundFarm(caller, farm, asset fluid.Address, amount *big.Int) error {
	if err := s.rt.staking.FundFarm(caller, farm, asset, amount); err != nil {
		return err
	}
	s.record(eventdb.Funded, farm, caller, asset, amount)
	return nil
}

// AddTier registers a reward tier under the farm.
func (s *Session) AddTier(caller, farm fluid.Address, lockPeriod uint64, rewardPerTick *big.Int) (fluid.Bytes32, error) {
	return s.rt.staking.AddTier(caller, farm, lockPeriod, rewardPerTick)
}

// CloseTier removes a tier from the farm.
func (s *Session) CloseTier(caller, farm fluid.Address, tier fluid.Bytes32) error {
	return s.rt.staking.CloseTier(caller, farm, tier)
}

// AddAssetBonus registers an asset under the farm with a bonus rate.
func (s *Session) AddAssetBonus(caller, farm, asset fluid.Address, bonusPerTick *big.Int) error {
	return s.rt.staking.AddAssetBonus(caller, farm, asset, bonusPerTick)
}

// RemoveAssetBonus deregisters an asset from the farm.
func (s *Session) RemoveAssetBonus(caller, farm, asset fluid.Address) error {
	return s.rt.staking.RemoveAssetBonus(caller, farm, asset)
}

// Stake opens a position for the staker.
func (s *Session) Stake(staker, asset fluid.Address, tier fluid.Bytes32, farm fluid.Address) (fluid.Bytes32, error) {
	id, err := s.rt.staking.Stake(staker, asset, tier, farm, s.now)
	if err != nil {
		return fluid.Bytes32{}, err
	}
	s.record(eventdb.Staked, farm, staker, asset, big.NewInt(1))
	positionsGauge.Add(1)
	return id, nil
}

// Unstake closes the staker's position.
func (s *Session) Unstake(staker, asset, farm fluid.Address, position fluid.Bytes32) error {
	if err := s.rt.staking.Unstake(staker, asset, farm, position, s.now); err != nil {
		return err
	}
	s.record(eventdb.Unstaked, farm, staker, asset, big.NewInt(1))
	positionsGauge.Add(-1)
	return nil
}

// Claim pays out accrued rewards and returns the paid amount.
func (s *Session) Claim(staker fluid.Address, position fluid.Bytes32, farm fluid.Address) (*big.Int, error) {
	reward, err := s.rt.staking.Claim(staker, position, farm, s.now)
	if err != nil {
		return nil, err
	}
	entry, err := s.rt.staking.GetPositionByID(position)
	if err != nil {
		return nil, err
	}
	s.record(eventdb.Claimed, farm, staker, entry.Asset, reward)
	return reward, nil
}
