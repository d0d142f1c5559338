// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/fluidlabs/fluid-staking/kv"
	"github.com/fluidlabs/fluid-staking/state"
)

// Builder helper to build genesis state.
type Builder struct {
	launchTime uint64

	stateProcs []func(state *state.State) error
}

// LaunchTime set the program launch time.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build builds the genesis state according to presets and commits it to the
// given kv store.
func (b *Builder) Build(kv kv.GetPutter) (*state.State, error) {
	st := state.New(kv)

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}

	if err := st.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	return st, nil
}
