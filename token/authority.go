// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/fluidlabs/fluid-staking/fluid"

// Authority proves control over a sending account.
type Authority interface {
	// Account resolves the authority to the account it controls.
	Account() fluid.Address
}

type accountAuthority fluid.Address

// AccountAuthority is the authority of an account over itself, presented by
// the account holder's own signature.
func AccountAuthority(addr fluid.Address) Authority {
	return accountAuthority(addr)
}

func (a accountAuthority) Account() fluid.Address {
	return fluid.Address(a)
}

type derivedAuthority struct {
	seeds [][]byte
}

// DerivedAuthority is the authority over a derived account, proven by
// presenting the seed tuple the account address was derived from. Only the
// holder of the seeds can sign transfers out of the derived account.
func DerivedAuthority(seeds ...[]byte) Authority {
	return &derivedAuthority{seeds}
}

func (d *derivedAuthority) Account() fluid.Address {
	return fluid.DeriveAddress(d.seeds...)
}
