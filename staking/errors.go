// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "errors"

var (
	// ErrUnauthorized caller is not the required administrator, or an entity
	// belongs to the wrong parent farm.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrKeyMismatch position owner does not match caller.
	ErrKeyMismatch = errors.New("keys should be equal")

	// ErrMintMismatch asset identity mismatch between position, escrow and request.
	ErrMintMismatch = errors.New("asset should be equal")

	// ErrInvalidUnstake lock period not yet elapsed.
	ErrInvalidUnstake = errors.New("staking period not over")

	// ErrDuplicateRecord a record already exists at the derived address.
	ErrDuplicateRecord = errors.New("record already exists")
)
