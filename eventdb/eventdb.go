// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/fluidlabs/fluid-staking/fluid"
)

// Kind of a staking event.
type Kind string

const (
	Funded   Kind = "funded"
	Staked   Kind = "staked"
	Unstaked Kind = "unstaked"
	Claimed  Kind = "claimed"
)

// Event is one row of staking history.
type Event struct {
	Farm   fluid.Address `json:"farm"`
	Staker fluid.Address `json:"staker"` // the administrator for funding events
	Asset  fluid.Address `json:"asset"`
	Kind   Kind          `json:"kind"`
	Amount *big.Int      `json:"amount"`
	Time   uint64        `json:"time"`
}

// OrderType of query results.
type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range describes a time range, [From, To].
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options for paging.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter of staking events.
type Filter struct {
	Farm    *fluid.Address `json:"farm"`
	Staker  *fluid.Address `json:"staker"`
	Asset   *fluid.Address `json:"asset"`
	Kind    *Kind          `json:"kind"`
	Order   OrderType      `json:"order"` // default asc
	Range   *Range
	Options *Options
}

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	farm BLOB NOT NULL,
	staker BLOB NOT NULL,
	asset BLOB NOT NULL,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL,
	time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_farm ON event(farm);
CREATE INDEX IF NOT EXISTS event_staker ON event(staker);
CREATE INDEX IF NOT EXISTS event_time ON event(time);`

// EventDB manages staking event history.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert inserts events into the db.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		if _, err = tx.Exec("INSERT INTO event(farm, staker, asset, kind, amount, time) VALUES (?, ?, ?, ?, ?, ?);",
			event.Farm.Bytes(),
			event.Staker.Bytes(),
			event.Asset.Bytes(),
			string(event.Kind),
			event.Amount.String(),
			event.Time,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns events matching the filter.
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT farm, staker, asset, kind, amount, time FROM event")
	}

	var args []any
	stmt := "SELECT farm, staker, asset, kind, amount, time FROM event WHERE 1"
	if filter.Farm != nil {
		stmt += " AND farm = ?"
		args = append(args, filter.Farm.Bytes())
	}
	if filter.Staker != nil {
		stmt += " AND staker = ?"
		args = append(args, filter.Staker.Bytes())
	}
	if filter.Asset != nil {
		stmt += " AND asset = ?"
		args = append(args, filter.Asset.Bytes())
	}
	if filter.Kind != nil {
		stmt += " AND kind = ?"
		args = append(args, string(*filter.Kind))
	}
	if filter.Range != nil {
		stmt += " AND time >= ? AND time <= ?"
		args = append(args, filter.Range.From, filter.Range.To)
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, filter.Options.Limit, filter.Options.Offset)
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			farm   []byte
			staker []byte
			asset  []byte
			kind   string
			amount string
			time   uint64
		)
		if err := rows.Scan(&farm, &staker, &asset, &kind, &amount, &time); err != nil {
			return nil, err
		}
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, fmt.Errorf("corrupted amount %q", amount)
		}
		events = append(events, &Event{
			Farm:   fluid.BytesToAddress(farm),
			Staker: fluid.BytesToAddress(staker),
			Asset:  fluid.BytesToAddress(asset),
			Kind:   Kind(kind),
			Amount: value,
			Time:   time,
		})
	}
	return events, rows.Err()
}

// Path returns db file path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes the db.
func (db *EventDB) Close() error {
	return db.db.Close()
}
