// Package models defines the core domain models for the mahjong tracker.
//
// # Persisted Models
//
//   - GameRecord: one finalized four-seat game, the only table the tracker
//     owns. Append-mostly; corrections go through explicit update/delete.
//   - User: an administrator login used to gate score entry.
//
// # Derived Models
//
//   - SettlementEntry: a balanced who-owes-whom expense derived from one
//     game, submitted to the external ledger.
//   - Debt: a directional balance read back from the external ledger with
//     member ids resolved to names.
//
// Players are identified by display name strings on game records; the
// external ledger has its own member identities, and the two are mapped
// by exact name match at settlement time.
//
// # Row Contract
//
// GameRecord carries an explicit, versioned flat-row layout (RowWidth
// cells in a fixed column order) so game data can round-trip through
// spreadsheet-shaped exports. Rows of the wrong width are rejected at the
// boundary rather than indexed blindly.
package models
