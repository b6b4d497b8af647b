// Package audit contains the append-only audit trail model. Entries are
// written in the same transaction as the state change they record and are
// never updated or deleted afterwards, not even by the retention purge.
package audit
