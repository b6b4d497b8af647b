// Package queries contains the read side of the application layer. Query
// handlers go straight to the database with raw SQL instead of loading
// aggregates through repositories: reads need joins and orderings the write
// model does not, and they must never mutate state.
package queries
