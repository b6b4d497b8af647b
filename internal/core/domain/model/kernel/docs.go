// Package kernel contains the shared value objects of the domain model:
// UUID identifiers and geographic points. Both are immutable, validated at
// construction, and safe for concurrent use. The zero value of every kernel
// type is invalid and fails Validate; use the constructor functions.
package kernel
