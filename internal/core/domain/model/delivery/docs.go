// Package delivery contains the Delivery aggregate and its lifecycle state
// machine. Every status transition in the system flows through this package;
// the claim orchestration, capacity ceiling, and geographic eligibility live
// in the application and domain-services layers, while the invariants of a
// single delivery record (transition ordering, single assignee, monotonic
// priority) are enforced here.
package delivery
