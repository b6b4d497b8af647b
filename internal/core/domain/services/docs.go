// Package services provides domain services that implement matching policy
// spanning more than one aggregate: the active-claim capacity ceiling and the
// geographic eligibility check between a volunteer's service area and a
// delivery's endpoints. Both are pure decision logic; loading the data they
// decide over is the application layer's job.
package services
