// Package volunteer contains the Volunteer aggregate: the vetting lifecycle
// (pending, approved, suspended, rejected), the service area used for
// geographic matching, and lifetime delivery statistics.
package volunteer
