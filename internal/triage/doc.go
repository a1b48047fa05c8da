// Package triage derives presentation-time urgency from persisted feedback
// records. It is pure: the same record always yields the same tier, and
// nothing here is ever written back to a record.
package triage
