// Package backoff defines the sleep schedules used between polling attempts.
//
// A Policy is a pure function of the attempt number, so a schedule can be
// inspected and tested without sleeping.
package backoff
