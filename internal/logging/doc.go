// Package logging provides concrete implementations of the
// salesingest.Logger interface.
//
// ConsoleLogger writes to stderr so that machine-readable run output on
// stdout stays clean for the scheduler. NullLogger discards everything and
// is used in tests.
package logging
