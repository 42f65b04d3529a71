// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes optional behavior functions
// (XxxFn) plus call counters so tests can both script responses and
// verify interactions.
package mocks
