// Package harness runs several minimum-coin strategies on the same input,
// times each one, bounds slow strategies with a per-run timeout and checks
// that the strategies promising an optimal count agree.
package harness
