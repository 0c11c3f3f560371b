// Package coins computes the minimum number of denominations needed to form an
// amount. Four strategies share the Solver contract: greedy selection, plain
// recursion, recursion with a per-call memo cache, and a bottom-up table.
//
// An amount that cannot be formed exactly is reported as Unreachable, never as
// an error. Errors are reserved for invalid input and context cancellation.
package coins
