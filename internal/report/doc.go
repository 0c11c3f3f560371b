// Package report renders harness comparisons as a terminal table, JSON or YAML.
package report
