// Package application provides application initialization and dependency wiring.
// It builds the comparison runner and report writer from the loaded
// configuration, keeping the main package focused on CLI parsing and signal
// handling.
package application
