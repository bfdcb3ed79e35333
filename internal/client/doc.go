// Package client implements the interactive application runtime.
//
// It wires the terminal UI flows, the domain services, the persisted session
// file, and the backup manager into a single process lifecycle: restore the
// saved session or run the login flow, then hand control to the main loop
// until the user quits or logs out.
package client
