// Package cli provides the interactive files manager command-line client.
//
// It wires configuration, the local state database, the API services and a
// REPL. On start it restores the previous session if the server still
// accepts it, then watches server reachability in the background.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
