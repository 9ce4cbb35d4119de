// Package commands defines the phantomlink CLI and wires the session for its
// subcommands.
//
// Commands
//
//   - connect   Print the connect URL, then drive the session from stdin:
//     the first line is the wallet's callback URL, each later line is a
//     message to sign (followed by its callback URL).
//   - simulate  Run the full connect/sign/disconnect flow against the
//     in-process simulated wallet.
//
// # Implementation
//
// The root command builds one session from the persistent flags before any
// subcommand runs. Nothing is persisted: a session lives and dies with the
// process, matching the protocol's key-lifetime rules.
package commands
