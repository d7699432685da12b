// Package cli provides the interactive RecipeBox command-line client.
//
// It wires configuration, the HTTP API client, and a REPL. A background
// watcher pings the server and keeps the prompt's online/offline mark
// current.
//
// Commands:
//   - signup / login / logout
//   - me       show the caller's account (all accounts for an admin)
//   - recipes  list the catalog
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
