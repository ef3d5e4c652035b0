// Package cli provides the interactive Shareling command-line client.
//
// It wires configuration, the broker API client, the upload orchestrator,
// the public-link resolver, and the selection/list coordinator into an
// interactive REPL. Typical flow: log in, upload files, select rows, copy
// share links, delete.
//
// Key commands:
//   - register / login
//   - upload <path> [days]
//   - list, refresh, select <fileId>, selectall, showdeleted
//   - links, delete
//   - resolve <fileId>
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// A single upload runs at a time: the REPL accepts no further input until
// the finished signal, which is how the one-orchestration-in-flight
// invariant is held.
package cli
