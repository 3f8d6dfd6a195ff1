// Package cli provides the interactive userdir shell.
//
// It wires configuration, the record store, the local database and the
// services into a line-oriented REPL. What a session may do depends on who
// is logged in:
//   - nobody: login, help, exit
//   - administrators: list, add, delete, edit, toggle, sort, filter, search,
//     stats, history, logout, help, exit
//   - standard users: order, orders, logout, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. Leaving while logged in records the logout first.
package cli
