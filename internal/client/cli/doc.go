// Package cli wires the bookwarm client together and exposes it as an
// interactive terminal application.
//
// The App owns the local database, the HTTP API client, the session store,
// the book service and the navigation guard. Commands are dispatched by a
// small REPL whose available set follows the active navigation area: the auth
// area offers register and login, the main area offers the book commands.
package cli
