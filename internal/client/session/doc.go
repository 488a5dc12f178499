// Package session implements the client-side session store: the single
// source of truth for "who is signed in".
//
// The store bridges the remote auth API and durable local storage. Durable
// storage (keys "token" and "user") is authoritative across restarts; the
// in-memory snapshot is a cache of it that is kept identical after every
// successful mutation. Identity and credential are always set and cleared
// together; a session holding only one of them counts as signed out.
//
// State changes are pushed to subscribers, so UI code and the route guard
// observe the session instead of polling it.
package session
