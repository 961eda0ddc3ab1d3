// Package live bridges a browser URL to a formsync.QuerySource over a
// WebSocket connection.
//
// The connected client reports its current query string with
//
//	{"type": "url", "query": "name=widget&page=2"}
//
// frames whenever the browser URL changes, and receives
//
//	{"type": "url_replace", "query": "..."}
//
// frames whenever the Syncer commits, which the client applies with
// history.replaceState. The Bridge holds the last reported query string
// as the external snapshot, so the server-side Syncer sees the browser
// URL as its source of truth.
package live
