/*
Package server implements msgpack IPC for graph search services.

The server package exposes the search engine over a stream of msgpack
messages on stdin/stdout, so an editor process can ask for suggestions and
query results without linking the engine.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message carries an ID, echoed in the response, and an op.

Suggestions while the user types:

	{"id": "req_001", "op": "suggest", "q": "old ri", "l": 5}

The server responds with ranked completions:

	{"id": "req_001", "s": [{"w": "Old Ridge", "r": 1}, {"w": "Old Ridge Outpost", "r": 2}], "c": 2, "t": 41}

Submitted queries resolve to node and edge ids:

	{"id": "req_002", "op": "resolve", "q": "#myth ridge"}
	{"id": "req_002", "nodes": ["n2", "n3"], "edges": [], "t": 18}

A client that tokenizes on its own may send "tk" instead of "q".

Maintenance ops are "reload" (re-read the graph document), "stats" and "health".
Bad requests get an error message and the server keeps reading:

	{"id": "req_003", "e": "unknown op: frobnicate", "c": 400}

Timings in "t" are microseconds.
*/
package server

// Request is any client message.
type Request struct {
	ID     string   `msgpack:"id"`
	Op     string   `msgpack:"op"`
	Query  string   `msgpack:"q,omitempty"`
	Tokens []string `msgpack:"tk,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// Suggestion is one ranked completion.
type Suggestion struct {
	Text string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// SuggestResponse answers a "suggest" request.
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// ResolveResponse answers a "resolve" request. Ids are sorted.
type ResolveResponse struct {
	ID        string   `msgpack:"id"`
	NodeIDs   []string `msgpack:"nodes"`
	EdgeIDs   []string `msgpack:"edges"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse answers "reload", "stats" and "health", and announces readiness.
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
