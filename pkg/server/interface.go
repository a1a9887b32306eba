/*
Package server exposes the suggestion engine at two boundaries: an HTTP API
and a msgpack IPC mode over stdin/stdout.

# HTTP

The main endpoint returns ranked completions for a user-typed fragment:

	GET /suggest?query=HeL&k=3

	{"query": "hel", "suggestions": ["hello world", "help", "helmet"], "count": 3, "time_ms": 0}

The query is normalized with the same rule used to build the corpus before
any lookup happens. `k` defaults from config and must be a non-negative
integer; a negative or non-numeric `k` is a 400. An optional `deep=true`
widens recall with the trimmed and per-word strategies when fewer than k
candidates are found.

`GET /` serves a minimal search page, `GET /healthz` a liveness probe and
`GET /stats` engine and cache counters.

# IPC

In IPC mode the same contract is served as msgpack frames over
stdin/stdout, one request per frame:

	{"id": "req_001", "q": "hel", "k": 3}

answered with

	{"id": "req_001", "qn": "hel", "s": ["hello world", "help", "helmet"], "c": 3, "t": 145}

Invalid parameters produce a CompletionError frame and the stream
continues; a malformed frame produces a CompletionError and terminates the
session, since the decoder cannot resynchronize.
*/
package server

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	K     *int   `msgpack:"k,omitempty"`
	Deep  bool   `msgpack:"deep,omitempty"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string   `msgpack:"id"`
	Query       string   `msgpack:"qn"`
	Suggestions []string `msgpack:"s"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// CompletionError holds basic error information for completion requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
