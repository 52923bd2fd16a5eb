/*
Package server implements msgpack IPC for trigram similarity services.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Every request carries an "id" (generated when
missing) and an "action"; the response echoes the id.

# Actions

Score two strings:

	{"id": "r1", "action": "similarity", "a": "dancing bear", "b": "dancing boar"}
	{"id": "r1", "s": 0.625, "t": 12}

Find the words of a haystack that fuzzily match a needle. Offsets are byte
offsets into the haystack; "th" defaults to the configured threshold:

	{"id": "r2", "action": "find", "n": "riddums", "h": "funky riddims", "th": 0.3}
	{"id": "r2", "m": [{"w": "riddims", "s": 6, "e": 13}], "c": 1, "t": 20}

Look a needle up in the loaded lexicon, optionally under a prefix "p" and
with a limit "l":

	{"id": "r3", "action": "lookup", "n": "bufalo", "l": 5}
	{"id": "r3", "h": [{"w": "buffalo", "f": 100, "s": 0.667}], "c": 1, "t": 80}

Check liveness:

	{"id": "r4", "action": "health"}
	{"id": "r4", "status": "ok"}

Failures reply with an error message and an HTTP-like code and the server
keeps reading:

	{"id": "r5", "e": "unknown action: frobnicate", "c": 400}

The "t" fields are the handling time in microseconds.
*/
package server

// Actions understood by the server.
const (
	ActionSimilarity = "similarity"
	ActionFind       = "find"
	ActionLookup     = "lookup"
	ActionHealth     = "health"
)

// Request is the union of every request shape.
type Request struct {
	ID        string   `msgpack:"id"`
	Action    string   `msgpack:"action"`
	A         string   `msgpack:"a,omitempty"`
	B         string   `msgpack:"b,omitempty"`
	Needle    string   `msgpack:"n,omitempty"`
	Haystack  string   `msgpack:"h,omitempty"`
	Prefix    string   `msgpack:"p,omitempty"`
	Threshold *float64 `msgpack:"th,omitempty"`
	Limit     int      `msgpack:"l,omitempty"`
}

// SimilarityResponse - similarity score
type SimilarityResponse struct {
	ID        string  `msgpack:"id"`
	Score     float64 `msgpack:"s"`
	TimeTaken int64   `msgpack:"t"`
}

// MatchResult - one fuzzy word hit with its byte span
type MatchResult struct {
	Word  string `msgpack:"w"`
	Start int    `msgpack:"s"`
	End   int    `msgpack:"e"`
}

// FindResponse - word scan response
type FindResponse struct {
	ID        string        `msgpack:"id"`
	Matches   []MatchResult `msgpack:"m"`
	Count     int           `msgpack:"c"`
	Truncated bool          `msgpack:"x,omitempty"`
	TimeTaken int64         `msgpack:"t"`
}

// LookupHit - lexicon word hit
type LookupHit struct {
	Word  string  `msgpack:"w"`
	Freq  int     `msgpack:"f"`
	Score float64 `msgpack:"s"`
}

// LookupResponse - lexicon lookup response
type LookupResponse struct {
	ID        string      `msgpack:"id"`
	Hits      []LookupHit `msgpack:"h"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// StatusResponse - ready and health replies
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
