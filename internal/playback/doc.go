// Package playback holds the single shared playback record for the gateway.
//
// One *State is created at startup and handed to every component that reads
// or mutates playback: the MCP tool handlers and the browser player API all
// see the same record. There is no per-client isolation; that is the point.
//
// Every transition is a small guarded mutation that returns the message
// shown to the caller. Illegal transitions (pause with nothing playing,
// resume when not paused, out-of-range volume) never mutate and answer with
// a descriptive message instead of an error.
package playback
