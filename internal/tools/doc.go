// Package tools defines the fixed catalog of operations exposed over MCP
// and their implementations against the music server and playback state.
//
// Each tool has a name, a description, and a declared parameter list. The
// parameter list serves two purposes: it is advertised to clients as a JSON
// schema (every declared parameter is marked required), and it is the
// allow-list used to filter caller-supplied arguments before invocation.
// Advertisement and enforcement are deliberately decoupled: missing
// parameters are not rejected, the handler supplies its own defaults.
//
// Tool handlers never let upstream or validation failures escape as errors.
// They convert everything into the human-readable result string handed back
// to the LLM; a non-nil error from a handler means something genuinely
// unexpected happened.
package tools
