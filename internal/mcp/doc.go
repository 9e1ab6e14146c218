// Package mcp implements the Model Context Protocol server for the music tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over HTTP POST. Three methods are
// supported: initialize, tools/list, and tools/call. Each method is also
// mounted as its own path, and everything is duplicated under /mcp/ because
// different LLM clients guess different layouts:
//
//   - POST / (method sniffed from the body), GET / (server descriptor)
//   - POST|GET /initialize, POST /mcp/initialize
//   - POST /tools/list, POST /mcp/tools/list
//   - POST /tools/call, POST /mcp/tools/call
//   - POST /mcp (JSON-RPC or the legacy verb envelope)
//
// # Request shapes
//
// tools/call accepts both the JSON-RPC shape and a bare shape:
//
//	{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"play_song","arguments":{"song_id":"17"}}}
//	{"name":"play_song","arguments":{"song_id":"17"}}
//
// The legacy /mcp endpoint additionally accepts a verb envelope
// ({"verb":"discovery"} / {"verb":"execute","tool_name":...,"arguments":...})
// kept for older clients.
//
// # Error policy
//
// The /tools/* paths always answer HTTP 200 with an embedded JSON-RPC error
// object, because several callers never inspect the HTTP status. Only the
// legacy /mcp path maps transport-level problems to HTTP statuses
// (400 malformed JSON or unknown verb/tool, 422 unrecognized shape,
// 500 unexpected failure).
package mcp
