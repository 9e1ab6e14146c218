// Package gateway wires the sonic-gateway server components together and
// owns the HTTP listener lifecycle.
//
// It builds the shared playback state, the Subsonic client, the tool
// catalog, and the MCP server, then serves three surfaces from one mux:
// the MCP endpoints, the browser player (page, theme assets, playback REST
// API), and the audio stream proxy.
package gateway
