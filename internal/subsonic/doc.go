// Package subsonic is the client for Subsonic-compatible music servers
// (Airsonic, Navidrome, Subsonic).
//
// # Authentication
//
// The Subsonic REST API authenticates every request via query parameters.
// In token mode (the default) each call carries a fresh random salt and
// token = md5(password + salt):
//
//	?u=<user>&t=<token>&s=<salt>&v=<apiVersion>&c=<clientID>
//
// Legacy password mode sends the password directly as p=<password>.
// Credentials are computed per request and never cached.
//
// # Responses
//
// The API answers with XML. Normalize strips the Subsonic namespace
// declaration so elements and attributes can be addressed by their bare
// names, parses the payload into a generic Element tree, and surfaces
// embedded failures (status="failed") as an *APIError.
//
// # Errors
//
// Three error kinds cover the upstream failure modes:
//
//   - *UnreachableError: network, timeout, or non-2xx HTTP status
//   - *ProtocolError: response body could not be parsed as XML
//   - *APIError: the server returned an explicit failure with a message
package subsonic
