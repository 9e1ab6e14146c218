// Package config loads and validates the sonic-gateway YAML configuration.
//
// Configuration is read once at startup. The file format:
//
//	server:
//	  http_addr: "localhost:8080"
//
//	subsonic:
//	  server_url: "http://localhost:4040"
//	  username: "admin"
//	  password: "${SONIC_PASSWORD}"
//	  api_version: "1.15.0"
//	  use_token_auth: true
//
//	logging:
//	  level: "info"
//	  format: "text"
//
// Environment variables in ${VAR} form are expanded before parsing, so
// secrets can be kept out of the file itself.
package config
