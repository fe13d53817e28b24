package ratelimit

import (
	"strings"
)

// unlimitedPaths are GET endpoints exempt from rate limiting.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/v1/api/college/" matches
// "/v1/api/college/bulk"). A trailing slash on path is ignored.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	path = normalizePath(path)

	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}

// normalizePath drops a trailing slash so "/course" and "/course/" share limits.
func normalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}
