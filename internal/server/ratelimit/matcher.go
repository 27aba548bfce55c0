package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint returns the configuration whose method and path pattern match
// the request, or nil. A pattern segment written as {name} matches any one
// non-empty path segment; when several patterns match, the one with the fewest
// wildcards wins. GET /health is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{Path: path, Method: method}
	}

	segments := splitPath(path)
	var best *EndpointConfig
	bestWildcards := 0
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		wildcards, ok := matchSegments(splitPath(config.Path), segments)
		if !ok {
			continue
		}
		if best == nil || wildcards < bestWildcards {
			best, bestWildcards = config, wildcards
		}
	}
	return best
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// matchSegments reports whether path fits pattern and how many wildcard
// segments the match used.
func matchSegments(pattern, path []string) (int, bool) {
	if len(pattern) != len(path) {
		return 0, false
	}

	wildcards := 0
	for i, segment := range pattern {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			if path[i] == "" {
				return 0, false
			}
			wildcards++
			continue
		}
		if segment != path[i] {
			return 0, false
		}
	}
	return wildcards, true
}
