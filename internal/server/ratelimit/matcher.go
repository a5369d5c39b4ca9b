package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedPaths are never rate limited for GET requests.
var unlimitedPaths = map[string]bool{
	"/health": true,
}

// MatchEndpoint returns the EndpointConfig that governs a request, or nil when none
// applies. HEAD requests match GET entries and a trailing slash on the request path is
// ignored. An exact Path wins; otherwise the longest prefix entry (a Path ending in "/")
// wins, so "/careers/" covers "/careers/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	path = normalizePath(path)
	method = normalizeMethod(method)

	if unlimitedPaths[path] && method == http.MethodGet {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if normalizeMethod(config.Method) != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}

// bucketPath is the path component of a bucket key: requests covered by the same
// prefix entry share one bucket.
func bucketPath(path string, matched *EndpointConfig) string {
	if matched != nil && matched.Path != "" {
		return matched.Path
	}
	return normalizePath(path)
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(method)
	if method == http.MethodHead {
		return http.MethodGet
	}
	return method
}
