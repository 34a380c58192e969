package comicapi

import "net/url"

// Signature derives the canonical key for one logical request. The cache,
// the in-flight tracker and the metrics labels all key on it, so two
// calls with the same endpoint and parameters always collide regardless
// of parameter ordering at the call site.
func Signature(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	// url.Values.Encode sorts by key, which gives canonical ordering.
	return endpoint + "?" + params.Encode()
}
