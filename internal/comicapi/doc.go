// Package comicapi is a resilient client for the comic content API.
//
// Every call flows through the same pipeline: a response cache keyed by
// request signature (endpoint plus canonicalized parameters), a
// client-side fixed-window rate limit, a per-signature in-flight tracker
// that cancels superseded requests (latest request wins), and a bounded
// retry loop with exponential backoff for transient failures. All
// failures surface as *APIError with a closed set of kinds, except
// supersession, which surfaces as the ErrSuperseded sentinel.
//
// Basic usage:
//
//	client, err := comicapi.New(
//		comicapi.WithBaseURL("https://comicvine.gamespot.com/api"),
//		comicapi.WithAPIKey(key),
//	)
//	if err != nil {
//		// invalid configuration
//	}
//
//	params := url.Values{}
//	params.Set("limit", "50")
//	payload, err := client.Get(ctx, "/characters/", params)
//
// The zero-dependency surface callers see is Get/GetJSON plus cache and
// cancellation control; everything else is wiring configured through
// functional options.
package comicapi
