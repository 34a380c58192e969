package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProxyApp(t *testing.T, config ProxyConfig) *fiber.App {
	t.Helper()

	app := fiber.New()
	NewProxyHandler(config, nil, testLogger()).Register(app)
	return app
}

func TestProxyEndpointModeInjectsKey(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status_code":1}`)
	}))
	defer upstream.Close()

	app := newProxyApp(t, ProxyConfig{
		UpstreamBaseURL: upstream.URL,
		APIKey:          "secret",
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?endpoint=/characters/&limit=50", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"status_code":1}`, string(body))

	assert.Equal(t, "/characters/", gotPath)
	assert.Equal(t, "secret", gotQuery.Get("api_key"))
	assert.Equal(t, "json", gotQuery.Get("format"))
	assert.Equal(t, "50", gotQuery.Get("limit"))
	assert.False(t, gotQuery.Has("endpoint"), "endpoint parameter must not be forwarded")
}

func TestProxyEndpointModeAddsLeadingSlash(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{}`)
	}))
	defer upstream.Close()

	app := newProxyApp(t, ProxyConfig{UpstreamBaseURL: upstream.URL + "/", APIKey: "secret"})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?endpoint=characters/", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/characters/", gotPath)
}

func TestProxyForwardsUpstreamErrorsVerbatim(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"slow down"}`)
	}))
	defer upstream.Close()

	app := newProxyApp(t, ProxyConfig{UpstreamBaseURL: upstream.URL, APIKey: "secret"})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?endpoint=/characters/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"error":"slow down"}`, string(body))
}

func TestProxyLegacyURLMode(t *testing.T) {
	var gotQuery url.Values
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{}`)
	}))
	defer upstream.Close()

	upstreamURL, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	app := newProxyApp(t, ProxyConfig{
		AllowedHost: upstreamURL.Host,
		APIKey:      "secret",
	})

	target := url.QueryEscape(upstream.URL + "/api/characters/?api_key=client-held")
	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?url="+target, nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	// Legacy mode forwards verbatim and never injects the server key.
	assert.Equal(t, "client-held", gotQuery.Get("api_key"))
}

func TestProxyLegacyURLModeRejectsForeignHosts(t *testing.T) {
	app := newProxyApp(t, ProxyConfig{
		AllowedHost: "comicvine.gamespot.com",
		APIKey:      "secret",
	})

	target := url.QueryEscape("https://evil.example.com/steal")
	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?url="+target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProxyRequiresTargetParameter(t *testing.T) {
	app := newProxyApp(t, ProxyConfig{APIKey: "secret"})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProxyFailsWithoutConfiguredKey(t *testing.T) {
	app := newProxyApp(t, ProxyConfig{})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?endpoint=/characters/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestProxyReportsUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing is listening anymore

	app := newProxyApp(t, ProxyConfig{UpstreamBaseURL: upstream.URL, APIKey: "secret"})

	resp, err := app.Test(httptest.NewRequest("GET", "/proxy?endpoint=/characters/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestProxyOptionsPreflight(t *testing.T) {
	app := newProxyApp(t, ProxyConfig{APIKey: "secret"})

	resp, err := app.Test(httptest.NewRequest("OPTIONS", "/proxy", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
