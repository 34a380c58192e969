package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// ProxyConfig holds the proxy collaborator settings. The API key never
// reaches the browser; this handler injects it server-side.
type ProxyConfig struct {
	// UpstreamBaseURL is where endpoint-mode requests are forwarded,
	// e.g. https://comicvine.gamespot.com/api.
	UpstreamBaseURL string

	// AllowedHost restricts legacy url-mode targets.
	AllowedHost string

	// APIKey is the server-held upstream credential.
	APIKey string
}

// ProxyHandler forwards browser calls to the content API, injecting the
// API key and the JSON format parameter. It exists so browser clients
// avoid cross-origin restrictions and never see the key.
type ProxyHandler struct {
	config     ProxyConfig
	httpClient *http.Client
	logger     *slog.Logger
}

func NewProxyHandler(config ProxyConfig, httpClient *http.Client, logger *slog.Logger) *ProxyHandler {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ProxyHandler{config: config, httpClient: httpClient, logger: logger}
}

func (h *ProxyHandler) Register(app *fiber.App) {
	app.Get("/proxy", h.Handle)
	app.Options("/proxy", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}

func (h *ProxyHandler) Handle(c fiber.Ctx) error {
	if h.config.APIKey == "" {
		h.logger.Error("proxy called without configured API key")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "API key is not configured",
		})
	}

	endpoint := c.Query("endpoint")
	legacyURL := c.Query("url")

	var target string
	switch {
	case endpoint != "":
		target = h.endpointTarget(c, endpoint)
	case legacyURL != "":
		parsed, err := url.Parse(legacyURL)
		if err != nil || !strings.EqualFold(parsed.Host, h.config.AllowedHost) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "url is not an allowed upstream target",
			})
		}
		// Legacy mode forwards the caller's URL verbatim, without key
		// injection, for old clients that built full upstream URLs.
		target = legacyURL
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "either endpoint or url query parameter is required",
		})
	}

	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, target, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid proxy target",
		})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("proxy upstream request failed", "target", target, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "no response from content API",
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to read upstream response",
		})
	}

	// Body and status are forwarded verbatim.
	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(resp.StatusCode).Send(body)
}

// endpointTarget builds the upstream URL for endpoint mode: the caller's
// extra query parameters are carried over and the key is injected.
func (h *ProxyHandler) endpointTarget(c fiber.Ctx, endpoint string) string {
	query := url.Values{}
	for key, values := range c.Queries() {
		if key == "endpoint" {
			continue
		}
		query.Set(key, values)
	}
	query.Set("api_key", h.config.APIKey)
	query.Set("format", "json")

	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return strings.TrimRight(h.config.UpstreamBaseURL, "/") + endpoint + "?" + query.Encode()
}
