// Package proxy relays /api/proxy/* requests to the remote campaign API,
// forwarding only the caller's API credentials.
package proxy

import (
	"errors"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	Prefix         = "/api/proxy"
	defaultTimeout = 30 * time.Second
)

// ErrorBody is returned for failures the gateway itself detects.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

var hopByHop = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Trailers",
	"Transfer-Encoding",
	"Upgrade",
}

type Config struct {
	Origin string
	// Timeout bounds each upstream call. Zero disables it; a negative value
	// selects the 30s default.
	Timeout time.Duration
	Logger  *zap.Logger
	Client  *fasthttp.Client
}

type Gateway struct {
	origin  string
	scheme  string
	host    string
	timeout time.Duration
	client  *fasthttp.Client
	log     *zap.Logger
}

func New(cfg Config) *Gateway {
	g := &Gateway{
		origin:  strings.TrimRight(cfg.Origin, "/"),
		timeout: cfg.Timeout,
		client:  cfg.Client,
		log:     cfg.Logger,
	}
	if u, err := url.Parse(g.origin); err == nil {
		g.scheme, g.host = u.Scheme, u.Host
	}
	if g.timeout < 0 {
		g.timeout = defaultTimeout
	}
	if g.client == nil {
		g.client = &fasthttp.Client{
			MaxIdleConnDuration:    90 * time.Second,
			DisablePathNormalizing: true,
		}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// Register mounts the gateway on every method under Prefix.
func (g *Gateway) Register(r fiber.Router) {
	r.Use(Prefix, g.Handle)
}

func (g *Gateway) Handle(c *fiber.Ctx) error {
	rest := strings.TrimPrefix(c.OriginalURL(), Prefix)
	if rest != "" && rest[0] != '/' && rest[0] != '?' {
		return c.Status(fiber.StatusNotFound).JSON(ErrorBody{
			Message: "Cannot " + c.Method() + " " + c.Path(),
			Error:   "not_found",
		})
	}

	apiKey := c.Get("X-API-Key")
	auth := c.Get(fiber.HeaderAuthorization)
	if apiKey == "" && auth == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorBody{
			Message: "API key is required for external API requests",
			Error:   "missing_api_key",
		})
	}

	target := g.origin + rest

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	if g.host != "" {
		req.URI().SetScheme(g.scheme)
		req.URI().SetHost(g.host)
	}
	req.Header.SetMethod(c.Method())
	req.Header.SetContentType(fiber.MIMEApplicationJSON)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}

	if c.Method() != fiber.MethodGet {
		if body := c.Body(); len(body) > 0 {
			var v any
			if err := sonic.Unmarshal(body, &v); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{
					Message: "Request body is not valid JSON",
					Error:   "invalid_json_body",
				})
			}
			out, err := sonic.Marshal(v)
			if err != nil {
				return g.fail(c, target, err)
			}
			req.SetBody(out)
		}
	}

	g.log.Info("proxying request", zap.String("method", c.Method()), zap.String("target", target))
	if err := g.do(req, resp); err != nil {
		return g.fail(c, target, err)
	}

	relayHeaders(c, &resp.Header)
	c.Status(resp.StatusCode())

	body := resp.Body()
	if strings.Contains(string(resp.Header.ContentType()), "application/json") {
		var v any
		if err := sonic.Unmarshal(body, &v); err == nil {
			if out, err := sonic.Marshal(v); err == nil {
				body = out
			}
		}
	}
	return c.Send(append([]byte(nil), body...))
}

func (g *Gateway) do(req *fasthttp.Request, resp *fasthttp.Response) error {
	if g.timeout == 0 {
		return g.client.Do(req, resp)
	}
	return g.client.DoTimeout(req, resp, g.timeout)
}

func (g *Gateway) fail(c *fiber.Ctx, target string, err error) error {
	msg := err.Error()
	if errors.Is(err, fasthttp.ErrTimeout) {
		msg = "upstream request timed out after " + g.timeout.String()
	}
	g.log.Error("proxy request failed", zap.String("target", target), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
		Message: "Error proxying request to external API",
		Error:   msg,
	})
}

// relayHeaders copies upstream headers minus hop-by-hop ones, any header the
// upstream Connection header names, and Content-Length.
func relayHeaders(c *fiber.Ctx, h *fasthttp.ResponseHeader) {
	drop := map[string]bool{"Content-Length": true}
	for _, name := range hopByHop {
		drop[name] = true
	}
	for _, tok := range strings.Split(string(h.Peek(fiber.HeaderConnection)), ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			drop[textproto.CanonicalMIMEHeaderKey(tok)] = true
		}
	}

	h.VisitAll(func(key, value []byte) {
		k := textproto.CanonicalMIMEHeaderKey(string(key))
		if drop[k] {
			return
		}
		v := string(value)
		if k == fiber.HeaderSetCookie {
			c.Response().Header.Add(k, v)
			return
		}
		c.Set(k, v)
	})
}
