package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"apiexplorer/internal/environment"
	"apiexplorer/internal/model"
)

const defaultTimeout = 30 * time.Second

// CredentialSource yields the API key when one is held and enabled.
type CredentialSource interface {
	Active() (string, bool)
}

// RequestError reports a response outside the 2xx/3xx range.
type RequestError struct {
	Status   int
	Text     string
	Response *model.Response
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Text)
}

type Options struct {
	// ServerURL resolves relative targets such as /api/v1/... and /api/proxy/...
	ServerURL    string
	RemoteOrigin string
	Timeout      time.Duration
	Credentials  CredentialSource
	Logger       *zap.Logger
	Transport    http.RoundTripper
}

type SendOptions struct {
	ResponseType model.ResponseType
	SkipAuth     bool
	Headers      map[string]string
}

type Client struct {
	http      *http.Client
	serverURL string
	origin    *url.URL
	creds     CredentialSource
	log       *zap.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout < 0 {
		timeout = defaultTimeout
	}
	rawOrigin := opts.RemoteOrigin
	if rawOrigin == "" {
		rawOrigin = environment.DefaultRemoteOrigin
	}
	origin, err := url.Parse(strings.TrimRight(rawOrigin, "/"))
	if err != nil || origin.Host == "" {
		origin = nil
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:      &http.Client{Timeout: timeout, Transport: opts.Transport},
		serverURL: strings.TrimRight(opts.ServerURL, "/"),
		origin:    origin,
		creds:     opts.Credentials,
		log:       log,
	}
}

// Do sends a built request.
func (c *Client) Do(ctx context.Context, spec RequestSpec, opts SendOptions) (*model.Response, error) {
	var body any
	if spec.Body != nil {
		body = spec.Body
	}
	return c.Send(ctx, spec.Method, spec.URL, body, opts)
}

func (c *Client) Send(ctx context.Context, method model.Method, target string, body any, opts SendOptions) (*model.Response, error) {
	headers := map[string]string{"Accept": "application/json"}

	if key, ok := c.activeKey(opts); ok {
		switch {
		case c.isOriginTarget(target):
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + "api_key=" + url.QueryEscape(key)
		case isProxyTarget(target):
			headers["X-API-Key"] = key
			headers["Authorization"] = "Bearer " + key
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
		headers["Content-Type"] = "application/json"
	}
	for k, v := range opts.Headers {
		if strings.TrimSpace(v) != "" {
			headers[k] = v
		}
	}

	full := c.resolve(target)
	req, err := http.NewRequestWithContext(ctx, string(method), full, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", string(method)), zap.String("url", full), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	out := &model.Response{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Data:       decode(raw, opts.ResponseType),
		Headers:    flattenHeaders(resp.Header),
		ElapsedMs:  elapsed.Milliseconds(),
		Timestamp:  time.Now(),
	}
	c.log.Debug("request done",
		zap.String("method", string(method)),
		zap.String("url", full),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		text := strings.TrimSpace(string(raw))
		if text == "" {
			text = out.StatusText
		}
		return nil, &RequestError{Status: resp.StatusCode, Text: text, Response: out}
	}
	return out, nil
}

func (c *Client) activeKey(opts SendOptions) (string, bool) {
	if opts.SkipAuth || c.creds == nil {
		return "", false
	}
	return c.creds.Active()
}

func (c *Client) resolve(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return c.serverURL + target
}

// isOriginTarget reports whether target is an absolute URL on the remote
// origin: same scheme and host, path under the origin's path.
func (c *Client) isOriginTarget(target string) bool {
	if c.origin == nil {
		return false
	}
	u, err := url.Parse(target)
	if err != nil || u.User != nil {
		return false
	}
	if !strings.EqualFold(u.Scheme, c.origin.Scheme) || !strings.EqualFold(u.Host, c.origin.Host) {
		return false
	}
	rest, ok := strings.CutPrefix(u.Path, c.origin.Path)
	return ok && (rest == "" || rest[0] == '/')
}

func isProxyTarget(target string) bool {
	rest, ok := strings.CutPrefix(target, environment.ProxyBaseURL)
	return ok && (rest == "" || rest[0] == '/' || rest[0] == '?')
}

func decode(raw []byte, rt model.ResponseType) any {
	if rt == model.ResponseCSV {
		return string(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return out
}
