package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/config"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Mock.Delay = 0
	return New(cfg, catalog.Default(), nil)
}

func get(t *testing.T, s *Server, target string, header map[string]string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealthz(t *testing.T) {
	resp, body := get(t, newServer(t), "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCatalogRoute(t *testing.T) {
	_, body := get(t, newServer(t), "/api/catalog", nil)
	var cats []catalog.Category
	require.NoError(t, json.Unmarshal(body, &cats))
	require.Len(t, cats, 5)
	assert.Equal(t, "Campaign Management", cats[0].Name)
	assert.Equal(t, "createCampaign", cats[0].Endpoints[0].Value)
}

func TestOpenAPIRoute(t *testing.T) {
	_, body := get(t, newServer(t), "/openapi.json", nil)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths := doc["paths"].(map[string]any)
	assert.Contains(t, paths, "/api/v1/campaigns/{campaign_id}")
}

func TestMockRouteMounted(t *testing.T) {
	resp, body := get(t, newServer(t), "/api/v1/campaigns/camp_42", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var env map[string]any
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, "camp_42", env["data"].(map[string]any)["campaign_id"])
}

func TestProxyRequiresKey(t *testing.T) {
	resp, body := get(t, newServer(t), "/api/proxy/api/v1/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), `"missing_api_key"`)
}

func TestUnknownRoute(t *testing.T) {
	resp, body := get(t, newServer(t), "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"success":false`)
}

func TestCORS(t *testing.T) {
	resp, _ := get(t, newServer(t), "/healthz", map[string]string{"Origin": "http://example.com"})
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
