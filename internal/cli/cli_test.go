package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/config"
	"apiexplorer/internal/explorer"
	"apiexplorer/internal/httpclient"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvStorageDir, t.TempDir())
	t.Setenv(config.EnvRemoteOrigin, "")
	t.Setenv(config.EnvServerURL, "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnvCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "env")
	require.NoError(t, err)
	assert.Equal(t, "use real api:  false\nproxy enabled: true\nbase api url:  /api/v1\n", out)

	out, err = run(t, "env", "--real")
	require.NoError(t, err)
	assert.Contains(t, out, "base api url:  /api/proxy\n")

	// persisted across invocations
	out, err = run(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "use real api:  true\n")

	out, err = run(t, "env", "--proxy=false")
	require.NoError(t, err)
	assert.Contains(t, out, "base api url:  https://api.campaignmanagement.example.com\n")
}

func TestEnvCommandRemoteOriginOverride(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvRemoteOrigin, "https://staging.example.com")

	out, err := run(t, "env", "--real", "--proxy=false")
	require.NoError(t, err)
	assert.Contains(t, out, "base api url:  https://staging.example.com\n")
}

func TestKeyCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "key", "show")
	require.NoError(t, err)
	assert.Equal(t, "api key: (none)\nin use:  false\n", out)

	out, err = run(t, "key", "set", "sk_live_abcdef123")
	require.NoError(t, err)
	assert.Equal(t, "api key: sk_l...f123\nin use:  false\n", out)

	out, err = run(t, "key", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "in use:  true\n")

	out, err = run(t, "key", "clear")
	require.NoError(t, err)
	assert.Equal(t, "api key: (none)\nin use:  true\n", out)

	out, err = run(t, "key", "disable")
	require.NoError(t, err)
	assert.Contains(t, out, "in use:  false\n")
}

func TestEndpointsCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "endpoints")
	require.NoError(t, err)
	for _, c := range catalog.Default().Categories() {
		assert.Contains(t, out, c.Name+"\n")
	}
	assert.Contains(t, out, "createCampaign")
	assert.Contains(t, out, "/api/v1/campaigns/{campaign_id}/export")
}

func TestEndpointsFromOpenAPIFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      responses:
        "200":
          description: ok
`), 0o600))

	out, err := run(t, "endpoints", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "pets\n")
	assert.Contains(t, out, "listPets")
	assert.NotContains(t, out, "createCampaign")
}

func TestOpenAPICommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "openapi", "--server-url", "http://localhost:9000/")
	require.NoError(t, err)

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Servers []struct{ URL string }    `json:"servers"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://localhost:9000", doc.Servers[0].URL)
	assert.Contains(t, doc.Paths["/api/v1/campaigns/{campaign_id}"], "get")
	assert.Contains(t, doc.Paths["/api/v1/campaigns/{campaign_id}"], "delete")
}

type recorder struct {
	mu   sync.Mutex
	uris []string
}

func (r *recorder) add(uri string) {
	r.mu.Lock()
	r.uris = append(r.uris, uri)
	r.mu.Unlock()
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uris...)
}

func upstream(t *testing.T, status int, body string) *recorder {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.EnvServerURL, srv.URL)
	return rec
}

func TestCallCommand(t *testing.T) {
	isolate(t)
	rec := upstream(t, http.StatusOK, `{"success":true,"data":{"id":"camp_42","name":"Q3"}}`)

	out, err := run(t, "call", "getCampaignById", "-p", "campaign_id=camp_42", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v1/campaigns/camp_42"}, rec.seen())
	assert.Contains(t, out, "200 OK")
	assert.Contains(t, out, `"id": "camp_42"`)
}

func TestCallCommandJSONPath(t *testing.T) {
	isolate(t)
	upstream(t, http.StatusOK, `{"success":true,"data":{"id":"camp_42"}}`)

	out, err := run(t, "call", "getCampaignById", "-p", "campaign_id=camp_42", "--jsonpath", "$.data.id", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "camp_42\n", out)

	_, err = run(t, "call", "getCampaignById", "-p", "campaign_id=camp_42", "--jsonpath", "$.nope", "--no-color")
	assert.Error(t, err)
}

func TestCallCommandSendsKeyThroughProxy(t *testing.T) {
	isolate(t)
	keys := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("X-API-Key")
		w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.EnvServerURL, srv.URL)

	_, err := run(t, "env", "--real")
	require.NoError(t, err)
	_, err = run(t, "key", "set", "sk_live_abcdef123")
	require.NoError(t, err)
	_, err = run(t, "key", "enable")
	require.NoError(t, err)

	_, err = run(t, "call", "listCampaigns", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "sk_live_abcdef123", <-keys)

	_, err = run(t, "call", "listCampaigns", "--skip-auth", "--no-color")
	require.NoError(t, err)
	assert.Empty(t, <-keys)
}

func TestCallCommandErrorStatus(t *testing.T) {
	isolate(t)
	upstream(t, http.StatusInternalServerError, `{"success":false,"message":"boom"}`)

	out, err := run(t, "call", "listCampaigns", "--no-color")
	var reqErr *httpclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "boom")
}

func TestCallCommandRejectsBadInput(t *testing.T) {
	isolate(t)
	rec := upstream(t, http.StatusOK, `{}`)

	_, err := run(t, "call", "nope")
	assert.ErrorIs(t, err, catalog.ErrUnknownEndpoint)

	_, err = run(t, "call", "getCampaignById")
	var missing *explorer.MissingParamsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"campaign_id"}, missing.Names)

	_, err = run(t, "call", "getCampaignById", "-p", "campaign_id")
	assert.ErrorContains(t, err, "want name=value")

	_, err = run(t, "call", "getCampaignById", "-p", "bogus=1")
	assert.ErrorContains(t, err, "bogus")

	assert.Empty(t, rec.seen())
}
