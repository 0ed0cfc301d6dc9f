package httpclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/environment"
	"apiexplorer/internal/model"
)

const origin = environment.DefaultRemoteOrigin

var (
	mockEnv   = environment.Resolve(origin, false, true)
	proxyEnv  = environment.Resolve(origin, true, true)
	directEnv = environment.Resolve(origin, true, false)
)

func lookup(t *testing.T, value string) model.Endpoint {
	t.Helper()
	ep, err := catalog.Default().Lookup(value)
	require.NoError(t, err)
	return ep
}

func TestBuildMockGetByID(t *testing.T) {
	spec := Build(lookup(t, "getCampaignById"), mockEnv, map[string]string{"campaign_id": "camp_42"})
	assert.Equal(t, model.MethodGet, spec.Method)
	assert.Equal(t, "/api/v1/campaigns/camp_42", spec.URL)
	assert.Nil(t, spec.Body)
}

func TestBuildProxyPrefixesTemplate(t *testing.T) {
	spec := Build(lookup(t, "fetchCampaignsByLeadId"), proxyEnv, map[string]string{"lead_id": "lead 7"})
	assert.Equal(t, "/api/proxy/api/v1/leads/lead%207/campaigns", spec.URL)
}

func TestBuildDirectKeepsScheme(t *testing.T) {
	spec := Build(lookup(t, "getCampaignById"), directEnv, map[string]string{"campaign_id": "c1"})
	assert.Equal(t, origin+"/api/v1/campaigns/c1", spec.URL)
}

func TestBuildPrefersRealURL(t *testing.T) {
	ep := model.Endpoint{
		Value: "x", Method: model.MethodGet,
		URL: "/api/v1/things/{id}", RealURL: "v2/things/{id}",
		Params: []model.Param{{Name: "id", Type: model.TypeString, Required: true}},
	}
	vals := map[string]string{"id": "9"}
	assert.Equal(t, "/api/v1/things/9", Build(ep, mockEnv, vals).URL)
	assert.Equal(t, origin+"/v2/things/9", Build(ep, directEnv, vals).URL)
}

func TestBuildQueryInDeclarationOrder(t *testing.T) {
	ep := model.Endpoint{
		Value: "q", Method: model.MethodGet, URL: "/api/v1/c/{id}/stats",
		Params: []model.Param{
			{Name: "id", Type: model.TypeString},
			{Name: "start_date", Type: model.TypeString},
			{Name: "end_date", Type: model.TypeString},
			{Name: "empty", Type: model.TypeString},
		},
	}
	spec := Build(ep, mockEnv, map[string]string{
		"id": "1", "start_date": "2024-01-01", "end_date": "a&b",
	})
	assert.Equal(t, "/api/v1/c/1/stats?start_date=2024-01-01&end_date=a%26b", spec.URL)
}

func TestBuildBodyTypes(t *testing.T) {
	ep := model.Endpoint{
		Value: "b", Method: model.MethodPost, URL: "/api/v1/campaigns/{campaign_id}/sequences",
		Params: []model.Param{
			{Name: "campaign_id", Type: model.TypeString},
			{Name: "sequences", Type: model.TypeArray},
			{Name: "max", Type: model.TypeNumber},
			{Name: "label", Type: model.TypeString},
			{Name: "flag", Type: model.TypeBoolean},
		},
	}

	spec := Build(ep, mockEnv, map[string]string{
		"campaign_id": "c1", "sequences": "[1,2,3]", "max": "12.5", "label": "42", "flag": "true",
	})
	assert.Equal(t, "/api/v1/campaigns/c1/sequences", spec.URL)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, spec.Body["sequences"])
	assert.Equal(t, 12.5, spec.Body["max"])
	assert.Equal(t, "42", spec.Body["label"])
	assert.Equal(t, "true", spec.Body["flag"])
	assert.NotContains(t, spec.Body, "campaign_id")

	spec = Build(ep, mockEnv, map[string]string{"sequences": "not-json", "max": "lots"})
	assert.Equal(t, "not-json", spec.Body["sequences"])
	assert.Equal(t, "lots", spec.Body["max"])
}

func TestBuildNonGetAlwaysHasBody(t *testing.T) {
	spec := Build(lookup(t, "deleteCampaign"), mockEnv, map[string]string{"campaign_id": "c1"})
	require.NotNil(t, spec.Body)
	assert.Empty(t, spec.Body)
}

func TestBuildMissingPlaceholder(t *testing.T) {
	ep := lookup(t, "getCampaignById")

	assert.Equal(t, "/api/v1/campaigns/", Build(ep, mockEnv, nil).URL)

	_, err := BuildStrict(ep, mockEnv, nil)
	var missing *MissingParamError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "campaign_id", missing.Name)
}

func TestBuildAddsLeadingSlash(t *testing.T) {
	ep := model.Endpoint{Value: "r", Method: model.MethodGet, URL: "health"}
	assert.Equal(t, "/api/v1/health", Build(ep, mockEnv, nil).URL)
}

func TestPreviewURL(t *testing.T) {
	ep := lookup(t, "getLeadMessageHistory")
	got := PreviewURL(ep, proxyEnv, map[string]string{"campaign_id": "c1"})
	assert.Equal(t, "/api/proxy/api/v1/campaigns/c1/leads/{lead_id}/message-history", got)
}

func TestCollapseSlashes(t *testing.T) {
	tests := map[string]string{
		"/api//v1///x":              "/api/v1/x",
		"https://host//a//b":        "https://host/a/b",
		"http://h/x?next=//y":       "http://h/x?next=/y",
		"no-slashes":                "no-slashes",
		"/path/with://inside//more": "/path/with:/inside/more",
	}
	for in, want := range tests {
		assert.Equal(t, want, CollapseSlashes(in), in)
	}
}

func TestCollapseIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOfN(rapid.SampledFrom([]rune{'/', ':', 'a', 'h', '.', '?'}), 0, 40, -1).Draw(t, "s")
		once := CollapseSlashes(s)
		if twice := CollapseSlashes(once); twice != once {
			t.Fatalf("collapse not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

func TestSubstitutionLeavesNoBraces(t *testing.T) {
	eps := catalog.Default().Endpoints()
	rapid.Check(t, func(t *rapid.T) {
		ep := rapid.SampledFrom(eps).Draw(t, "endpoint")
		vals := map[string]string{}
		for _, p := range ep.Params {
			vals[p.Name] = rapid.StringMatching(`[a-zA-Z0-9_ {}]{1,12}`).Draw(t, p.Name)
		}
		for _, env := range []model.EnvironmentSettings{mockEnv, proxyEnv, directEnv} {
			u := Build(ep, env, vals).URL
			path, _, _ := strings.Cut(u, "?")
			if strings.ContainsAny(path, "{}") {
				t.Fatalf("%s: unresolved placeholder in %q", ep.Value, u)
			}
		}
	})
}

func TestConsumedParamsNeverLeak(t *testing.T) {
	eps := catalog.Default().Endpoints()
	rapid.Check(t, func(t *rapid.T) {
		ep := rapid.SampledFrom(eps).Draw(t, "endpoint")
		vals := map[string]string{}
		for _, p := range ep.Params {
			vals[p.Name] = rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(t, p.Name)
		}
		spec := Build(ep, mockEnv, vals)
		_, query, _ := strings.Cut(spec.URL, "?")
		for _, p := range ep.Params {
			if !strings.Contains(ep.URL, "{"+p.Name+"}") {
				continue
			}
			if _, ok := spec.Body[p.Name]; ok {
				t.Fatalf("%s: path param %s in body", ep.Value, p.Name)
			}
			for _, kv := range strings.Split(query, "&") {
				if strings.HasPrefix(kv, p.Name+"=") {
					t.Fatalf("%s: path param %s in query", ep.Value, p.Name)
				}
			}
		}
	})
}
