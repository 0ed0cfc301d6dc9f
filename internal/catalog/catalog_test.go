package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 34, c.Len())

	var names []string
	for _, cat := range c.Categories() {
		names = append(names, cat.Name)
		for _, ep := range cat.Endpoints {
			assert.Equal(t, cat.Name, ep.Category, ep.Value)
			assert.True(t, strings.HasPrefix(ep.URL, "/api/v1/"), ep.Value)
		}
	}
	assert.Equal(t, []string{
		"Campaign Management",
		"Email Account Management",
		"Analytics",
		"Lead Management",
		"Webhooks",
	}, names)
}

func TestDefaultPlaceholdersAreDeclared(t *testing.T) {
	for _, ep := range Default().Endpoints() {
		declared := map[string]bool{}
		for _, p := range ep.Params {
			declared[p.Name] = true
		}
		rest := ep.URL
		for {
			open := strings.IndexByte(rest, '{')
			if open < 0 {
				break
			}
			end := strings.IndexByte(rest[open:], '}')
			require.Positive(t, end, ep.Value)
			name := rest[open+1 : open+end]
			assert.True(t, declared[name], "%s: undeclared placeholder %s", ep.Value, name)
			rest = rest[open+end:]
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	ep, err := c.Lookup("getCampaignById")
	require.NoError(t, err)
	assert.Equal(t, model.MethodGet, ep.Method)
	assert.Equal(t, "/api/v1/campaigns/{campaign_id}", ep.URL)

	csv, err := c.Lookup("exportCampaignData")
	require.NoError(t, err)
	assert.Equal(t, model.ResponseCSV, csv.Responds())

	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestNewRejectsBadEntries(t *testing.T) {
	_, err := New([]Category{{Name: "A", Endpoints: []model.Endpoint{
		{Value: "x", Method: model.MethodGet},
		{Value: "x", Method: model.MethodPost},
	}}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]Category{{Name: "A", Endpoints: []model.Endpoint{{Value: "y", Method: "PATCH"}}}})
	assert.ErrorContains(t, err, "unsupported method")

	_, err = New([]Category{{Name: "A", Endpoints: []model.Endpoint{{Name: "nameless", Method: model.MethodGet}}}})
	assert.Error(t, err)
}

func TestFromEndpointsGroupsInFirstSeenOrder(t *testing.T) {
	c, err := FromEndpoints([]model.Endpoint{
		{Value: "a", Method: model.MethodGet, Category: "Leads"},
		{Value: "b", Method: model.MethodGet},
		{Value: "c", Method: model.MethodPost, Category: "Leads"},
	})
	require.NoError(t, err)

	cats := c.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Leads", cats[0].Name)
	assert.Len(t, cats[0].Endpoints, 2)
	assert.Equal(t, "Other", cats[1].Name)

	ep, err := c.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "Other", ep.Category)
}
