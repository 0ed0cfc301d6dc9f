package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/model"
)

func TestFuzzyMatchScore(t *testing.T) {
	s, ok := fuzzyMatchScore("", "anything")
	assert.True(t, ok)
	assert.Zero(t, s)

	_, ok = fuzzyMatchScore("xyz", "GET /api/v1/campaigns")
	assert.False(t, ok)

	prefix, ok := fuzzyMatchScore("get", "GET /api/v1/campaigns")
	assert.True(t, ok)
	later, ok := fuzzyMatchScore("cam", "GET /api/v1/campaigns")
	assert.True(t, ok)
	assert.Less(t, prefix, later)
}

func TestFilterEndpoints(t *testing.T) {
	eps := []model.Endpoint{
		{Name: "Delete Campaign", Method: model.MethodDelete, URL: "/api/v1/campaigns/{campaign_id}", Category: "Campaign Management"},
		{Name: "List Leads", Method: model.MethodGet, URL: "/api/v1/leads", Category: "Lead Management"},
		{Name: "Get Campaign", Method: model.MethodGet, URL: "/api/v1/campaigns/{campaign_id}", Category: "Campaign Management"},
	}

	assert.Equal(t, []int{0, 1, 2}, filterEndpoints(eps, ""))
	assert.Equal(t, []int{0, 1, 2}, filterEndpoints(eps, "   "))
	assert.Equal(t, []int{1}, filterEndpoints(eps, "leads"))
	// ties keep catalog order; the delete row matches late in its text
	assert.Equal(t, []int{1, 2, 0}, filterEndpoints(eps, "get"))
	assert.Empty(t, filterEndpoints(eps, "webhook"))
}

func TestFilterEndpointsFindsEveryURLMatch(t *testing.T) {
	eps := catalog.Default().Endpoints()
	got := map[int]bool{}
	for _, i := range filterEndpoints(eps, "email-accounts") {
		got[i] = true
	}
	for i, ep := range eps {
		if strings.Contains(ep.URL, "email-accounts") {
			assert.True(t, got[i], ep.Value)
		}
	}
}

func TestFilterEndpointsSubsetProperty(t *testing.T) {
	eps := catalog.Default().Endpoints()
	rapid.Check(t, func(t *rapid.T) {
		needle := rapid.StringMatching(`[a-z ]{0,6}`).Draw(t, "needle")
		got := filterEndpoints(eps, needle)
		seen := map[int]bool{}
		for _, i := range got {
			if i < 0 || i >= len(eps) {
				t.Fatalf("index %d out of range", i)
			}
			if seen[i] {
				t.Fatalf("index %d returned twice", i)
			}
			seen[i] = true
		}
	})
}
