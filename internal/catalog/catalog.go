// Package catalog holds the documented endpoints of the campaign-management
// API, grouped by category.
package catalog

import (
	"errors"
	"fmt"

	"apiexplorer/internal/model"
)

var ErrUnknownEndpoint = errors.New("unknown endpoint")

type Category struct {
	Name      string           `json:"name"`
	Endpoints []model.Endpoint `json:"endpoints"`
}

// Catalog is immutable once built.
type Catalog struct {
	categories []Category
	index      map[string]model.Endpoint
}

// New validates the categories and stamps each endpoint with its category name.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{index: map[string]model.Endpoint{}}
	for _, cat := range categories {
		out := Category{Name: cat.Name}
		for _, ep := range cat.Endpoints {
			if ep.Value == "" {
				return nil, fmt.Errorf("endpoint %q in %q has no value", ep.Name, cat.Name)
			}
			if _, dup := c.index[ep.Value]; dup {
				return nil, fmt.Errorf("duplicate endpoint value %q", ep.Value)
			}
			switch ep.Method {
			case model.MethodGet, model.MethodPost, model.MethodDelete:
			default:
				return nil, fmt.Errorf("endpoint %q: unsupported method %q", ep.Value, ep.Method)
			}
			ep.Category = cat.Name
			c.index[ep.Value] = ep
			out.Endpoints = append(out.Endpoints, ep)
		}
		c.categories = append(c.categories, out)
	}
	return c, nil
}

// FromEndpoints groups endpoints by their Category field, keeping the order in
// which categories are first seen.
func FromEndpoints(eps []model.Endpoint) (*Catalog, error) {
	var cats []Category
	pos := map[string]int{}
	for _, ep := range eps {
		name := ep.Category
		if name == "" {
			name = "Other"
		}
		i, ok := pos[name]
		if !ok {
			i = len(cats)
			pos[name] = i
			cats = append(cats, Category{Name: name})
		}
		cats[i].Endpoints = append(cats[i].Endpoints, ep)
	}
	return New(cats)
}

// Default returns the bundled catalog.
func Default() *Catalog {
	c, err := New(bundled())
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Endpoints: append([]model.Endpoint(nil), cat.Endpoints...)}
	}
	return out
}

// Endpoints returns every endpoint in declaration order.
func (c *Catalog) Endpoints() []model.Endpoint {
	var out []model.Endpoint
	for _, cat := range c.categories {
		out = append(out, cat.Endpoints...)
	}
	return out
}

func (c *Catalog) Lookup(value string) (model.Endpoint, error) {
	ep, ok := c.index[value]
	if !ok {
		return model.Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, value)
	}
	return ep, nil
}

func (c *Catalog) Len() int { return len(c.index) }
