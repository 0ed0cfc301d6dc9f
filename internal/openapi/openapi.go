package openapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"apiexplorer/internal/model"
)

const defaultTimeout = 10 * time.Second

// Load reads a document from an http(s) URL or a local file path. A leading
// '@' on a path is accepted and ignored.
func Load(ctx context.Context, src string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	var (
		doc *openapi3.T
		err error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		doc, err = loadURL(ctx, loader, src)
	} else {
		doc, err = loader.LoadFromFile(strings.TrimPrefix(src, "@"))
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func loadURL(ctx context.Context, loader *openapi3.Loader, src string) (*openapi3.T, error) {
	client := &http.Client{Timeout: defaultTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %s", src, resp.Status)
	}
	return loader.LoadFromIoReader(resp.Body)
}

// ExtractEndpoints converts GET, POST and DELETE operations back into
// catalog endpoints. Operations with other methods are skipped.
func ExtractEndpoints(doc *openapi3.T) []model.Endpoint {
	var out []model.Endpoint
	if doc == nil || doc.Paths == nil {
		return out
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		commonParams := item.Parameters

		addOp := func(method model.Method, op *openapi3.Operation) {
			if op == nil {
				return
			}
			ep := model.Endpoint{
				Name:        strings.TrimSpace(op.Summary),
				Value:       strings.TrimSpace(op.OperationID),
				Method:      method,
				Description: strings.TrimSpace(op.Description),
				URL:         path,
			}
			if ep.Value == "" {
				ep.Value = strings.ToLower(string(method)) + " " + path
			}
			if ep.Name == "" {
				ep.Name = ep.Value
			}
			if len(op.Tags) > 0 {
				ep.Category = op.Tags[0]
			}
			if s, ok := op.Extensions[extRealURL].(string); ok {
				ep.RealURL = s
			}

			params := append(openapi3.Parameters{}, commonParams...)
			params = append(params, op.Parameters...)
			for _, p := range params {
				if p == nil || p.Value == nil {
					continue
				}
				if p.Value.In != openapi3.ParameterInPath && p.Value.In != openapi3.ParameterInQuery {
					continue
				}
				ep.Params = append(ep.Params, model.Param{
					Name:        p.Value.Name,
					Required:    p.Value.Required,
					Description: strings.TrimSpace(p.Value.Description),
					Type:        schemaType(p.Value.Schema),
				})
			}
			ep.Params = append(ep.Params, extractBody(op)...)
			ep.Params = reorder(ep.Params, op.Extensions[extParamOrder])
			ep.ResponseType = responseType(op)

			out = append(out, ep)
		}

		addOp(model.MethodGet, item.Get)
		addOp(model.MethodPost, item.Post)
		addOp(model.MethodDelete, item.Delete)
	}

	return out
}

func schemaType(ref *openapi3.SchemaRef) model.ParamType {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return model.TypeString
	}
	switch t := ref.Value.Type; {
	case t.Is("number"), t.Is("integer"):
		return model.TypeNumber
	case t.Is("boolean"):
		return model.TypeBoolean
	case t.Is("array"):
		return model.TypeArray
	}
	return model.TypeString
}

func extractBody(op *openapi3.Operation) []model.Param {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	s := mt.Schema.Value
	if s.Type == nil || !s.Type.Is("object") {
		return nil
	}

	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []model.Param
	for _, name := range names {
		prop := s.Properties[name]
		p := model.Param{Name: name, Required: required[name], Type: schemaType(prop)}
		if prop != nil && prop.Value != nil {
			p.Description = strings.TrimSpace(prop.Value.Description)
		}
		fields = append(fields, p)
	}
	return fields
}

// reorder applies the x-param-order extension when present. Documents from
// elsewhere keep path, query, body order.
func reorder(params []model.Param, ext any) []model.Param {
	list, ok := ext.([]any)
	if !ok || len(list) == 0 {
		return params
	}
	byName := make(map[string]model.Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	out := make([]model.Param, 0, len(params))
	for _, v := range list {
		name, _ := v.(string)
		if p, ok := byName[name]; ok {
			out = append(out, p)
			delete(byName, name)
		}
	}
	for _, p := range params {
		if _, left := byName[p.Name]; left {
			out = append(out, p)
		}
	}
	return out
}

func responseType(op *openapi3.Operation) model.ResponseType {
	if op.Responses == nil {
		return model.ResponseJSON
	}
	ref := op.Responses.Value("200")
	if ref == nil || ref.Value == nil {
		return model.ResponseJSON
	}
	if ref.Value.Content.Get("text/csv") != nil {
		return model.ResponseCSV
	}
	return model.ResponseJSON
}
