package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/model"
)

const (
	extParamOrder = "x-param-order"
	extRealURL    = "x-real-url"

	documentTitle   = "Campaign Management API"
	documentVersion = "1.0.0"
)

// Document describes a catalog as an OpenAPI 3.0 document. Parameters that
// fill a URL placeholder become path parameters; the rest go to the query
// string for GET and to a JSON body otherwise, matching what the request
// builder sends.
func Document(c *catalog.Catalog, serverURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   documentTitle,
			Version: documentVersion,
		},
		Paths: openapi3.NewPaths(),
	}
	if serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: serverURL}}
	}

	for _, cat := range c.Categories() {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: cat.Name})
		for _, ep := range cat.Endpoints {
			item := doc.Paths.Value(ep.URL)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(ep.URL, item)
			}
			op := operation(ep)
			switch ep.Method {
			case model.MethodGet:
				item.Get = op
			case model.MethodPost:
				item.Post = op
			case model.MethodDelete:
				item.Delete = op
			}
		}
	}
	return doc
}

func operation(ep model.Endpoint) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = ep.Value
	op.Summary = ep.Name
	op.Description = ep.Description
	op.Tags = []string{ep.Category}
	op.Extensions = map[string]any{}

	order := make([]any, 0, len(ep.Params))
	body := openapi3.NewObjectSchema()
	hasBody := ep.Method != model.MethodGet

	for _, p := range ep.Params {
		order = append(order, p.Name)
		schema := paramSchema(p.Type)
		switch {
		case strings.Contains(ep.URL, "{"+p.Name+"}"):
			param := openapi3.NewPathParameter(p.Name).WithSchema(schema).WithDescription(p.Description)
			op.AddParameter(param)
		case !hasBody:
			param := openapi3.NewQueryParameter(p.Name).WithSchema(schema).WithDescription(p.Description).WithRequired(p.Required)
			op.AddParameter(param)
		default:
			schema.Description = p.Description
			body.WithProperty(p.Name, schema)
			if p.Required {
				body.Required = append(body.Required, p.Name)
			}
		}
	}
	op.Extensions[extParamOrder] = order
	if ep.RealURL != "" {
		op.Extensions[extRealURL] = ep.RealURL
	}

	if hasBody {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchema(body),
		}
	}

	resp := openapi3.NewResponse().WithDescription("Successful response")
	if ep.Responds() == model.ResponseCSV {
		resp.WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/csv"}))
	} else {
		resp.WithContent(openapi3.NewContentWithJSONSchema(envelopeSchema()))
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{Value: resp}))
	return op
}

func paramSchema(t model.ParamType) *openapi3.Schema {
	switch t {
	case model.TypeNumber:
		return openapi3.NewFloat64Schema()
	case model.TypeBoolean:
		return openapi3.NewBoolSchema()
	case model.TypeArray:
		return openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	}
	return openapi3.NewStringSchema()
}

func envelopeSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("data", openapi3.NewSchema())
}
