package model

import "time"

type Method string

type ParamType string

type ResponseType string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"

	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"

	ResponseJSON ResponseType = "json"
	ResponseCSV  ResponseType = "csv"
)

type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
}

// Endpoint describes one documented remote operation. Value is its identity
// within the catalog.
type Endpoint struct {
	Name         string       `json:"name"`
	Value        string       `json:"value"`
	Category     string       `json:"category"`
	Method       Method       `json:"method"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	RealURL      string       `json:"realApiUrl,omitempty"`
	Params       []Param      `json:"params"`
	ResponseType ResponseType `json:"responseType,omitempty"`
}

// Responds reports the effective response type, json when unset.
func (e Endpoint) Responds() ResponseType {
	if e.ResponseType == "" {
		return ResponseJSON
	}
	return e.ResponseType
}

// EnvironmentSettings is persisted as-is; BaseAPIURL is always derived from
// the two toggles and never set on its own.
type EnvironmentSettings struct {
	UseRealAPI   bool   `json:"useRealApi"`
	BaseAPIURL   string `json:"baseApiUrl"`
	ProxyEnabled bool   `json:"proxyEnabled"`
}

type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Data       any               `json:"data"`
	Headers    map[string]string `json:"headers"`
	ElapsedMs  int64             `json:"time"`
	Timestamp  time.Time         `json:"timestamp"`
}
