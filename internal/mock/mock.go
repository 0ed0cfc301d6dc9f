// Package mock serves canned responses for every endpoint in a catalog.
package mock

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/model"
)

const DefaultDelay = 400 * time.Millisecond

// Envelope is the body shape of every JSON mock response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type Server struct {
	catalog *catalog.Catalog
	delay   time.Duration
	log     *zap.Logger
}

func New(c *catalog.Catalog, delay time.Duration, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{catalog: c, delay: delay, log: log}
}

var placeholder = regexp.MustCompile(`\{([^{}/]+)\}`)

// RoutePath converts a {name} template into fiber's :name syntax.
func RoutePath(template string) string {
	return placeholder.ReplaceAllString(template, ":$1")
}

// Register mounts one route per relative catalog URL. Routes with fewer
// parameters go first so /email-accounts/reconnect is matched before
// /email-accounts/:email_account_id.
func (s *Server) Register(r fiber.Router) {
	var eps []model.Endpoint
	for _, ep := range s.catalog.Endpoints() {
		if strings.HasPrefix(ep.URL, "/") {
			eps = append(eps, ep)
		}
	}
	sort.SliceStable(eps, func(i, j int) bool {
		return strings.Count(eps[i].URL, "{") < strings.Count(eps[j].URL, "{")
	})

	for _, ep := range eps {
		r.Add(string(ep.Method), RoutePath(ep.URL), s.handler(ep))
	}
	s.log.Debug("mock routes registered", zap.Int("count", len(eps)))
}

func (s *Server) handler(ep model.Endpoint) fiber.Handler {
	names := placeholder.FindAllStringSubmatch(ep.URL, -1)
	return func(c *fiber.Ctx) error {
		s.wait(c)

		if ep.Responds() == model.ResponseCSV {
			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(fiber.HeaderContentDisposition, "attachment; filename=campaign_export.csv")
			return c.SendString(campaignExportCSV)
		}

		params := make(map[string]string, len(names))
		for _, m := range names {
			params[m[1]] = c.Params(m[1])
		}
		return c.JSON(Respond(ep, params))
	}
}

func (s *Server) wait(c *fiber.Ctx) {
	if s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-c.Context().Done():
	}
}

// Respond builds the envelope for ep. Inbound path parameters replace data
// keys of the same name.
func Respond(ep model.Endpoint, params map[string]string) Envelope {
	f, ok := fixtures[ep.Value]
	if !ok {
		data := obj{}
		for k, v := range params {
			data[k] = v
		}
		return Envelope{Success: true, Data: data, Message: ep.Name + " mock response"}
	}

	data := f.data()
	if m, isObj := data.(obj); isObj {
		for k, v := range params {
			if _, has := m[k]; has && v != "" {
				m[k] = v
			}
		}
	}
	return Envelope{Success: true, Data: data, Message: f.message}
}
