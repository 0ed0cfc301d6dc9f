package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"apiexplorer/internal/model"
)

// Printer writes a response for the one-shot CLI.
type Printer struct {
	Out     io.Writer
	Verbose bool
	NoColor bool
}

func (p *Printer) Print(resp *model.Response, rt model.ResponseType) {
	p.status(resp)
	if p.Verbose {
		p.headers(resp.Headers)
	}
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, p.body(resp.Data, rt))
}

// PrintValue prints a value selected out of a response body.
func (p *Printer) PrintValue(v any) {
	fmt.Fprintln(p.Out, p.body(v, model.ResponseJSON))
}

func (p *Printer) Error(err error) {
	p.paint(color.New(color.FgRed, color.Bold)).Fprintf(p.Out, "Error: %v\n", err)
}

func (p *Printer) status(resp *model.Response) {
	var c *color.Color
	switch {
	case resp.Status >= 200 && resp.Status < 300:
		c = color.New(color.FgGreen, color.Bold)
	case resp.Status >= 300 && resp.Status < 400:
		c = color.New(color.FgCyan, color.Bold)
	case resp.Status >= 400 && resp.Status < 500:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	p.paint(c).Fprintf(p.Out, "%d %s", resp.Status, resp.StatusText)
	dim := p.paint(color.New(color.Faint))
	dim.Fprintf(p.Out, "  %dms\n", resp.ElapsedMs)
}

func (p *Printer) headers(h map[string]string) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	name := p.paint(color.New(color.FgCyan))
	for _, k := range keys {
		name.Fprintf(p.Out, "%s", k)
		fmt.Fprintf(p.Out, ": %s\n", h[k])
	}
}

func (p *Printer) body(data any, rt model.ResponseType) string {
	if _, isText := data.(string); isText || p.NoColor {
		return Body(data, rt)
	}
	return Colorize(data)
}

func (p *Printer) paint(c *color.Color) *color.Color {
	if p.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}
