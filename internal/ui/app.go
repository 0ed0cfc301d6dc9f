package ui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"go.uber.org/zap"

	"apiexplorer/internal/explorer"
	"apiexplorer/internal/model"
	"apiexplorer/internal/render"
)

type screen int

const (
	screenEndpoints screen = iota
	screenBuilder
	screenResponse
)

type editKind int

const (
	editParam editKind = iota
	editKey
)

// Environment is the part of environment.Resolver the explorer toggles.
type Environment interface {
	Current() model.EnvironmentSettings
	SetUseRealAPI(bool) (model.EnvironmentSettings, error)
	SetProxyEnabled(bool) (model.EnvironmentSettings, error)
}

// Credentials is implemented by *credentials.Store.
type Credentials interface {
	Key() (string, error)
	SetKey(string) error
	Enabled() (bool, error)
	SetEnabled(bool) error
}

type App struct {
	g *gocui.Gui

	session *explorer.Session
	env     Environment
	creds   Credentials
	log     *zap.Logger
	timeout time.Duration

	scr screen

	endpoints []model.Endpoint
	filter    string
	filtered  []int
	selected  int

	editing    bool
	editKind   editKind
	editTarget string

	skipAuth bool
	pending  bool
	errorMsg string
}

func NewApp(s *explorer.Session, env Environment, creds Credentials, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		session:   s,
		env:       env,
		creds:     creds,
		log:       log,
		timeout:   30 * time.Second,
		scr:       screenEndpoints,
		endpoints: s.Catalog().Endpoints(),
	}
	a.recomputeFilter()
	return a
}

// SetTimeout bounds each submission. Zero disables the bound.
func (a *App) SetTimeout(d time.Duration) {
	a.timeout = d
}

// singleLineEditor is an editor that doesn't consume Enter (lets keybinding handle it)
type singleLineEditor struct{}

func (e singleLineEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	case key == gocui.KeyHome || key == gocui.KeyCtrlA:
		v.SetCursor(0, 0)
	case key == gocui.KeyEnd || key == gocui.KeyCtrlE:
		line := v.Buffer()
		v.SetCursor(len(line)-1, 0)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyEnter:
		// don't handle - let keybinding process it
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	}
}

func (a *App) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	a.g = g

	g.BgColor = gocui.ColorBlack
	g.FgColor = gocui.ColorWhite
	g.Cursor = true
	g.InputEsc = true
	g.SetManagerFunc(a.layout)

	if err := a.bindKeys(); err != nil {
		return err
	}
	a.log.Info("explorer started", zap.Int("endpoints", len(a.endpoints)))
	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderHeader()

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderFooter()

	var err error
	switch a.scr {
	case screenEndpoints:
		err = a.layoutEndpoints(maxX, maxY)
	case screenBuilder:
		err = a.layoutBuilder(maxX, maxY)
	case screenResponse:
		err = a.layoutResponse(maxX, maxY)
	}
	if err != nil {
		return err
	}
	if a.editing {
		return a.layoutEdit(maxX, maxY)
	}
	return nil
}

func (a *App) layoutEndpoints(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "endpoints"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
		v.Editable = false
	}
	if v, err := a.g.SetView("endpoints", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Endpoints"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
		v.Autoscroll = false
	}
	a.renderFilter()
	a.renderEndpoints()
	if !a.editing {
		if _, err := a.g.SetCurrentView("endpoints"); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) layoutBuilder(maxX, maxY int) error {
	a.clearMainViews([]string{"selected", "params"})

	if v, err := a.g.SetView("selected", 0, 2, maxX-1, 7); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Selected endpoint"
		v.Wrap = true
	}
	if v, err := a.g.SetView("params", 0, 7, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Parameters"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}
	a.renderBuilder()
	if !a.editing {
		if _, err := a.g.SetCurrentView("params"); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) layoutResponse(maxX, maxY int) error {
	a.clearMainViews([]string{"response"})

	if v, err := a.g.SetView("response", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Response"
		v.Wrap = false
		v.Autoscroll = false
	}
	a.renderResponse()
	if !a.editing {
		if _, err := a.g.SetCurrentView("response"); err != nil {
			return err
		}
	}
	return nil
}

// layoutEdit keeps the centered modal on top of whatever screen is showing.
func (a *App) layoutEdit(maxX, maxY int) error {
	width := 60
	if width > maxX-4 {
		width = maxX - 4
	}
	height := 2
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	v, err := a.g.SetView("edit", x0, y0, x0+width, y0+height)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = a.editTitle()
	v.Editable = true
	v.Editor = singleLineEditor{}
	v.BgColor = gocui.ColorBlack
	v.FgColor = gocui.ColorWhite
	if _, err := a.g.SetViewOnTop("edit"); err != nil {
		return err
	}
	if _, err := a.g.SetCurrentView("edit"); err != nil {
		return err
	}
	return nil
}

func (a *App) editTitle() string {
	if a.editKind == editKey {
		return " API key (enter=save, empty clears, esc=cancel) "
	}
	return fmt.Sprintf(" %s (enter=ok, esc=cancel) ", a.editTarget)
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{"header": true, "footer": true, "edit": true}
	for _, k := range keep {
		keepSet[k] = true
	}

	for _, n := range []string{"filter", "endpoints", "selected", "params", "response"} {
		if keepSet[n] {
			continue
		}
		if v, err := a.g.View(n); err == nil {
			v.Clear()
			a.g.DeleteView(n)
		}
	}
}

func (a *App) bindKeys() error {
	g := a.g
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, a.quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyEsc, gocui.ModNone, a.back); err != nil {
		return err
	}
	for _, view := range []string{"params", "response"} {
		if err := g.SetKeybinding(view, 'q', gocui.ModNone, a.quit); err != nil {
			return err
		}
	}

	// environment and credentials, available on every screen
	toggles := []struct {
		key     gocui.Key
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlE, a.toggleRealAPI},
		{gocui.KeyCtrlP, a.toggleProxy},
		{gocui.KeyCtrlK, a.openKeyEdit},
		{gocui.KeyCtrlU, a.toggleUseKey},
		{gocui.KeyCtrlT, a.toggleSkipAuth},
	}
	for _, t := range toggles {
		if err := g.SetKeybinding("", t.key, gocui.ModNone, t.handler); err != nil {
			return err
		}
	}

	// endpoints list
	if err := g.SetKeybinding("endpoints", gocui.KeyArrowDown, gocui.ModNone, a.moveSel(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyArrowUp, gocui.ModNone, a.moveSel(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyEnter, gocui.ModNone, a.openBuilder); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyBackspace, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyBackspace2, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeySpace, gocui.ModNone, a.appendFilterRune(' ')); err != nil {
		return err
	}
	// number shortcuts 1-5 for quick endpoint selection
	for i := 1; i <= 5; i++ {
		if err := g.SetKeybinding("endpoints", rune('0'+i), gocui.ModNone, a.selectEndpointByNumber(i)); err != nil {
			return err
		}
	}
	for r := rune(33); r <= rune(126); r++ {
		if r >= '1' && r <= '5' {
			continue
		}
		if err := g.SetKeybinding("endpoints", r, gocui.ModNone, a.appendFilterRune(r)); err != nil {
			return err
		}
	}

	// builder
	if err := g.SetKeybinding("params", gocui.KeyArrowDown, gocui.ModNone, a.moveRow(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("params", gocui.KeyArrowUp, gocui.ModNone, a.moveRow(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("params", gocui.KeyEnter, gocui.ModNone, a.beginEdit); err != nil {
		return err
	}
	if err := g.SetKeybinding("params", 'd', gocui.ModNone, a.resetParam); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlR, gocui.ModNone, a.executeRequest); err != nil {
		return err
	}

	// edit modal
	if err := g.SetKeybinding("edit", gocui.KeyEnter, gocui.ModNone, a.confirmEdit); err != nil {
		return err
	}

	// response
	if err := g.SetKeybinding("response", gocui.KeyArrowDown, gocui.ModNone, a.scrollResponse(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyArrowUp, gocui.ModNone, a.scrollResponse(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyPgdn, gocui.ModNone, a.scrollResponse(10)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyPgup, gocui.ModNone, a.scrollResponse(-10)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", 'r', gocui.ModNone, a.rerun); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyEnter, gocui.ModNone, a.responseToEndpoints); err != nil {
		return err
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) back(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return a.closeEdit()
	}
	switch a.scr {
	case screenResponse:
		a.scr = screenBuilder
	case screenBuilder:
		a.scr = screenEndpoints
	case screenEndpoints:
		if a.filter != "" {
			a.filter = ""
			a.recomputeFilter()
		}
	}
	a.errorMsg = ""
	return nil
}

func (a *App) toggleRealAPI(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	cur := a.env.Current()
	if _, err := a.env.SetUseRealAPI(!cur.UseRealAPI); err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.errorMsg = ""
	return nil
}

func (a *App) toggleProxy(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	cur := a.env.Current()
	if _, err := a.env.SetProxyEnabled(!cur.ProxyEnabled); err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.errorMsg = ""
	return nil
}

func (a *App) toggleUseKey(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	on, err := a.creds.Enabled()
	if err == nil {
		err = a.creds.SetEnabled(!on)
	}
	if err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.errorMsg = ""
	return nil
}

func (a *App) toggleSkipAuth(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	a.skipAuth = !a.skipAuth
	a.session.SetSkipAuth(a.skipAuth)
	return nil
}

func (a *App) openKeyEdit(g *gocui.Gui, v *gocui.View) error {
	if a.editing {
		return nil
	}
	key, err := a.creds.Key()
	if err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	return a.openEdit(editKey, "", key)
}

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints || a.editing {
			return nil
		}
		a.filter += string(r)
		a.recomputeFilter()
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || a.editing {
		return nil
	}
	if len(a.filter) == 0 {
		return nil
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
	return nil
}

func (a *App) recomputeFilter() {
	a.filtered = filterEndpoints(a.endpoints, a.filter)
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints || len(a.filtered) == 0 {
			return nil
		}
		a.selected += delta
		if a.selected < 0 {
			a.selected = 0
		}
		if a.selected >= len(a.filtered) {
			a.selected = len(a.filtered) - 1
		}
		if v != nil {
			a.scrollTo(v, a.selected)
		}
		return nil
	}
}

// scrollTo moves the cursor to row, shifting the origin when row is off screen.
func (a *App) scrollTo(v *gocui.View, row int) {
	_, h := v.Size()
	ox, oy := v.Origin()
	if row < oy {
		oy = row
	} else if h > 0 && row >= oy+h {
		oy = row - h + 1
	}
	v.SetOrigin(ox, oy)
	v.SetCursor(0, row-oy)
}

func (a *App) openBuilder(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || len(a.filtered) == 0 {
		return nil
	}
	ep := a.endpoints[a.filtered[a.selected]]
	if _, err := a.session.Select(ep.Value); err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.scr = screenBuilder
	a.errorMsg = ""
	if v, err := a.g.View("params"); err == nil {
		v.SetOrigin(0, 0)
		v.SetCursor(0, 0)
	}
	return nil
}

func (a *App) selectEndpointByNumber(num int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints {
			return nil
		}
		idx := num - 1 // convert 1-based to 0-based
		if idx < 0 || idx >= len(a.filtered) {
			return nil
		}
		a.selected = idx
		return a.openBuilder(g, v)
	}
}

func (a *App) responseToEndpoints(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse {
		return nil
	}
	a.scr = screenEndpoints
	a.errorMsg = ""
	return nil
}

func (a *App) moveRow(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenBuilder || a.editing || v == nil {
			return nil
		}
		ep, ok := a.session.Selected()
		if !ok || len(ep.Params) == 0 {
			return nil
		}
		row := a.selectedRow(v) + delta
		if row < 0 || row >= len(ep.Params) {
			return nil
		}
		a.scrollTo(v, row)
		return nil
	}
}

func (a *App) selectedRow(v *gocui.View) int {
	_, cy := v.Cursor()
	_, oy := v.Origin()
	return oy + cy
}

// selectedParam maps the cursor row of the params view back to a parameter.
func (a *App) selectedParam(v *gocui.View) (model.Param, bool) {
	ep, ok := a.session.Selected()
	if !ok || v == nil {
		return model.Param{}, false
	}
	i := a.selectedRow(v)
	if i < 0 || i >= len(ep.Params) {
		return model.Param{}, false
	}
	return ep.Params[i], true
}

func (a *App) resetParam(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	p, ok := a.selectedParam(v)
	if !ok {
		return nil
	}
	if err := a.session.Set(p.Name, ""); err != nil {
		a.errorMsg = err.Error()
	}
	return nil
}

func (a *App) beginEdit(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	p, ok := a.selectedParam(v)
	if !ok {
		return nil
	}
	return a.openEdit(editParam, p.Name, a.session.Values()[p.Name])
}

func (a *App) openEdit(kind editKind, target, current string) error {
	a.editing = true
	a.editKind = kind
	a.editTarget = target

	maxX, maxY := a.g.Size()
	if err := a.layoutEdit(maxX, maxY); err != nil {
		return err
	}
	if ev, err := a.g.View("edit"); err == nil {
		ev.Clear()
		fmt.Fprint(ev, current)
		ev.SetCursor(len(current), 0)
	}
	return nil
}

func (a *App) closeEdit() error {
	if !a.editing {
		return nil
	}
	if v, err := a.g.View("edit"); err == nil {
		v.Clear()
		a.g.DeleteView("edit")
	}
	a.editing = false
	a.editTarget = ""
	return nil
}

func (a *App) confirmEdit(g *gocui.Gui, v *gocui.View) error {
	if !a.editing {
		return nil
	}
	val := strings.TrimSpace(viewText(v))

	var err error
	switch a.editKind {
	case editParam:
		err = a.session.Set(a.editTarget, val)
	case editKey:
		err = a.creds.SetKey(val)
	}
	if err != nil {
		a.errorMsg = err.Error()
	} else {
		a.errorMsg = ""
	}
	return a.closeEdit()
}

func (a *App) executeRequest(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	return a.submit()
}

func (a *App) rerun(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse || a.editing {
		return nil
	}
	return a.submit()
}

// submit sends the request in the background. The main loop only observes
// the result through g.Update, so App state stays single-threaded.
func (a *App) submit() error {
	if a.pending {
		a.errorMsg = explorer.ErrBusy.Error()
		return nil
	}
	if missing := a.session.Missing(); len(missing) > 0 {
		a.errorMsg = (&explorer.MissingParamsError{Names: missing}).Error()
		return nil
	}
	a.pending = true
	a.errorMsg = ""
	a.scr = screenResponse
	if v, err := a.g.View("response"); err == nil {
		v.SetOrigin(0, 0)
	}

	go func() {
		ctx := context.Background()
		cancel := func() {}
		if a.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
		}
		defer cancel()

		_, err := a.session.Submit(ctx)
		if err != nil {
			a.log.Debug("request failed", zap.Error(err))
		}
		a.g.Update(func(g *gocui.Gui) error {
			a.pending = false
			var missing *explorer.MissingParamsError
			if errors.As(err, &missing) {
				a.scr = screenBuilder
				a.errorMsg = err.Error()
			}
			return nil
		})
	}()
	return nil
}

func (a *App) scrollResponse(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenResponse || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		oy += delta
		if oy < 0 {
			oy = 0
		}
		if n := len(viewLines(v)); oy >= n {
			oy = n - 1
		}
		if oy < 0 {
			oy = 0
		}
		v.SetOrigin(ox, oy)
		return nil
	}
}

func (a *App) renderHeader() {
	v, err := a.g.View("header")
	if err != nil {
		return
	}
	v.Clear()
	settings := a.env.Current()
	fmt.Fprintf(v, "%sapi explorer%s  %s %s   %s", colorGreen, colorReset, envLabel(settings), settings.BaseAPIURL, a.authLabel())
}

func (a *App) authLabel() string {
	key, _ := a.creds.Key()
	enabled, _ := a.creds.Enabled()
	return authLabel(key, enabled, a.skipAuth)
}

func (a *App) renderFooter() {
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	if a.errorMsg != "" {
		fmt.Fprint(v, colorRed+a.errorMsg+colorReset)
		return
	}
	var msg string
	switch {
	case a.editing:
		msg = "enter: save   esc: cancel"
	case a.scr == screenEndpoints:
		msg = "type: filter   1-5: quick select   enter: select   ^E real   ^P proxy   ^K key   ^U use key   ^C quit"
	case a.scr == screenBuilder:
		msg = "enter: edit   d: reset param   ctrl+r: run   ^T skip auth   ^K key   esc: back   q: quit"
	case a.scr == screenResponse:
		msg = "up/down/pgup/pgdn: scroll   r: rerun   enter: endpoints   esc: back   q: quit"
	}
	fmt.Fprint(v, msg)
}

func (a *App) renderFilter() {
	v, err := a.g.View("filter")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprintf(v, "%s", a.filter)
}

func (a *App) renderEndpoints() {
	v, err := a.g.View("endpoints")
	if err != nil {
		return
	}
	v.Clear()

	for i, idx := range a.filtered {
		ep := a.endpoints[idx]
		// show number prefix for top 5 results
		prefix := "  "
		if i < 5 {
			prefix = fmt.Sprintf("%d ", i+1)
		}
		fmt.Fprintf(v, "%s%s  %s - %s  %s[%s]%s\n", prefix, colorizeMethod(string(ep.Method)), highlightPathParams(ep.URL), ep.Name, colorDim, ep.Category, colorReset)
	}
	if len(a.filtered) == 0 {
		fmt.Fprintln(v, "(no matching endpoints)")
	}
	a.scrollTo(v, a.selected)
}

// ansi colors
const (
	colorDim    = "\033[90m"
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

func (a *App) renderBuilder() {
	ep, ok := a.session.Selected()
	if !ok {
		return
	}

	if v, err := a.g.View("selected"); err == nil {
		v.Clear()
		fmt.Fprintf(v, "%s  %s - %s\n", colorizeMethod(string(ep.Method)), highlightPathParams(ep.URL), ep.Name)
		if ep.Description != "" {
			fmt.Fprintf(v, "%s%s%s\n", colorDim, ep.Description, colorReset)
		}
		fmt.Fprintf(v, "%surl:%s %s\n", colorCyan, colorReset, a.session.PreviewURL())
	}

	if v, err := a.g.View("params"); err == nil {
		v.Clear()
		vals := a.session.Values()
		for _, p := range ep.Params {
			fmt.Fprintln(v, paramLine(ep, p, vals[p.Name]))
		}
		if len(ep.Params) == 0 {
			fmt.Fprintln(v, "(none)")
		}
	}
}

func (a *App) renderResponse() {
	v, err := a.g.View("response")
	if err != nil {
		return
	}
	v.Clear()

	if a.pending {
		fmt.Fprintln(v, colorYellow+"loading..."+colorReset)
		return
	}
	ep, _ := a.session.Selected()
	resp := a.session.Response()
	if err := a.session.Err(); err != nil {
		fmt.Fprintf(v, "%serror: %s%s\n", colorRed, err, colorReset)
		if resp == nil {
			return
		}
		fmt.Fprintln(v)
	}
	if resp == nil {
		fmt.Fprintln(v, "(no response yet)")
		return
	}
	fmt.Fprint(v, responseText(resp, ep.Responds()))
}

func viewText(v *gocui.View) string {
	b := v.Buffer()
	// gocui includes a trailing newline
	return strings.TrimSuffix(b, "\n")
}

func viewLines(v *gocui.View) []string {
	buf := strings.TrimSuffix(v.Buffer(), "\n")
	if buf == "" {
		return nil
	}
	return strings.Split(buf, "\n")
}

func envLabel(s model.EnvironmentSettings) string {
	switch {
	case !s.UseRealAPI:
		return colorCyan + "[mock]" + colorReset
	case s.ProxyEnabled:
		return colorYellow + "[real via proxy]" + colorReset
	default:
		return colorRed + "[real]" + colorReset
	}
}

func authLabel(key string, enabled, skip bool) string {
	var b strings.Builder
	b.WriteString("key: ")
	if key == "" {
		b.WriteString(colorDim + "unset" + colorReset)
	} else {
		b.WriteString(render.MaskKey(key))
		if enabled {
			b.WriteString(colorGreen + " (in use)" + colorReset)
		} else {
			b.WriteString(colorDim + " (off)" + colorReset)
		}
	}
	if skip {
		b.WriteString("   " + colorYellow + "auth skipped" + colorReset)
	}
	return b.String()
}

// paramLine renders one row of the params view: "*name (type, where) = value".
// Empty values show the description as a dim placeholder.
func paramLine(ep model.Endpoint, p model.Param, val string) string {
	req := " "
	if p.Required {
		req = "*"
	}
	where := "query"
	switch {
	case strings.Contains(ep.URL, "{"+p.Name+"}"):
		where = "path"
	case ep.Method != model.MethodGet:
		where = "body"
	}
	label := fmt.Sprintf("%s%s (%s, %s)", req, p.Name, p.Type, where)
	if val == "" {
		if p.Description == "" {
			return label + " ="
		}
		return fmt.Sprintf("%s = %s%s%s", label, colorDim, p.Description, colorReset)
	}
	return fmt.Sprintf("%s = %s%s%s", label, colorGreen, val, colorReset)
}

func responseText(resp *model.Response, rt model.ResponseType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", colorizeStatus(strings.TrimSpace(fmt.Sprintf("%d %s", resp.Status, resp.StatusText))))
	fmt.Fprintf(&b, "elapsed: %dms\n", resp.ElapsedMs)
	if ct, ok := resp.Headers["content-type"]; ok {
		fmt.Fprintf(&b, "content-type: %s\n", ct)
	}
	b.WriteString("\n")
	switch resp.Data.(type) {
	case map[string]any, []any:
		b.WriteString(render.Colorize(resp.Data))
	default:
		b.WriteString(render.Body(resp.Data, rt))
	}
	b.WriteString("\n")
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func colorizeMethod(method string) string {
	var color string
	switch strings.ToUpper(method) {
	case "GET":
		color = colorBlue
	case "POST":
		color = colorGreen
	case "DELETE":
		color = colorRed
	default:
		color = colorReset
	}
	return color + padRight(method, 6) + colorReset
}

func colorizeStatus(status string) string {
	parts := strings.Fields(status)
	if len(parts) == 0 {
		return status
	}
	code, err := strconv.Atoi(parts[0])
	if err != nil {
		return status
	}
	var color string
	if code >= 200 && code < 300 {
		color = colorGreen
	} else if code >= 400 && code < 500 {
		color = colorYellow
	} else if code >= 500 {
		color = colorRed
	} else {
		color = colorReset
	}
	return color + status + colorReset
}

var placeholderRe = regexp.MustCompile(`\{([^}]+)\}`)

func highlightPathParams(path string) string {
	return placeholderRe.ReplaceAllString(path, colorCyan+"{$1}"+colorReset)
}
