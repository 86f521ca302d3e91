// Package vis implements the Gio desktop host for the media viewer.
package vis

import (
	"context"
	"fmt"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/library"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
	"github.com/elektrokombinacija/mediaview/internal/vis/interact"
	"github.com/elektrokombinacija/mediaview/internal/vis/widgets"
)

// App is the viewer window.
type App struct {
	engine  *engine.Engine
	loader  *library.Loader
	theme   *material.Theme
	input   *interact.Adapter
	viewer  *widgets.Viewer
	toolbar *widgets.Toolbar
	strip   *widgets.PageStrip

	window  *app.Window
	focused bool
	closing bool
}

// NewApp creates a viewer over lib opened at page start.
func NewApp(cfg config.Config, lib *library.Library, start int) (*App, error) {
	a := &App{
		loader: library.NewLoader(lib, start),
		theme:  material.NewTheme(),
		input:  interact.NewAdapter(),
	}

	// The viewport is unknown until the first frame reports it.
	e, err := engine.New(cfg, lib.Pages(), start, geom.Size{}, engine.WithDelegate(engine.DelegateFuncs{
		Dismiss:     a.onDismiss,
		PageChanged: a.onPageChanged,
	}))
	if err != nil {
		return nil, fmt.Errorf("vis: %w", err)
	}

	cameras := make(map[int]string)
	for i, it := range lib.Items {
		if it.Camera != "" {
			cameras[i] = it.Camera
		}
	}

	a.engine = e
	a.viewer = widgets.NewViewer(e, a.loader, a.input)
	a.toolbar = widgets.NewToolbar(e, cameras)
	a.strip = widgets.NewPageStrip(e)
	return a, nil
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	a.window = w
	a.updateTitle()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.loader.Run(ctx, w.Invalidate)

	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			a.engine.Dispatch(engine.ViewDisappeared{})
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok {
					if ge, ok := a.input.Key(ke, a.engine.Snapshot().Index); ok {
						a.engine.Dispatch(ge)
					}
				}
			}
			event.Op(gtx.Ops, tag)
			if !a.focused {
				gtx.Execute(key.FocusCmd{Tag: tag})
				a.focused = true
			}

			for _, ev := range a.input.Flush(gtx.Now) {
				a.engine.Dispatch(ev)
			}
			a.engine.Advance(gtx.Now)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			switch {
			case a.closing:
				w.Perform(system.ActionClose)
			case a.engine.Busy() || a.input.Pending():
				w.Invalidate()
			}
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return a.viewer.Layout(gtx, a.theme)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.toolbar.Layout(gtx, a.theme)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Dimensions{Size: gtx.Constraints.Max}
				}),
				layout.Rigid(a.strip.Layout),
			)
		}),
	)
}

func (a *App) onDismiss() {
	a.closing = true
}

func (a *App) onPageChanged(index int) {
	a.viewer.Retain(index)
	a.updateTitle()
}

func (a *App) updateTitle() {
	if a.window == nil {
		return
	}
	snap := a.engine.Snapshot()
	a.window.Option(app.Title(fmt.Sprintf("%s (%d/%d) - mediaview", snap.Page.ID, snap.Index+1, snap.PageCount)))
}
