package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	fynelang "fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dualclock/internal/config"
	"github.com/tartampluch/go-dualclock/internal/engine"
	"github.com/tartampluch/go-dualclock/internal/face"
	"github.com/tartampluch/go-dualclock/internal/server"
)

// DualClockApp encapsulates the UI state and the clock lifecycle.
type DualClockApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server     *server.FaceServer // nil when the snapshot server is disabled
	Compositor *face.Compositor
	DualClock  *engine.DualClock
	Ticker     *engine.Ticker
	Clock      engine.Clock // Injected clock for testability

	Face             *ClockFace
	PrimaryCaption   *canvas.Text
	SecondaryCaption *canvas.Text
	last             *engine.Reading // most recent reading shown, for relabelling

	SupportedLanguages []string
	Language           string        // active UI language
	SystemLocale       func() string // injected for testability
}

// NewDualClockApp constructs the application and wires dependencies.
func NewDualClockApp(a fyne.App, ctx context.Context, srv *server.FaceServer, compositor *face.Compositor) *DualClockApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, compositor.Asset(config.AssetDial)))

	clock := engine.RealClock{}
	return &DualClockApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Compositor:         compositor,
		DualClock:          engine.NewDualClock(),
		Ticker:             engine.NewTicker(clock),
		Clock:              clock,
		SupportedLanguages: config.SupportedLanguages,
		SystemLocale: func() string {
			return string(fynelang.SystemLocale())
		},
	}
}

// Run launches the application services and the main UI loop.
func (app *DualClockApp) Run() {
	app.SetupI18n()

	if app.Server != nil {
		app.Server.SetTitle(app.GetMsg(config.TKeyPageTitle))
		go app.serve()
	}

	app.BuildWindow()
	app.Window.Show()
	app.Mount()

	app.App.Run()
}

// serve runs the snapshot server until the context is cancelled.
func (app *DualClockApp) serve() {
	if err := app.Server.Start(app.Ctx); err != nil {
		slog.Error(config.ErrServerStartup,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)

		app.App.SendNotification(fyne.NewNotification(
			app.GetMsg(config.TKeyNotifServerErr),
			fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
	}
}

// BuildWindow creates the clock window. Closing it releases the ticker.
func (app *DualClockApp) BuildWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.Face = NewClockFace(app.Compositor)
	app.PrimaryCaption = newCaption(engine.HandSpecs[engine.HandPrimaryHour])
	app.SecondaryCaption = newCaption(engine.HandSpecs[engine.HandSecondaryHour])

	captions := container.NewGridWithColumns(2, app.PrimaryCaption, app.SecondaryCaption)
	w.SetContent(container.NewBorder(nil, captions, nil, nil, app.Face))
	w.SetMainMenu(fyne.NewMainMenu(app.languageMenu()))
	w.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))

	w.SetOnClosed(func() {
		slog.Info(config.MsgWindowClosed, config.LogKeyComponent, config.CompUI)
		app.Unmount()
	})
}

func newCaption(spec engine.HandSpec) *canvas.Text {
	t := canvas.NewText("", spec.Color)
	t.Alignment = fyne.TextAlignCenter
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.TextSize = theme.TextSubHeadingSize()
	return t
}

// Mount starts the per-window ticker.
func (app *DualClockApp) Mount() {
	app.Ticker.Clock = app.Clock
	app.Ticker.Start(app.Ctx, app.tick)
}

// Unmount stops the ticker so no callback outlives the window.
func (app *DualClockApp) Unmount() {
	app.Ticker.Stop()
}

// tick runs on the ticker goroutine: compute off the UI thread, then hand the
// reading to the Fyne main loop.
func (app *DualClockApp) tick(now time.Time) {
	reading := app.DualClock.Read(now)

	slog.Debug(config.MsgTick,
		config.LogKeyComponent, config.CompUI,
		slog.Group(config.LogKeyAngles,
			slog.Float64(config.LogKeyPrimary, reading.Angles.PrimaryHour),
			slog.Float64(config.LogKeySecondary, reading.Angles.SecondaryHour),
			slog.Float64(config.LogKeyMinute, reading.Angles.Minute),
			slog.Float64(config.LogKeySecond, reading.Angles.Second),
		),
	)

	fyne.Do(func() {
		app.render(reading)
	})
	app.publish(reading)
}

// render applies a reading to the widgets. Must run on the Fyne main loop.
func (app *DualClockApp) render(r engine.Reading) {
	app.last = &r
	if app.Face != nil {
		app.Face.SetAngles(r.Angles)
	}
	if app.PrimaryCaption != nil {
		app.PrimaryCaption.Text = app.caption(config.TKeyLblPrimary, config.FallbackPrimaryLabel, r.Primary)
		app.PrimaryCaption.Refresh()
	}
	if app.SecondaryCaption != nil {
		app.SecondaryCaption.Text = app.caption(config.TKeyLblSecondary, config.FallbackSecondaryLabel, r.Secondary)
		app.SecondaryCaption.Refresh()
	}
}

func (app *DualClockApp) caption(key, fallback string, wc engine.WallClock) string {
	label := app.GetMsg(key)
	if label == key {
		label = fallback
	}
	return fmt.Sprintf(config.FormatCaption, label, wc.Hour, wc.Minute)
}

// applyLanguage relabels everything that carries translated text.
// Must run on the Fyne main loop.
func (app *DualClockApp) applyLanguage() {
	if app.Server != nil {
		app.Server.SetTitle(app.GetMsg(config.TKeyPageTitle))
	}
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetMainMenu(fyne.NewMainMenu(app.languageMenu()))
	if app.last != nil {
		app.render(*app.last)
	}
}

// publish pushes the current face to the snapshot server, if any.
func (app *DualClockApp) publish(r engine.Reading) {
	if app.Server == nil {
		return
	}

	img, err := app.Compositor.Render(config.DefaultSnapshotSize, r.Angles)
	if err == nil {
		err = app.Server.Update(img)
	}
	if err != nil {
		slog.Error(config.ErrSnapshotPublish,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}
