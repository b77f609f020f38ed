package fyne

import (
	"image/color"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/res"
)

// Window defaults.
const (
	APPNAME = "Live Spectrum"
	WIDTH   = 520
	HEIGHT  = 480
)

// Colors of the spectrum views.
var (
	BarColor        = color.NRGBA{R: 0, G: 123, B: 255, A: 255}
	CanvasBackdrop  = color.NRGBA{R: 10, G: 14, B: 24, A: 255}
	statusTextColor = color.NRGBA{R: 160, G: 180, B: 210, A: 255}
)

// MainWindow is the main UI window implementing the UIView interface.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All logic is in the Presenter and the visualization controller
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	playButton *widget.Button
	statusText *canvas.Text
	modeText   *canvas.Text
	bars       *widgets.BarStrip
	spectrum   *widgets.SpectrumCanvas

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window around the two spectrum views.
func NewMainWindow(app fyneapp.App, bars *widgets.BarStrip, spectrum *widgets.SpectrumCanvas) *MainWindow {
	w := &MainWindow{
		app:      app,
		bars:     bars,
		spectrum: spectrum,
	}

	w.window = app.NewWindow(APPNAME)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.playButton.OnTapped = presenter.OnPlayClicked
	w.addShortcuts()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)

	w.statusText = canvas.NewText(domain.StatusIdle.String(), statusTextColor)
	w.statusText.TextSize = theme.CaptionTextSize()
	w.modeText = canvas.NewText(domain.ModeSimulated.String(), statusTextColor)
	w.modeText.TextSize = theme.CaptionTextSize()
	w.modeText.Alignment = fyneapp.TextAlignTrailing

	header := container.NewBorder(nil, nil, w.playButton, w.modeText, w.statusText)
	body := container.NewBorder(nil, container.NewPadded(w.bars), nil, nil, w.spectrum)

	w.window.SetContent(container.NewPadded(container.NewBorder(header, nil, nil, nil, body)))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	playPause := fyneapp.NewMenuItem("Play/Pause", func() {
		if w.presenter != nil {
			w.presenter.OnPlayClicked()
		}
	})
	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	about := fyneapp.NewMenuItem("About", w.showAbout)

	return []*fyneapp.Menu{
		fyneapp.NewMenu("Stream", playPause, fyneapp.NewMenuItemSeparator(), exitMenu),
		fyneapp.NewMenu("Help", about),
	}
}

// showAbout opens the About dialog.
func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	d := dialog.NewCustom("About "+APPNAME, "Close", content, w.window)
	d.Resize(fyneapp.NewSize(WIDTH*0.8, HEIGHT*0.6))
	d.Show()
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeySpace,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnPlayClicked()
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// SetOnClosed registers a callback invoked when the window closes.
func (w *MainWindow) SetOnClosed(fn func()) {
	w.window.SetOnClosed(fn)
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// SetPlayState updates the play/pause button state.
func (w *MainWindow) SetPlayState(playing bool) {
	fyneapp.Do(func() {
		if playing {
			w.playButton.SetIcon(theme.MediaPauseIcon())
		} else {
			w.playButton.SetIcon(theme.MediaPlayIcon())
		}
	})
}

// SetStatus shows the stream status.
func (w *MainWindow) SetStatus(status domain.PlaybackStatus) {
	fyneapp.Do(func() {
		w.statusText.Text = status.String()
		w.statusText.Refresh()
	})
}

// SetMode shows the visualization mode.
func (w *MainWindow) SetMode(mode domain.VisualizationMode) {
	fyneapp.Do(func() {
		w.modeText.Text = mode.String()
		w.modeText.Refresh()
	})
}

// StatusText returns the displayed status (for testing).
func (w *MainWindow) StatusText() string {
	return w.statusText.Text
}

// ModeText returns the displayed mode (for testing).
func (w *MainWindow) ModeText() string {
	return w.modeText.Text
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
