package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosurvey/internal/app"
	"github.com/philipparndt/gosurvey/internal/measurement"
	"github.com/philipparndt/gosurvey/pkg/analysis"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/philipparndt/gosurvey/pkg/viewer"
	"github.com/philipparndt/gosurvey/pkg/viewer/fyneview"
	"github.com/philipparndt/gosurvey/pkg/watcher"
)

const (
	prefShowAdjusted  = "showAdjusted"
	prefShowBestFit   = "showBestFit"
	prefPickTolerance = "pickTolerance"
	prefTool          = "tool"
	prefDarkTheme     = "darkTheme"
)

type App struct {
	fyneApp  fyne.App
	window   fyne.Window
	session  *app.Session
	surface  *fyneview.Surface
	watcher  *watcher.FileWatcher
	info     *SessionInfo
	deleteID *widget.Select
}

type SessionInfo struct {
	pointsLabel   *widget.Label
	adjustedLabel *widget.Label
	bestFitLabel  *widget.Label
	offsetLabel   *widget.Label
	stateLabel    *widget.Label
	measureLabel  *widget.Label
	statusLabel   *widget.Label
}

func main() {
	a := fyneapp.NewWithID("io.github.philipparndt.gosurvey")
	w := a.NewWindow("GoSurvey - Circle & Annotation Tool")

	appInstance := &App{
		fyneApp: a,
		window:  w,
	}
	defer appInstance.stopWatching()

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.session = app.NewSession(appInstance.options())
		appInstance.setupMainUI()
	}

	w.Resize(fyne.NewSize(1280, 820))
	w.ShowAndRun()
}

// options reads the display preferences
func (a *App) options() app.Options {
	prefs := a.fyneApp.Preferences()
	opts := app.DefaultOptions()
	opts.ShowAdjusted = prefs.BoolWithFallback(prefShowAdjusted, opts.ShowAdjusted)
	opts.ShowBestFit = prefs.BoolWithFallback(prefShowBestFit, opts.ShowBestFit)
	opts.PickTolerance = prefs.FloatWithFallback(prefPickTolerance, opts.PickTolerance)
	if tool, err := measurement.ParseTool(prefs.StringWithFallback(prefTool, opts.Tool.String())); err == nil {
		opts.Tool = tool
	}
	return opts
}

func (a *App) theme() viewer.Theme {
	if a.fyneApp.Preferences().BoolWithFallback(prefDarkTheme, false) {
		return viewer.DarkTheme()
	}
	return viewer.DefaultTheme()
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	session, err := app.Open(filename, a.options())
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load points: %w", err), a.window)
		if a.session == nil {
			a.session = app.NewSession(a.options())
			a.setupMainUI()
		}
		return
	}

	a.session = session
	a.window.SetTitle("GoSurvey - " + session.Name())
	a.setupMainUI()
	a.watch(filename)
}

// watch reloads the session when the file changes on disk. The reload runs
// on the fyne main goroutine.
func (a *App) watch(filename string) {
	a.stopWatching()

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		log.Printf("Auto-reload not available: %v", err)
		return
	}
	err = fw.Watch(filename, func(string) {
		fyne.Do(a.reload)
	})
	if err != nil {
		fw.Close()
		log.Printf("Auto-reload not available: %v", err)
		return
	}
	fw.Start()
	a.watcher = fw
}

func (a *App) stopWatching() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

func (a *App) reload() {
	dropped, err := a.session.Reload()
	if err != nil {
		a.info.statusLabel.SetText(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	msg := fmt.Sprintf("Reloaded %d points", len(a.session.Points()))
	if dropped > 0 {
		msg += fmt.Sprintf(", %d annotation(s) dropped", dropped)
	}
	a.info.statusLabel.SetText(msg)
	a.refresh()
}

func (a *App) setupMainUI() {
	a.info = &SessionInfo{
		pointsLabel:   widget.NewLabel(""),
		adjustedLabel: widget.NewLabel(""),
		bestFitLabel:  widget.NewLabel(""),
		offsetLabel:   widget.NewLabel(""),
		stateLabel:    widget.NewLabel(""),
		measureLabel:  widget.NewLabel(""),
		statusLabel:   widget.NewLabel(""),
	}
	a.info.measureLabel.Wrapping = fyne.TextWrapWord
	a.info.statusLabel.Wrapping = fyne.TextWrapWord

	opts := a.session.Options()
	a.surface = fyneview.NewSurface(a.session.Scene, a.theme(), opts.Padding)
	a.surface.SetOnTap(func(pos viewer.Pos, width, height float64) {
		res, err := a.session.PickAt(pos.X, pos.Y, width, height)
		if err != nil {
			a.info.statusLabel.SetText(err.Error())
		} else if res.Completed {
			a.info.statusLabel.SetText("Added " + res.Annotation.String())
		} else {
			a.info.statusLabel.SetText("")
		}
		a.refresh()
	})

	toolRadio := widget.NewRadioGroup([]string{"Segment", "Angle"}, func(choice string) {
		tool, err := measurement.ParseTool(strings.ToLower(choice))
		if err != nil {
			return
		}
		a.session.SetTool(tool)
		a.fyneApp.Preferences().SetString(prefTool, tool.String())
		a.refresh()
	})
	toolRadio.Horizontal = true
	if opts.Tool == measurement.ToolAngle {
		toolRadio.SetSelected("Angle")
	} else {
		toolRadio.SetSelected("Segment")
	}

	adjustedCheck := widget.NewCheck("Show adjusted circle", func(checked bool) {
		o := a.session.Options()
		o.ShowAdjusted = checked
		a.session.SetOptions(o)
		a.fyneApp.Preferences().SetBool(prefShowAdjusted, checked)
		a.refresh()
	})
	adjustedCheck.SetChecked(opts.ShowAdjusted)

	bestFitCheck := widget.NewCheck("Show best-fit circle", func(checked bool) {
		o := a.session.Options()
		o.ShowBestFit = checked
		a.session.SetOptions(o)
		a.fyneApp.Preferences().SetBool(prefShowBestFit, checked)
		a.refresh()
	})
	bestFitCheck.SetChecked(opts.ShowBestFit)

	darkCheck := widget.NewCheck("Dark canvas", func(checked bool) {
		a.fyneApp.Preferences().SetBool(prefDarkTheme, checked)
		a.surface.SetTheme(a.theme())
	})
	darkCheck.SetChecked(a.fyneApp.Preferences().BoolWithFallback(prefDarkTheme, false))

	toleranceSlider := widget.NewSlider(12, 28)
	toleranceSlider.Step = 1
	toleranceSlider.SetValue(opts.PickTolerance)
	toleranceSlider.OnChanged = func(v float64) {
		o := a.session.Options()
		o.PickTolerance = v
		a.session.SetOptions(o)
		a.fyneApp.Preferences().SetFloat(prefPickTolerance, v)
	}

	idEntry := widget.NewEntry()
	idEntry.SetPlaceHolder("ID (optional)")
	eEntry := widget.NewEntry()
	eEntry.SetPlaceHolder("E")
	nEntry := widget.NewEntry()
	nEntry.SetPlaceHolder("N")
	hEntry := widget.NewEntry()
	hEntry.SetPlaceHolder("H (optional)")
	addButton := widget.NewButton("Add Point", func() {
		p, err := pointFromEntries(idEntry.Text, eEntry.Text, nEntry.Text, hEntry.Text)
		if err == nil {
			_, err = a.session.AddPoint(p)
		}
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		idEntry.SetText("")
		eEntry.SetText("")
		nEntry.SetText("")
		hEntry.SetText("")
		a.refresh()
	})

	a.deleteID = widget.NewSelect(nil, nil)
	a.deleteID.PlaceHolder = "Point to delete"
	deleteButton := widget.NewButton("Delete Point", func() {
		idx := a.deleteID.SelectedIndex()
		if idx < 0 {
			return
		}
		p, err := a.session.DeletePoint(idx)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.info.statusLabel.SetText("Deleted " + p.ID)
		a.deleteID.ClearSelected()
		a.refresh()
	})

	undoButton := widget.NewButton("Undo", func() {
		if an, ok := a.session.Undo(); ok {
			a.info.statusLabel.SetText("Undid " + an.String())
		}
		a.refresh()
	})
	cancelButton := widget.NewButton("Cancel Selection", func() {
		a.session.CancelSelection()
		a.refresh()
	})
	clearButton := widget.NewButton("Clear All", func() {
		dialog.ShowConfirm("Clear", "Remove every point and annotation?", func(ok bool) {
			if ok {
				a.session.Clear()
				a.refresh()
			}
		}, a.window)
	})
	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})
	saveButton := widget.NewButton("Save Points", func() {
		a.showSaveDialog()
	})
	exportButton := widget.NewButton("Export...", func() {
		a.showExportDialog()
	})

	infoPanel := container.NewVBox(
		widget.NewLabel("Points:"),
		widget.NewSeparator(),
		a.info.pointsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Circle Estimates:"),
		widget.NewSeparator(),
		a.info.adjustedLabel,
		a.info.bestFitLabel,
		a.info.offsetLabel,
		widget.NewSeparator(),
		widget.NewLabel("Annotations:"),
		toolRadio,
		a.info.stateLabel,
		container.NewGridWithColumns(2, undoButton, cancelButton),
		a.info.measureLabel,
		widget.NewSeparator(),
		widget.NewLabel("Edit Points:"),
		idEntry,
		container.NewGridWithColumns(3, eEntry, nEntry, hEntry),
		addButton,
		container.NewBorder(nil, nil, nil, deleteButton, a.deleteID),
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		adjustedCheck,
		bestFitCheck,
		darkCheck,
		widget.NewLabel("Pick tolerance (px):"),
		toleranceSlider,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, openButton, saveButton, exportButton, clearButton),
		layout.NewSpacer(),
		a.info.statusLabel,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(340, 0))

	content := container.NewBorder(
		nil,
		nil,
		nil,
		infoScroll,
		a.surface,
	)

	a.window.SetContent(content)
	a.refresh()
}

// refresh updates the side panel and redraws the canvas
func (a *App) refresh() {
	pts := a.session.Points()
	ids := make([]string, len(pts))
	for i, p := range pts {
		ids[i] = p.ID
	}
	a.deleteID.SetOptions(ids)

	summary := analysis.AnalyzePoints(pts)
	a.info.pointsLabel.SetText(fmt.Sprintf("%s: %d point(s)\nExtent: %s",
		a.session.Name(), summary.PointCount, analysis.FormatVector(summary.Dimensions)))

	report := a.session.Report()
	if adj := report.Estimate.Adjusted; adj != nil {
		a.info.adjustedLabel.SetText(fmt.Sprintf("Adjusted: %s\n  r = %.3f, %d triple(s)\n  residual rms %.4f",
			analysis.FormatVector(adj.Center), report.AdjustedRadius, adj.TripleCount, report.AdjustedResiduals.RMS))
	} else {
		a.info.adjustedLabel.SetText(fmt.Sprintf("Adjusted: %v", report.Estimate.AdjustedErr))
	}
	if bf := report.Estimate.BestFit; bf != nil {
		a.info.bestFitLabel.SetText(fmt.Sprintf("Best-fit: %s\n  r = %.3f\n  residual rms %.4f",
			analysis.FormatVector(bf.Center), bf.Radius, report.BestFitResiduals.RMS))
	} else {
		a.info.bestFitLabel.SetText(fmt.Sprintf("Best-fit: %v", report.Estimate.BestFitErr))
	}
	if report.HasBoth {
		a.info.offsetLabel.SetText(fmt.Sprintf("Center offset: %.4f", report.CenterOffset))
	} else {
		a.info.offsetLabel.SetText("")
	}

	a.info.stateLabel.SetText(fmt.Sprintf("Tool: %s, %s", a.session.Tool(), a.session.State()))

	ms, err := a.session.Measurements()
	if err != nil {
		a.info.measureLabel.SetText(err.Error())
	} else {
		var b strings.Builder
		for _, m := range ms {
			b.WriteString(measurement.Describe(m))
		}
		a.info.measureLabel.SetText(b.String())
	}

	a.surface.Redraw()
}

func (a *App) showSaveDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.session.Save(path); err != nil {
			dialog.ShowError(fmt.Errorf("save failed: %w", err), a.window)
			return
		}
		a.window.SetTitle("GoSurvey - " + a.session.Name())
		a.info.statusLabel.SetText("Saved " + path)
		a.watch(path)
		a.refresh()
	}, a.window)
}

func (a *App) showExportDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		opts := viewer.DefaultExportOptions()
		opts.Theme = a.theme()
		go func() {
			err := a.session.Export(context.Background(), path, opts)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(fmt.Errorf("export failed: %w", err), a.window)
					return
				}
				a.info.statusLabel.SetText("Exported " + path)
			})
		}()
	}, a.window)
}

// pointFromEntries parses the add-point form. H is optional.
func pointFromEntries(id, e, n, h string) (geometry.Point, error) {
	ev, err := strconv.ParseFloat(strings.TrimSpace(e), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: invalid E %q", geometry.ErrInvalidInput, e)
	}
	nv, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: invalid N %q", geometry.ErrInvalidInput, n)
	}
	id = strings.TrimSpace(id)
	if strings.TrimSpace(h) == "" {
		return geometry.NewPoint(id, ev, nv), nil
	}
	hv, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: invalid H %q", geometry.ErrInvalidInput, h)
	}
	return geometry.NewPoint3(id, ev, nv, hv), nil
}
