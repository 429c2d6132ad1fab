package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// fieldWidgets groups the input and error label of one birthdate field.
type fieldWidgets struct {
	entry *NumericalEntry
	err   *widget.Label
}

// AgeApp is the desktop presentation of an age form.
// Every widget callback runs on the fyne event loop, which serializes access to Ctrl.
type AgeApp struct {
	App        fyne.App
	Window     fyne.Window
	Ctx        context.Context
	Ctrl       *engine.Controller
	I18nBundle *i18n.Bundle
	Localizer  *i18n.Localizer

	fields       map[engine.FieldName]*fieldWidgets
	dateError    *widget.Label
	resYears     *widget.Label
	resMonths    *widget.Label
	resDays      *widget.Label
	nextBirthday *widget.Label

	SubmitButton *widget.Button
	ImportButton *widget.Button
	ExportButton *widget.Button
}

// NewAgeApp wires a controller to a fyne application. A nil controller gets a fresh one.
func NewAgeApp(a fyne.App, ctx context.Context, ctrl *engine.Controller) *AgeApp {
	if ctrl == nil {
		ctrl = engine.NewController(nil)
	}
	return &AgeApp{
		App:    a,
		Ctx:    ctx,
		Ctrl:   ctrl,
		fields: make(map[engine.FieldName]*fieldWidgets),
	}
}

// Run builds the window and blocks on the fyne event loop.
func (app *AgeApp) Run() {
	app.SetupI18n()
	w := app.BuildWindow()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	w.ShowAndRun()
}

// BuildWindow creates the main window from the controller's current state.
func (app *AgeApp) BuildWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	inputs := map[engine.FieldName]struct {
		label, hint string
		digits      int
	}{
		engine.Days:   {config.TKeyLblDay, config.TKeyHintDay, config.DigitsDay},
		engine.Months: {config.TKeyLblMonth, config.TKeyHintMonth, config.DigitsMonth},
		engine.Years:  {config.TKeyLblYear, config.TKeyHintYear, config.DigitsYear},
	}

	form := container.NewGridWithColumns(config.LayoutColumnsForm)
	for _, name := range engine.InputFields {
		in := inputs[name]
		fw := app.newField(name, app.GetMsg(in.hint), in.digits)
		app.fields[name] = fw
		form.Add(container.NewVBox(
			widget.NewLabelWithStyle(app.GetMsg(in.label), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			fw.entry,
			fw.err,
		))
	}

	app.dateError = widget.NewLabel("")
	app.dateError.Importance = widget.DangerImportance

	app.SubmitButton = widget.NewButton(app.GetMsg(config.TKeyBtnCalculate), app.Submit)
	app.SubmitButton.Importance = widget.HighImportance

	app.ImportButton = widget.NewButton(app.GetMsg(config.TKeyBtnImport), app.showImportDialog)
	app.ExportButton = widget.NewButton(app.GetMsg(config.TKeyBtnExport), app.showExportDialog)

	resultStyle := fyne.TextStyle{Bold: true, Italic: true}
	app.resYears = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, resultStyle)
	app.resMonths = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, resultStyle)
	app.resDays = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, resultStyle)
	app.nextBirthday = widget.NewLabel("")

	results := container.NewGridWithColumns(config.LayoutColumnsResult,
		app.resYears, widget.NewLabel(app.GetMsg(config.TKeyResYears)),
		app.resMonths, widget.NewLabel(app.GetMsg(config.TKeyResMonths)),
		app.resDays, widget.NewLabel(app.GetMsg(config.TKeyResDays)),
	)

	content := container.NewVBox(
		form,
		app.dateError,
		container.NewHBox(app.SubmitButton, app.ImportButton, app.ExportButton),
		widget.NewSeparator(),
		results,
		app.nextBirthday,
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblFooter), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)

	w.SetContent(container.NewPadded(content))
	w.Resize(fyne.NewSize(config.WindowWidth, content.MinSize().Height))

	app.syncEntries()
	app.refresh()
	return w
}

func (app *AgeApp) newField(name engine.FieldName, hint string, digits int) *fieldWidgets {
	entry := NewNumericalEntry()
	entry.PlaceHolder = hint
	entry.MaxDigits = digits
	entry.OnChanged = func(s string) {
		if err := app.Ctrl.SetField(name, s); err != nil {
			slog.Error(config.ErrUnknownField,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyField, name,
				config.LogKeyError, err)
		}
	}

	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance
	errLabel.Wrapping = fyne.TextWrapWord

	return &fieldWidgets{entry: entry, err: errLabel}
}

// Submit validates the form and shows either the new age or the errors.
func (app *AgeApp) Submit() {
	app.Ctrl.Submit()
	app.refresh()
}

// ImportVCard prefills the entries from a contact card.
func (app *AgeApp) ImportVCard(r io.Reader) error {
	if err := app.Ctrl.ImportVCard(r); err != nil {
		return err
	}
	app.syncEntries()
	return nil
}

// ExportCalendar writes the birthday feed of the last calculated age.
func (app *AgeApp) ExportCalendar(w io.Writer) error {
	data, err := app.Ctrl.Calendar(app.SummaryFormatter())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalWrite, err)
	}
	return nil
}

// syncEntries copies the controller input into the entries.
func (app *AgeApp) syncEntries() {
	in := app.Ctrl.Input()
	for name, fw := range app.fields {
		if v := in.Get(name).Value(); fw.entry.Text != v {
			fw.entry.SetText(v)
		}
	}
}

// refresh renders errors and results from the controller.
func (app *AgeApp) refresh() {
	errs := app.Ctrl.Errors()
	for name, fw := range app.fields {
		fw.err.SetText(app.LocalizeError(errs[name]))
	}
	app.dateError.SetText(app.LocalizeError(errs[engine.Date]))

	y, m, d := app.Ctrl.Age().Display()
	app.resYears.SetText(y)
	app.resMonths.SetText(m)
	app.resDays.SetText(d)

	next, age, err := app.Ctrl.NextBirthday()
	if err != nil {
		app.nextBirthday.SetText("")
		app.ExportButton.Disable()
		return
	}
	app.nextBirthday.SetText(app.localize(config.TKeyLblNext, map[string]any{
		"Date": next.Format(config.NextDateFmt),
		"Age":  age,
	}))
	app.ExportButton.Enable()
}

func (app *AgeApp) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if r == nil {
			return
		}
		defer func() { _ = r.Close() }()

		if err := app.ImportVCard(r); err != nil {
			slog.Warn(config.ErrVCardOpen,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, r.URI().Name(),
				config.LogKeyError, err)
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

func (app *AgeApp) showExportDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		if err := app.ExportCalendar(wc); err != nil {
			slog.Error(config.ErrICalWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, wc.URI().Name(),
				config.LogKeyError, err)
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFileName(config.ExportName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}
