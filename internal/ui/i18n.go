package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded message file and selects the default language.
func (app *AgeApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
	}

	app.I18nBundle = bundle
	app.Localizer = i18n.NewLocalizer(bundle, config.DefaultLanguage)
}

// GetMsg translates a key, returning the key itself when it is missing.
func (app *AgeApp) GetMsg(key string) string {
	return app.localize(key, nil)
}

func (app *AgeApp) localize(key string, data map[string]any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// LocalizeError renders a field error, falling back to its built-in message.
// A nil error renders as an empty string.
func (app *AgeApp) LocalizeError(fe *engine.FieldError) string {
	if fe == nil {
		return ""
	}
	if msg := app.localize(fe.MessageID, nil); msg != fe.MessageID {
		return msg
	}
	return fe.Message
}

// SummaryFormatter names calendar events with the localized templates.
func (app *AgeApp) SummaryFormatter() engine.SummaryFormatter {
	return func(age int) string {
		key, data := config.TKeyEvtSummaryAge, map[string]any{"Age": age}
		if age == 0 {
			key, data = config.TKeyEvtSummaryBday, nil
		}
		if msg := app.localize(key, data); msg != key {
			return msg
		}
		return engine.DefaultSummary(age)
	}
}
