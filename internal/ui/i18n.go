package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dualclock/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// SetupI18n loads every embedded locale file and selects the active language.
func (app *DualClockApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		code, ok := strings.CutPrefix(name, localePrefix)
		if ok {
			code, ok = strings.CutSuffix(code, localeSuffix)
		}
		if !ok {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		langs = append(langs, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer rebuilds the translator for the resolved language.
func (app *DualClockApp) UpdateLocalizer() {
	app.Language = app.resolveLanguage()
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, app.Language)
}

// resolveLanguage prefers the saved choice, then the closest supported match
// for the system locale, then the default language.
func (app *DualClockApp) resolveLanguage() string {
	if saved := app.Preferences.String(config.PrefLanguage); slices.Contains(app.SupportedLanguages, saved) {
		return saved
	}
	if app.SystemLocale == nil {
		return config.DefaultLanguage
	}

	locale := app.SystemLocale()
	lang, ok := matchLanguage(locale, app.SupportedLanguages)
	if !ok {
		return config.DefaultLanguage
	}
	slog.Debug(config.MsgLangDetected,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyLocale, locale,
		config.LogKeyLang, lang,
	)
	return lang
}

// matchLanguage returns the entry of supported closest to locale, which may
// use either BCP 47 ("fr-CA") or POSIX ("fr_CA") separators.
func matchLanguage(locale string, supported []string) (string, bool) {
	if len(supported) == 0 {
		return "", false
	}
	want, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}

	tags := make([]language.Tag, len(supported))
	for i, code := range supported {
		tags[i] = language.Make(code)
	}
	_, idx, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return "", false
	}
	return supported[idx], true
}

// SetLanguage saves lang as the user's choice and relabels the UI.
// Unsupported codes are ignored.
func (app *DualClockApp) SetLanguage(lang string) {
	if !slices.Contains(app.SupportedLanguages, lang) {
		slog.Warn(config.MsgLangRejected,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
		return
	}

	app.Preferences.SetString(config.PrefLanguage, lang)
	app.UpdateLocalizer()
	slog.Info(config.MsgLangChanged,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyLang, lang,
	)
	app.applyLanguage()
}

// languageMenu lists the supported languages by their own names, checking the
// active one.
func (app *DualClockApp) languageMenu() *fyne.Menu {
	items := make([]*fyne.MenuItem, 0, len(app.SupportedLanguages))
	for _, lang := range app.SupportedLanguages {
		item := fyne.NewMenuItem(languageName(lang), func() {
			app.SetLanguage(lang)
		})
		item.Checked = lang == app.Language
		items = append(items, item)
	}
	return fyne.NewMenu(app.GetMsg(config.TKeyMenuLanguage), items...)
}

func languageName(code string) string {
	if name := display.Self.Name(language.Make(code)); name != "" {
		return name
	}
	return code
}

// GetMsg is a helper to translate a key safely.
func (app *DualClockApp) GetMsg(key string) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
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
