// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization support for Credmaster. It uses
// the go-i18n library to load and manage translation files, allowing CLI and
// TUI messages to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

// bundle stores all the loaded translation messages from the locale files.
var bundle *i18n.Bundle

// localizer is used to translate messages into a specific language.
var localizer *i18n.Localizer

// currentLang is the language tag passed to the most recent Init call.
var currentLang = "en"

// Init initializes the i18n bundle and sets up the localizer for a specific
// language. It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.ParseMessageFileBytes(data, f.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang)
	currentLang = lang
}

// GetLang returns the language tag of the active localizer.
func GetLang() string {
	return currentLang
}

// GetAvailableLocales returns a map of language tag to display name for every
// embedded locale file. The display name comes from the file's
// 'language_name' key, falling back to the tag itself.
func GetAvailableLocales() map[string]string {
	out := map[string]string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		tag := strings.TrimSuffix(f.Name(), ".yaml")
		name := tag
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err == nil {
			var msgs map[string]string
			if yaml.Unmarshal(data, &msgs) == nil {
				if n, ok := msgs["language_name"]; ok && n != "" {
					name = n
				}
			}
		}
		out[tag] = name
	}
	return out
}

// T translates a message by its ID. Extra arguments are applied with
// Sprintf against the localized format string. If the i18n system has not
// been initialized, it defaults to English; an unknown ID is returned as-is.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		msg = messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}
