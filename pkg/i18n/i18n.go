// Package i18n localizes user-facing error messages with go-i18n.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle *goi18n.Bundle
}

// NewTranslator loads every embedded message file. defaultLang is used when a
// requested language has no messages.
func NewTranslator(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: default language: %w", err)
	}
	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.json")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", f, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Translate renders messageID for lang, falling back to fallback when the
// message is unknown. A nil Translator always returns fallback.
func (t *Translator) Translate(lang, messageID, detail, fallback string) string {
	if t == nil {
		return fallback
	}
	loc := goi18n.NewLocalizer(t.bundle, lang)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: map[string]string{"Detail": detail},
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
