package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Translation is one language entry of a LocalizedText.
type Translation struct {
	Lang  string
	Value string
}

// LocalizedText maps language tags to strings and remembers the order in which
// languages were authored. The zero value is an empty text. Values are never
// mutated in place: every modifier returns a copy.
type LocalizedText struct {
	entries []Translation
}

// NewLocalizedText builds a text from entries in authoring order. Language keys are
// canonicalized; a repeated language overwrites the earlier value in its original slot.
func NewLocalizedText(entries ...Translation) LocalizedText {
	var t LocalizedText
	for _, e := range entries {
		t = t.With(e.Lang, e.Value)
	}
	return t
}

// Text is shorthand for NewLocalizedText with alternating lang/value arguments.
func Text(langValue ...string) LocalizedText {
	entries := make([]Translation, 0, len(langValue)/2)
	for i := 0; i+1 < len(langValue); i += 2 {
		entries = append(entries, Translation{Lang: langValue[i], Value: langValue[i+1]})
	}
	return NewLocalizedText(entries...)
}

// CanonicalLang normalizes a language key ("PT-br" -> "pt-BR"). Keys that are not
// valid BCP 47 tags are lower-cased and kept so that stored data stays readable.
func CanonicalLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}

// ValidLang reports whether lang parses as a BCP 47 tag.
func ValidLang(lang string) bool {
	if strings.TrimSpace(lang) == "" {
		return false
	}
	_, err := language.Parse(lang)
	return err == nil
}

func baseLang(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

func (t LocalizedText) With(lang, value string) LocalizedText {
	lang = CanonicalLang(lang)
	out := make([]Translation, len(t.entries), len(t.entries)+1)
	copy(out, t.entries)
	for i := range out {
		if out[i].Lang == lang {
			out[i].Value = value
			return LocalizedText{entries: out}
		}
	}
	return LocalizedText{entries: append(out, Translation{Lang: lang, Value: value})}
}

// Get returns the raw value stored for lang.
func (t LocalizedText) Get(lang string) (string, bool) {
	lang = CanonicalLang(lang)
	for _, e := range t.entries {
		if e.Lang == lang {
			return e.Value, true
		}
	}
	return "", false
}

// Has reports whether lang carries a non-blank value.
func (t LocalizedText) Has(lang string) bool {
	v, ok := t.Get(lang)
	return ok && strings.TrimSpace(v) != ""
}

func (t LocalizedText) Entries() []Translation {
	out := make([]Translation, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t LocalizedText) Languages() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Lang
	}
	return out
}

func (t LocalizedText) Len() int { return len(t.entries) }

// IsBlank reports whether no language carries a non-blank value.
func (t LocalizedText) IsBlank() bool {
	for _, e := range t.entries {
		if strings.TrimSpace(e.Value) != "" {
			return false
		}
	}
	return true
}

// Resolve picks the display string for preferred. The order is: the exact
// language, its base language (pt-BR -> pt), the primary authoring language,
// then the first non-empty entry in authoring order. It returns "" only when
// every entry is empty.
func (t LocalizedText) Resolve(preferred, primary string) string {
	candidates := []string{CanonicalLang(preferred)}
	if b := baseLang(preferred); b != "" {
		candidates = append(candidates, b)
	}
	candidates = append(candidates, CanonicalLang(primary))
	for _, lang := range candidates {
		if lang == "" {
			continue
		}
		if v, ok := t.Get(lang); ok && v != "" {
			return v
		}
	}
	for _, e := range t.entries {
		if e.Value != "" {
			return e.Value
		}
	}
	return ""
}

// Map returns a plain map copy, used for search documents.
func (t LocalizedText) Map() map[string]string {
	m := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		m[e.Lang] = e.Value
	}
	return m
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Lang)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so authoring order survives.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = LocalizedText{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("localized text: expected object, got %v", tok)
	}
	var out LocalizedText
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("localized text: value for %q: %w", key, err)
		}
		if value == nil {
			continue
		}
		out = out.With(key, *value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

// Value stores the text as a JSON object. The column type must be json (not jsonb)
// for key order to survive a round trip.
func (t LocalizedText) Value() (driver.Value, error) {
	b, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *LocalizedText) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("localized text: cannot scan %T", src)
	}
}
