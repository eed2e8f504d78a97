package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedText_Resolve(t *testing.T) {
	text := Text("pt", "Suco de Laranja", "en", "Orange Juice")

	tests := []struct {
		name      string
		text      LocalizedText
		preferred string
		primary   string
		want      string
	}{
		{name: "exact language", text: text, preferred: "en", primary: "pt", want: "Orange Juice"},
		{name: "base language of regional tag", text: text, preferred: "pt-BR", primary: "en", want: "Suco de Laranja"},
		{name: "falls back to primary", text: text, preferred: "es", primary: "en", want: "Orange Juice"},
		{name: "falls back to authoring order", text: text, preferred: "es", primary: "fr", want: "Suco de Laranja"},
		{name: "skips empty preferred value", text: Text("en", "", "pt", "Bolo"), preferred: "en", primary: "en", want: "Bolo"},
		{name: "invalid preferred tag", text: text, preferred: "??", primary: "", want: "Suco de Laranja"},
		{name: "empty text", text: LocalizedText{}, preferred: "pt", primary: "pt", want: ""},
		{name: "only empty values", text: Text("pt", "", "en", ""), preferred: "pt", primary: "pt", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.Resolve(tt.preferred, tt.primary))
		})
	}
}

func TestLocalizedText_ResolveNeverEmptyWhenAnyValuePresent(t *testing.T) {
	texts := []LocalizedText{
		Text("de", "Apfel"),
		Text("en", "", "it", "Mela"),
		Text("zh-Hant", "蘋果"),
	}
	for _, text := range texts {
		for _, lang := range []string{"pt", "en", "", "xx-invalid", "zh"} {
			assert.NotEmpty(t, text.Resolve(lang, "pt"), "text %v lang %q", text.Map(), lang)
		}
	}
}

func TestLocalizedText_WithIsImmutable(t *testing.T) {
	original := Text("pt", "Café")
	updated := original.With("EN", "Coffee")

	assert.Equal(t, 1, original.Len())
	assert.Equal(t, []string{"pt", "en"}, updated.Languages())

	replaced := updated.With("pt", "Cafezinho")
	v, _ := updated.Get("pt")
	assert.Equal(t, "Café", v)
	v, _ = replaced.Get("pt")
	assert.Equal(t, "Cafezinho", v)
	assert.Equal(t, []string{"pt", "en"}, replaced.Languages())
}

func TestLocalizedText_JSONKeepsAuthoringOrder(t *testing.T) {
	var text LocalizedText
	require.NoError(t, json.Unmarshal([]byte(`{"es":"Jugo","pt-br":"Suco","en":null,"de":"Saft"}`), &text))

	assert.Equal(t, []string{"es", "pt-BR", "de"}, text.Languages())
	assert.Equal(t, "Jugo", text.Resolve("fr", "it"))

	out, err := json.Marshal(text)
	require.NoError(t, err)
	assert.Equal(t, `{"es":"Jugo","pt-BR":"Suco","de":"Saft"}`, string(out))
}

func TestLocalizedText_UnmarshalRejectsNonObject(t *testing.T) {
	var text LocalizedText
	assert.Error(t, json.Unmarshal([]byte(`["pt","Suco"]`), &text))
	require.NoError(t, json.Unmarshal([]byte(`null`), &text))
	assert.Equal(t, 0, text.Len())
}

func TestLocalizedText_Scan(t *testing.T) {
	var text LocalizedText
	require.NoError(t, text.Scan([]byte(`{"pt":"Água"}`)))
	assert.True(t, text.Has("pt"))
	require.NoError(t, text.Scan(nil))
	assert.True(t, text.IsBlank())
	assert.Error(t, text.Scan(42))
}

func TestValidLang(t *testing.T) {
	assert.True(t, ValidLang("pt-BR"))
	assert.True(t, ValidLang("en"))
	assert.False(t, ValidLang(""))
	assert.False(t, ValidLang("not a language"))
}

func TestLocalizedText_EntriesIsACopy(t *testing.T) {
	text := NewLocalizedText(Translation{Lang: "pt", Value: "Bolo"}, Translation{Lang: "en", Value: "Cake"})
	entries := text.Entries()
	require.Len(t, entries, 2)
	entries[0].Value = "changed"

	v, _ := text.Get("pt")
	assert.Equal(t, "Bolo", v)
}
