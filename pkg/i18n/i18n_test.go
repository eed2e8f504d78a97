package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "Não encontrado: product p-1", tr.Translate("pt-BR", "NOT_FOUND", "product p-1", "x"))
	assert.Equal(t, "Conflicto: category not empty", tr.Translate("es", "CONFLICT", "category not empty", "x"))
	assert.Equal(t, "Not found: product p-1", tr.Translate("de", "NOT_FOUND", "product p-1", "x"))
	assert.Equal(t, "fallback", tr.Translate("en", "NO_SUCH_MESSAGE", "", "fallback"))
}

func TestNilTranslator(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "fallback", tr.Translate("pt", "NOT_FOUND", "", "fallback"))
}
