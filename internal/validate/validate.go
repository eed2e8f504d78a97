// Package validate holds the field checks shared by the catalog use cases. All
// checks record into an apperror.Violations so one request reports every problem.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/storage"
	"github.com/shopspring/decimal"
)

// Languages is the merchant-independent language policy of the catalog.
type Languages struct {
	Primary   string
	Supported []string
}

func (l Languages) supports(lang string) bool {
	if len(l.Supported) == 0 {
		return true
	}
	for _, s := range l.Supported {
		if model.CanonicalLang(s) == lang {
			return true
		}
	}
	return false
}

// RequiredText checks that text has a non-blank value in the primary language and
// only uses supported, well-formed language keys.
func (l Languages) RequiredText(v *apperror.Violations, field string, text model.LocalizedText) {
	if !text.Has(l.Primary) {
		v.Addf(field, "a %s value is required", model.CanonicalLang(l.Primary))
	}
	l.OptionalText(v, field, text)
}

// OptionalText checks language keys only.
func (l Languages) OptionalText(v *apperror.Violations, field string, text model.LocalizedText) {
	for _, lang := range text.Languages() {
		switch {
		case !model.ValidLang(lang):
			v.Addf(field, "invalid language %q", lang)
		case !l.supports(lang):
			v.Addf(field, "unsupported language %q", lang)
		}
	}
}

// PriceScale and maxPrice follow the NUMERIC(12, 2) price columns.
const PriceScale = 2

var maxPrice = decimal.New(1, 12-PriceScale)

// NonNegativePrice rejects negative prices and any price the price columns would round or overflow.
func NonNegativePrice(v *apperror.Violations, field string, price decimal.Decimal) {
	switch {
	case price.IsNegative():
		v.Add(field, "must be zero or greater")
	case !price.Equal(price.Round(PriceScale)):
		v.Addf(field, "must have at most %d decimal places", PriceScale)
	case price.GreaterThanOrEqual(maxPrice):
		v.Addf(field, "must be less than %s", maxPrice.String())
	}
}

// AssetRefs checks each reference against the asset store. A nil verifier accepts everything.
// Missing objects are reported as a referential error, store failures as an internal one.
func AssetRefs(ctx context.Context, verifier storage.Verifier, field string, refs ...string) error {
	if verifier == nil {
		return nil
	}
	for i, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			return apperror.Newf(apperror.CodeInvalidInput, "%s: empty asset reference", indexed(field, i, len(refs)))
		}
		ok, err := verifier.Exists(ctx, ref)
		if err != nil {
			return apperror.Wrap(apperror.CodeUnavailable, err, "asset store unavailable")
		}
		if !ok {
			return apperror.Referential("%s: asset %q does not exist", indexed(field, i, len(refs)), ref)
		}
	}
	return nil
}

func indexed(field string, i, n int) string {
	if n <= 1 {
		return field
	}
	return fmt.Sprintf("%s[%d]", field, i)
}
