package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	merchantIDKey ctxKey = "merchant_id"
	languageKey   ctxKey = "language"

	MerchantHeader = "x-merchant-id"
	LanguageHeader = "accept-language"
)

// RequestContext is what the context interceptor extracts from incoming metadata.
type RequestContext struct {
	MerchantID string
	Language   string
}

func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	return context.WithValue(ctx, merchantIDKey, merchantID)
}

func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// GetMerchantID prefers the value stored by the interceptor and falls back to metadata.
func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(merchantIDKey).(string); ok {
		return val
	}
	return fromMetadata(ctx, MerchantHeader)
}

// GetLanguage returns the first tag of accept-language, without quality values.
func GetLanguage(ctx context.Context) string {
	if val, ok := ctx.Value(languageKey).(string); ok {
		return val
	}
	return FirstLanguage(fromMetadata(ctx, LanguageHeader))
}

// FirstLanguage picks the first entry of an Accept-Language style header.
func FirstLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

func fromMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(key); len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	}
	return ""
}
