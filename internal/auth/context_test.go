package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestGetMerchantID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(MerchantHeader, " m-1 "))
	assert.Equal(t, "m-1", GetMerchantID(ctx))
	assert.Equal(t, "m-2", GetMerchantID(WithMerchantID(ctx, "m-2")))
	assert.Empty(t, GetMerchantID(context.Background()))
}

func TestGetLanguage(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(LanguageHeader, "en-US;q=0.9, pt"))
	assert.Equal(t, "en-US", GetLanguage(ctx))
	assert.Equal(t, "es", GetLanguage(WithLanguage(ctx, "es")))
	assert.Empty(t, GetLanguage(context.Background()))
}
