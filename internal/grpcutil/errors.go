// Package grpcutil holds helpers shared by the gRPC handlers.
package grpcutil

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/i18n"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Errors converts use case errors into localized gRPC statuses.
type Errors struct {
	translator *i18n.Translator
	logger     logger.ZapLogger
}

func NewErrors(translator *i18n.Translator, log logger.ZapLogger) *Errors {
	return &Errors{translator: translator, logger: log}
}

// Status logs server-side failures and returns the status for err.
func (e *Errors) Status(ctx context.Context, op string, err error) error {
	switch apperror.CodeOf(err) {
	case apperror.CodeDatabase, apperror.CodeInternal, apperror.CodeUnavailable:
		e.logger.Error(op+" failed", zap.String("merchant_id", auth.GetMerchantID(ctx)), zap.Error(err))
	}
	lang := auth.GetLanguage(ctx)
	return apperror.ToStatus(err, func(code apperror.ErrorCode, detail, fallback string) string {
		return e.translator.Translate(lang, string(code), detail, fallback)
	})
}

// MerchantID returns the tenant of the call or an Unauthenticated status.
func MerchantID(ctx context.Context) (string, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return "", status.Error(codes.Unauthenticated, "missing merchant context")
	}
	return merchantID, nil
}
