// Package middleware holds the unary interceptors of the gRPC server.
package middleware

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequestContext copies merchant id and language from metadata into the context.
// Every catalog RPC is tenant scoped, so calls without x-merchant-id are rejected;
// the health service is exempt.
func RequestContext(defaultLang string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, "/grpc.health.") {
			return handler(ctx, req)
		}
		merchantID := auth.GetMerchantID(ctx)
		if merchantID == "" {
			return nil, status.Error(codes.Unauthenticated, "missing merchant context")
		}
		lang := auth.GetLanguage(ctx)
		if lang == "" {
			lang = defaultLang
		}
		ctx = auth.WithMerchantID(ctx, merchantID)
		ctx = auth.WithLanguage(ctx, lang)
		return handler(ctx, req)
	}
}

// Logging logs every call with its duration and resulting status code.
func Logging(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("merchant_id", auth.GetMerchantID(ctx)),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Debug("grpc call", fields...)
		case codes.Internal, codes.Unknown, codes.Unavailable:
			log.Error("grpc call failed", append(fields, zap.Error(err))...)
		default:
			log.Info("grpc call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// Recovery turns a panicking handler into an Internal status.
func Recovery(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
