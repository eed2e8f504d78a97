// Package server assembles the catalog gRPC server.
package server

import (
	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Handlers struct {
	Category catalogv1.CategoryServiceServer
	Product  catalogv1.ProductServiceServer
	Modifier catalogv1.ModifierGroupServiceServer
	Catalog  catalogv1.CatalogServiceServer
}

// New registers every catalog service behind the recovery, logging and
// request-context interceptors, in that order.
func New(h Handlers, defaultLang string, log logger.ZapLogger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.RequestContext(defaultLang),
	))
	srv := grpc.NewServer(opts...)

	catalogv1.RegisterCategoryServiceServer(srv, h.Category)
	catalogv1.RegisterProductServiceServer(srv, h.Product)
	catalogv1.RegisterModifierGroupServiceServer(srv, h.Modifier)
	catalogv1.RegisterCatalogServiceServer(srv, h.Catalog)

	healthSrv := health.NewServer()
	for _, name := range []string{
		catalogv1.CategoryServiceName,
		catalogv1.ProductServiceName,
		catalogv1.ModifierGroupServiceName,
		catalogv1.CatalogServiceName,
	} {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(srv, healthSrv)

	reflection.Register(srv)
	return srv
}
