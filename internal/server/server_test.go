package server

import (
	"context"
	"net"
	"strings"
	"testing"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	catalogHandler "github.com/fekuna/omnipos-catalog-service/internal/catalog/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/session"
	catalogUC "github.com/fekuna/omnipos-catalog-service/internal/catalog/usecase"
	categoryHandler "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	categoryRepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	categoryUC "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	modifierHandler "github.com/fekuna/omnipos-catalog-service/internal/modifier/handler"
	modifierRepo "github.com/fekuna/omnipos-catalog-service/internal/modifier/repository"
	modifierUC "github.com/fekuna/omnipos-catalog-service/internal/modifier/usecase"
	productHandler "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	productRepo "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	productUC "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/i18n"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const merchant = "m-1"

func startServer(t *testing.T) (*grpc.ClientConn, *event.Recorder) {
	t.Helper()
	log := logger.NewNop()
	store := memstore.New()
	events := &event.Recorder{}
	langs := validate.Languages{Primary: "pt", Supported: []string{"pt", "en", "es"}}

	translator, err := i18n.NewTranslator("pt")
	require.NoError(t, err)
	errs := grpcutil.NewErrors(translator, log)

	cats := categoryRepo.NewMemoryRepository(store)
	products := productRepo.NewMemoryRepository(store)
	modifiers := modifierRepo.NewMemoryRepository(store)

	catalogUseCase := catalogUC.NewCatalogUseCase(cats, products, modifiers, nil, langs.Primary, log)
	handlers := Handlers{
		Category: categoryHandler.NewCategoryHandler(
			categoryUC.NewCategoryUseCase(cats, nil, events, nil, langs, log), errs, log),
		Product: productHandler.NewProductHandler(
			productUC.NewProductUseCase(products, cats, modifiers, nil, events, nil, nil, catalogUseCase, langs, log),
			errs, nil, log),
		Modifier: modifierHandler.NewModifierGroupHandler(
			modifierUC.NewModifierUseCase(modifiers, nil, events, langs, log), errs, log),
		Catalog: catalogHandler.NewCatalogHandler(catalogUseCase, errs, nil, log),
	}

	lis := bufconn.Listen(1 << 20)
	srv := New(handlers, langs.Primary, log)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, events
}

func merchantCtx() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "x-merchant-id", merchant)
}

func TestServer_RejectsCallsWithoutMerchant(t *testing.T) {
	conn, _ := startServer(t)

	_, err := catalogv1.NewCatalogServiceClient(conn).GetGateState(context.Background(), &catalogv1.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	res, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: catalogv1.CatalogServiceName,
	})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, res.Status)
}

func TestServer_LocalizesErrors(t *testing.T) {
	conn, _ := startServer(t)
	products := catalogv1.NewProductServiceClient(conn)

	_, err := products.GetProduct(merchantCtx(), &catalogv1.ProductIDRequest{ID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), "Não encontrado"), status.Convert(err).Message())

	ctx := metadata.AppendToOutgoingContext(merchantCtx(), "accept-language", "en-US,en;q=0.8")
	_, err = products.GetProduct(ctx, &catalogv1.ProductIDRequest{ID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), "Not found"), status.Convert(err).Message())
}

func TestServer_SessionRoundTrip(t *testing.T) {
	conn, events := startServer(t)
	ctx := merchantCtx()
	categories := catalogv1.NewCategoryServiceClient(conn)
	products := catalogv1.NewProductServiceClient(conn)

	drinks, err := categories.CreateCategory(ctx, &catalogv1.CreateCategoryRequest{Name: model.Text("pt", "Bebidas")})
	require.NoError(t, err)
	food, err := categories.CreateCategory(ctx, &catalogv1.CreateCategoryRequest{Name: model.Text("pt", "Pratos")})
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"Água", "Suco", "Refrigerante"} {
		res, err := products.CreateProduct(ctx, &catalogv1.CreateProductRequest{
			CategoryID: drinks.Category.ID,
			Name:       model.Text("pt", name),
			Price:      decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		ids = append(ids, res.Product.ID)
	}

	s := session.New(session.NewGRPCBackend(conn, merchant, "pt"), logger.NewNop(), session.Options{
		PrimaryLang:        "pt",
		IncludeUnavailable: true,
	})
	require.NoError(t, s.Refresh(context.Background()))
	assert.False(t, s.Gate().Locked)
	require.Len(t, s.Snapshot().Categories, 2)

	require.NoError(t, s.ReorderCategories(context.Background(), "", food.Category.ID, drinks.Category.ID))
	require.NoError(t, s.ReorderProducts(context.Background(), ids[2], ids[0]))

	toggled, err := s.ToggleAvailability(context.Background(), ids[1])
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailable)

	require.NoError(t, s.Refresh(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, food.Category.ID, snap.Categories[0].Category.ID)
	got, _ := snap.ProductIDs(drinks.Category.ID)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, got)

	moved, err := s.MoveProduct(context.Background(), ids[0], food.Category.ID)
	require.NoError(t, err)
	assert.Equal(t, food.Category.ID, moved.CategoryID)
	got, _ = s.Snapshot().ProductIDs(food.Category.ID)
	assert.Equal(t, []string{ids[0]}, got)

	assert.Contains(t, events.Types(), event.CategoriesReordered)
	assert.Contains(t, events.Types(), event.ProductsReordered)
	assert.Contains(t, events.Types(), event.ProductMoved)
}
