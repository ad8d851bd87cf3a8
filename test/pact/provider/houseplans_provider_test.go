//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	pacttest "github.com/cedrichouse/houseplans-api/test/pact"

	houseplansserver "github.com/cedrichouse/houseplans-api/go"
	catalogmemory "github.com/cedrichouse/houseplans-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/cedrichouse/houseplans-api/internal/domains/catalog/application"
	catalogdomain "github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	inquirymemory "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/adapters/memory"
	inquiryapp "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/application"
	ordercatalog "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/catalog"
	ordermemory "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/observability"
	receiptpdf "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/receipt/pdf"
	orderworkflows "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	orderports "github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	"github.com/cedrichouse/houseplans-api/internal/domains/site"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHouseplansProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StatePlanExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StatePendingOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedPendingOrder(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractGateway stands in for the hosted checkout so contract runs stay offline.
type contractGateway struct{}

func (contractGateway) OpenCheckoutSession(_ context.Context, req orderports.CheckoutSessionRequest) (*orderports.CheckoutSession, error) {
	id := "ch_" + req.Metadata["order_id"]
	return &orderports.CheckoutSession{ID: id, RedirectURL: "https://pay.example.pact/checkout/" + id}, nil
}

type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	orders  orderports.Service
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

// reset rebuilds every store so identifiers restart at 1 and plan 1 is always present.
func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()

	properties := catalogmemory.NewRepository()
	catalogService := catalogapp.NewService(properties)
	plan, err := catalogService.CreateProperty(context.Background(), &catalogdomain.Property{
		Title:     "The Karoo",
		Category:  catalogdomain.CategoryPlan,
		Price:     decimal.RequireFromString("150000.00"),
		Bedrooms:  3,
		Bathrooms: 2,
		FloorArea: 180,
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingPlanID, plan.ID)

	orderService := orderobs.New(orderapp.NewService(
		ordermemory.NewRepository(),
		ordercatalog.New(properties),
		contractGateway{},
		receiptpdf.NewRenderer(""),
		orderapp.Config{FrontendURL: pacttest.ExampleOrigin},
		orderapp.WithLocker(ordermemory.NewLocker()),
	))

	content, err := site.Load()
	require.NoError(t, err)

	handlers := houseplansserver.ApiHandleFunctions{
		OrderAPI:   houseplansserver.NewOrderAPI(orderService, orderworkflows.NewInlineCheckoutWorkflows(orderService)),
		CatalogAPI: houseplansserver.NewCatalogAPI(catalogService, ""),
		InquiryAPI: houseplansserver.NewInquiryAPI(inquiryapp.NewService(inquirymemory.NewRepository())),
		SiteAPI:    houseplansserver.NewSiteAPI(content),
	}

	router := gin.New()
	router.Use(houseplansserver.Recovery())
	router = houseplansserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.handler = router
	a.orders = orderService
	a.mu.Unlock()
}

func (a *contractProviderApp) seedPendingOrder(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	orders := a.orders
	a.mu.RUnlock()

	pending, err := orders.CreatePendingOrder(context.Background(), ordertypes.CreateCheckoutInput{PlanID: pacttest.ExistingPlanID})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, pending.OrderID, "seeded order id "+strconv.FormatInt(pending.OrderID, 10))
}
