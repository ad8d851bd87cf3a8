package houseplansserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	OrderAPI   OrderAPI
	CatalogAPI CatalogAPI
	InquiryAPI InquiryAPI
	SiteAPI    SiteAPI

	// Throttle, when set, runs before the public submission routes.
	Throttle gin.HandlerFunc
}

var throttledRoutes = map[string]bool{
	"CreateCheckout":       true,
	"SubmitContactMessage": true,
	"SubmitQuoteRequest":   true,
}

// NewRouter returns a router with request logging and problem-rendering panic recovery.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), Recovery())
	return NewRouterWithGinEngine(engine, handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Middleware must be
// attached to router before this call to apply to the routes.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := []gin.HandlerFunc{route.HandlerFunc}
		if handleFunctions.Throttle != nil && throttledRoutes[route.Name] {
			chain = []gin.HandlerFunc{handleFunctions.Throttle, route.HandlerFunc}
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, chain...)
		case http.MethodPost:
			router.POST(route.Pattern, chain...)
		case http.MethodPut:
			router.PUT(route.Pattern, chain...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, chain...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, chain...)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a bound handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateCheckout", http.MethodPost, "/api/orders/checkout", handleFunctions.OrderAPI.CreateCheckout},
		{"PaymentSuccess", http.MethodPost, "/api/orders/success", handleFunctions.OrderAPI.PaymentSuccess},
		{"PaymentCancel", http.MethodPost, "/api/orders/cancel", handleFunctions.OrderAPI.PaymentCancel},
		{"GetOrder", http.MethodGet, "/api/orders/:order_id", handleFunctions.OrderAPI.GetOrder},
		{"DownloadReceipt", http.MethodGet, "/api/orders/:order_id/receipt", handleFunctions.OrderAPI.DownloadReceipt},
		{"ListProperties", http.MethodGet, "/api/properties", handleFunctions.CatalogAPI.ListProperties},
		{"CreateProperty", http.MethodPost, "/api/properties", handleFunctions.CatalogAPI.CreateProperty},
		{"ListPlans", http.MethodGet, "/api/properties/plans", handleFunctions.CatalogAPI.ListPlans},
		{"ListBuilt", http.MethodGet, "/api/properties/built", handleFunctions.CatalogAPI.ListBuilt},
		{"GetProperty", http.MethodGet, "/api/properties/:id", handleFunctions.CatalogAPI.GetProperty},
		{"SubmitContactMessage", http.MethodPost, "/api/contact", handleFunctions.InquiryAPI.SubmitContactMessage},
		{"ListContactMessages", http.MethodGet, "/api/contact", handleFunctions.InquiryAPI.ListContactMessages},
		{"GetContactMessage", http.MethodGet, "/api/contact/:id", handleFunctions.InquiryAPI.GetContactMessage},
		{"SubmitQuoteRequest", http.MethodPost, "/api/quotes", handleFunctions.InquiryAPI.SubmitQuoteRequest},
		{"ListQuoteRequests", http.MethodGet, "/api/quotes", handleFunctions.InquiryAPI.ListQuoteRequests},
		{"GetQuoteRequest", http.MethodGet, "/api/quotes/:id", handleFunctions.InquiryAPI.GetQuoteRequest},
		{"GetSettings", http.MethodGet, "/api/settings", handleFunctions.SiteAPI.GetSettings},
		{"GetContactInformation", http.MethodGet, "/api/contact-info", handleFunctions.SiteAPI.GetContactInformation},
	}
}
