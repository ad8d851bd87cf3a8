package houseplansserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/cedrichouse/houseplans-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	orderports "github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/orders/checkout
// Creates a pending order and opens a hosted checkout session
func (api *OrderAPI) CreateCheckout(c *gin.Context) {
	var payload orderhttpmapper.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := orderhttpmapper.ToCheckoutInput(payload, c.GetHeader("Origin"), c.GetHeader("Idempotency-Key"))
	result, err := api.startCheckout(c.Request.Context(), input)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromCheckoutResult(result))
}

func (api *OrderAPI) startCheckout(ctx context.Context, input ordertypes.CreateCheckoutInput) (*ordertypes.CheckoutResult, error) {
	if api.workflows != nil {
		return api.workflows.StartCheckout(ctx, input)
	}
	return api.service.CreateCheckout(ctx, input)
}

// Post /api/orders/success
// Marks an order as paid
func (api *OrderAPI) PaymentSuccess(c *gin.Context) {
	payload, ok := bindOrderReference(c)
	if !ok {
		return
	}
	if _, err := api.service.ConfirmPaid(c.Request.Context(), int64(payload.OrderID)); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.StatusResponse{Status: "Order marked as paid"})
}

// bindOrderReference treats an empty body like a missing id, which the lookup reports as 404.
func bindOrderReference(c *gin.Context) (orderhttpmapper.OrderReference, bool) {
	var payload orderhttpmapper.OrderReference
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, err)
		return payload, false
	}
	return payload, true
}

// Post /api/orders/cancel
// Marks an order as cancelled
func (api *OrderAPI) PaymentCancel(c *gin.Context) {
	payload, ok := bindOrderReference(c)
	if !ok {
		return
	}
	if _, err := api.service.ConfirmCancelled(c.Request.Context(), int64(payload.OrderID)); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.StatusResponse{Status: "Order marked as cancelled"})
}

// Get /api/orders/:order_id
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := bindPathID(c, "order_id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/:order_id/receipt
// Downloads the PDF receipt of a paid order
func (api *OrderAPI) DownloadReceipt(c *gin.Context) {
	id, ok := bindPathID(c, "order_id")
	if !ok {
		return
	}
	receipt, err := api.service.GenerateReceipt(c.Request.Context(), id)
	if err != nil {
		respondReceiptError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+receipt.Filename()+`"`)
	c.Header("Content-Length", strconv.Itoa(len(receipt.Content)))
	c.Data(http.StatusOK, "application/pdf", receipt.Content)
}
