package houseplansserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/cedrichouse/houseplans-api/internal/domains/catalog/application"
	inquiryapp "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/application"
	orderapp "github.com/cedrichouse/houseplans-api/internal/domains/orders/application"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
	apierrors "github.com/cedrichouse/houseplans-api/internal/shared/errors"
)

const (
	msgReceiptRequiresPaid = "Receipt can only be generated for paid orders"
	msgReceiptFailed       = "Failed to generate receipt"
	msgCheckoutFailed      = "Failed to create checkout session"
	msgInternal            = "Internal server error"
)

// Recovery turns handler panics into a generic problem response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		apierrors.RespondError(c, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError returns RFC 7807 responses for transport-level failures.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithMessage(msgInternal)
	}
	respondProblem(c, problem)
}

func respondOrderError(c *gin.Context, err error) {
	var gatewayErr *ports.GatewayError
	switch {
	case errors.Is(err, ports.ErrPlanNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("House plan not found"))
	case errors.Is(err, orderapp.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("Order not found"))
	case errors.Is(err, orderapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, orderapp.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, orderapp.ErrGateway):
		problem := apierrors.ErrPaymentGateway.WithMessage(msgCheckoutFailed)
		if errors.As(err, &gatewayErr) && gatewayErr.StatusCode != 0 {
			problem = problem.WithExtension("gatewayStatus", gatewayErr.StatusCode)
		}
		respondProblem(c, problem)
	case errors.Is(err, orderapp.ErrCallbackURL):
		respondProblem(c, apierrors.ErrInternal.WithMessage("Unable to determine frontend URL for payment redirect"))
	default:
		respondProblem(c, apierrors.ErrInternal.WithMessage(msgInternal))
	}
}

func respondReceiptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderapp.ErrInvalidState):
		respondProblem(c, apierrors.ErrBadRequest.WithMessage(msgReceiptRequiresPaid))
	case errors.Is(err, orderapp.ErrReceiptGeneration):
		respondProblem(c, apierrors.ErrInternal.WithMessage(msgReceiptFailed))
	default:
		respondOrderError(c, err)
	}
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("Property not found"))
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithMessage(msgInternal))
	}
}

func respondInquiryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inquiryapp.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, inquiryapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithMessage(msgInternal))
	}
}
