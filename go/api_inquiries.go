package houseplansserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inquiryhttpmapper "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/adapters/http/mapper"
	inquiryports "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/ports"
)

// InquiryAPI accepts contact messages and custom design quote requests.
type InquiryAPI struct {
	service inquiryports.Service
}

func NewInquiryAPI(service inquiryports.Service) InquiryAPI {
	return InquiryAPI{service: service}
}

// Post /api/contact
func (api *InquiryAPI) SubmitContactMessage(c *gin.Context) {
	var payload inquiryhttpmapper.ContactMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.SubmitContactMessage(c.Request.Context(), inquiryhttpmapper.ToDomainContactMessage(payload))
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiryhttpmapper.FromDomainContactMessage(saved))
}

// Get /api/contact
func (api *InquiryAPI) ListContactMessages(c *gin.Context) {
	messages, err := api.service.ListContactMessages(c.Request.Context())
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	out := make([]inquiryhttpmapper.ContactMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, inquiryhttpmapper.FromDomainContactMessage(m))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/contact/:id
func (api *InquiryAPI) GetContactMessage(c *gin.Context) {
	id, ok := bindPathID(c, "id")
	if !ok {
		return
	}
	msg, err := api.service.GetContactMessage(c.Request.Context(), id)
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiryhttpmapper.FromDomainContactMessage(msg))
}

// Post /api/quotes
func (api *InquiryAPI) SubmitQuoteRequest(c *gin.Context) {
	var payload inquiryhttpmapper.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.SubmitQuoteRequest(c.Request.Context(), inquiryhttpmapper.ToDomainQuoteRequest(payload))
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiryhttpmapper.FromDomainQuoteRequest(saved))
}

// Get /api/quotes
func (api *InquiryAPI) ListQuoteRequests(c *gin.Context) {
	requests, err := api.service.ListQuoteRequests(c.Request.Context())
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	out := make([]inquiryhttpmapper.QuoteRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, inquiryhttpmapper.FromDomainQuoteRequest(r))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/quotes/:id
func (api *InquiryAPI) GetQuoteRequest(c *gin.Context) {
	id, ok := bindPathID(c, "id")
	if !ok {
		return
	}
	req, err := api.service.GetQuoteRequest(c.Request.Context(), id)
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiryhttpmapper.FromDomainQuoteRequest(req))
}
