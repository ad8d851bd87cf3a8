package houseplansserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cedrichouse/houseplans-api/internal/domains/site"
)

// SiteAPI serves the storefront copy and contact block loaded at start.
type SiteAPI struct {
	content site.Content
}

func NewSiteAPI(content site.Content) SiteAPI {
	return SiteAPI{content: content}
}

// Get /api/settings
func (api *SiteAPI) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, api.content.Settings)
}

// Get /api/contact-info
func (api *SiteAPI) GetContactInformation(c *gin.Context) {
	c.JSON(http.StatusOK, api.content.Contact)
}
