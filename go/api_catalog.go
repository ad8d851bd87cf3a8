package houseplansserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/cedrichouse/houseplans-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	catalogports "github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
)

// CatalogAPI serves the house plan and built home listings.
type CatalogAPI struct {
	service  catalogports.Service
	mediaURL string
}

// NewCatalogAPI wires the catalog service; mediaURL prefixes stored image paths.
func NewCatalogAPI(service catalogports.Service, mediaURL string) CatalogAPI {
	return CatalogAPI{service: service, mediaURL: mediaURL}
}

// Get /api/properties
// Lists properties, optionally filtered by category
func (api *CatalogAPI) ListProperties(c *gin.Context) {
	filter := catalogports.ListFilter{}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category, err := catalogdomain.ParseCategory(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.Category = category
	}
	api.list(c, filter)
}

// Get /api/properties/plans
func (api *CatalogAPI) ListPlans(c *gin.Context) {
	api.list(c, catalogports.ListFilter{Category: catalogdomain.CategoryPlan})
}

// Get /api/properties/built
func (api *CatalogAPI) ListBuilt(c *gin.Context) {
	api.list(c, catalogports.ListFilter{Category: catalogdomain.CategoryBuilt})
}

func (api *CatalogAPI) list(c *gin.Context, filter catalogports.ListFilter) {
	properties, err := api.service.ListProperties(c.Request.Context(), filter)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	out := make([]cataloghttpmapper.Property, 0, len(properties))
	for _, p := range properties {
		out = append(out, cataloghttpmapper.FromDomainProperty(p, api.resolveImage))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/properties/:id
// Find property by ID
func (api *CatalogAPI) GetProperty(c *gin.Context) {
	id, ok := bindPathID(c, "id")
	if !ok {
		return
	}
	property, err := api.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProperty(property, api.resolveImage))
}

// Post /api/properties
// Adds a property to the catalog
func (api *CatalogAPI) CreateProperty(c *gin.Context) {
	var payload cataloghttpmapper.Property
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateProperty(c.Request.Context(), cataloghttpmapper.ToDomainProperty(payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProperty(saved, api.resolveImage))
}

func (api *CatalogAPI) resolveImage(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || api.mediaURL == "" {
		return ref
	}
	return strings.TrimRight(api.mediaURL, "/") + "/" + strings.TrimLeft(ref, "/")
}
