package houseplansserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// bindPathID binds a positive integer path parameter, writing a 400 problem on failure.
func bindPathID(c *gin.Context, name string) (int64, bool) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid format for parameter %s: %w", name, err))
		return 0, false
	}
	if id <= 0 {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parameter %s must be positive", name))
		return 0, false
	}
	return id, true
}
