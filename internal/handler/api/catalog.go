package api

import (
	"net/http"

	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	appointmentQueries queries.AppointmentQueries
}

func NewCatalogHandler(appointmentQueries queries.AppointmentQueries) *CatalogHandler {
	return &CatalogHandler{
		appointmentQueries: appointmentQueries,
	}
}

// ListServices returns the bookable service catalog. Public: the booking
// form renders it before the user authenticates.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.appointmentQueries.ListServices(c.Request.Context()))
}
