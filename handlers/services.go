package handlers

import (
	"net/http"
	"strings"

	"mightymoves/models"
	"mightymoves/services/admin"
	"mightymoves/services/booking"

	"github.com/gin-gonic/gin"
)

// ServiceSummary is one entry of the public service catalog.
type ServiceSummary struct {
	Service      string             `json:"service"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	SubmitLabel  string             `json:"submitLabel"`
	Fields       []models.FormField `json:"fields"`
	RequireTerms bool               `json:"requireTerms"`
}

// CatalogHandler serves static service and legal content.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	out := make([]ServiceSummary, 0, len(booking.Catalog))
	for _, d := range booking.Catalog {
		out = append(out, ServiceSummary{
			Service:      d.Service,
			Title:        d.Title,
			Description:  d.Description,
			SubmitLabel:  d.SubmitLabel,
			Fields:       d.Fields,
			RequireTerms: d.RequireTerms,
		})
	}
	c.JSON(http.StatusOK, gin.H{"services": out, "paymentMethods": models.PaymentMethods})
}

// ListLegal handles GET /api/legal?audience=Customer|Admin.
func (h *CatalogHandler) ListLegal(c *gin.Context) {
	audience := strings.TrimSpace(c.Query("audience"))
	if audience == "" {
		c.JSON(http.StatusOK, admin.LegalSections())
		return
	}
	c.JSON(http.StatusOK, admin.LegalSectionsFor(audience))
}

// GetLegal handles GET /api/legal/:id.
func (h *CatalogHandler) GetLegal(c *gin.Context) {
	section, ok := admin.LegalSection(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Legal document not found"})
		return
	}
	c.JSON(http.StatusOK, section)
}
