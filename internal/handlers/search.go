package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/services"
)

// SearchHandler handles semantic concept search
type SearchHandler struct {
	concepts *services.ConceptResolver
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(concepts *services.ConceptResolver) *SearchHandler {
	return &SearchHandler{concepts: concepts}
}

// ConceptSearch handles POST /search - semantic verse search
func (h *SearchHandler) ConceptSearch(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ConceptSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	// A blank query and a degraded search both come back as an empty result
	// set, not an error.
	pairs, err := h.concepts.ResolveByConcept(ctx, req.Query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed: "+err.Error())
	}

	return c.JSON(http.StatusOK, models.ConceptSearchResponse{
		Query:   req.Query,
		Results: pairs,
	})
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.ConceptSearch)
}
