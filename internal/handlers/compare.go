package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/services"
)

// Generator is the contract to the generative-text collaborator.
// *llm.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, instruction, contextBlock string) (string, error)
}

const compareInstruction = "Compara el texto griego original con la traducción al español de este versículo."

// CompareHandler resolves a verse and asks the generative backend for a
// linguistic comparison. The generation step is strictly additive: the pair
// is returned even when the backend is absent or erroring.
type CompareHandler struct {
	resolver  *services.ReferenceResolver
	generator Generator
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(resolver *services.ReferenceResolver, generator Generator) *CompareHandler {
	return &CompareHandler{resolver: resolver, generator: generator}
}

// Compare handles POST /compare
func (h *CompareHandler) Compare(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CompareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	loc := models.Location{Book: req.Book, Chapter: req.Chapter, Verse: req.Verse}
	pair, err := h.resolver.Resolve(ctx, loc)
	if err != nil {
		if errors.Is(err, models.ErrVerseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Verse not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Lookup failed: "+err.Error())
	}

	resp := models.CompareResponse{Verse: *pair}

	analysis, genErr := h.generator.Generate(ctx, compareInstruction, services.FormatContext(*pair))
	if genErr != nil {
		c.Logger().Warnf("comparison generation failed: %v", genErr)
		resp.AnalysisError = "Generative backend unavailable: " + genErr.Error()
	} else {
		resp.Analysis = analysis
	}

	return c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers compare routes
func (h *CompareHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/compare", h.Compare)
}
