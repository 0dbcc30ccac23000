package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/koine-verse-search-api/internal/corpus"
	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/services"
)

// VerseHandler handles exact reference lookup
type VerseHandler struct {
	resolver *services.ReferenceResolver
}

// NewVerseHandler creates a new verse handler
func NewVerseHandler(resolver *services.ReferenceResolver) *VerseHandler {
	return &VerseHandler{resolver: resolver}
}

// GetVerse handles GET /verses/:book/:chapter/:verse
func (h *VerseHandler) GetVerse(c echo.Context) error {
	loc, err := parseLocation(c)
	if err != nil {
		return err
	}

	pair, err := h.resolver.Resolve(c.Request().Context(), loc)
	if err != nil {
		if errors.Is(err, models.ErrVerseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Verse not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Lookup failed: "+err.Error())
	}

	return c.JSON(http.StatusOK, pair)
}

// RegisterRoutes registers verse lookup routes
func (h *VerseHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/verses/:book/:chapter/:verse", h.GetVerse)
}

func parseLocation(c echo.Context) (models.Location, error) {
	book := c.Param("book")
	if !corpus.IsCanonicalBook(book) {
		return models.Location{}, echo.NewHTTPError(http.StatusBadRequest, "Unknown book name")
	}

	chapter, err := strconv.Atoi(c.Param("chapter"))
	if err != nil || chapter < 1 {
		return models.Location{}, echo.NewHTTPError(http.StatusBadRequest, "Chapter must be a positive integer")
	}

	verse, err := strconv.Atoi(c.Param("verse"))
	if err != nil || verse < 1 {
		return models.Location{}, echo.NewHTTPError(http.StatusBadRequest, "Verse must be a positive integer")
	}

	return models.Location{Book: book, Chapter: chapter, Verse: verse}, nil
}
