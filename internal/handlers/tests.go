// internal/handlers/tests.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

type TestsHandler struct {
	log     *zap.Logger
	Catalog *models.Catalog
}

func NewTestsHandler(log *zap.Logger, catalog *models.Catalog) *TestsHandler {
	return &TestsHandler{log: log, Catalog: catalog}
}

type testSummary struct {
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Model     models.ScoringModel `json:"scoringModel"`
	AgeMin    int                 `json:"ageMin"`
	AgeMax    int                 `json:"ageMax"`
	Subscores []string            `json:"subscores"`
}

// List returns the loaded test catalog.
func (h *TestsHandler) List(c *gin.Context) {
	summaries := make([]testSummary, 0, len(h.Catalog.Tests))
	for _, def := range h.Catalog.Tests {
		summaries = append(summaries, summarize(&def))
	}
	c.JSON(http.StatusOK, summaries)
}

// Get returns one test definition summary.
func (h *TestsHandler) Get(c *gin.Context) {
	def, ok := h.Catalog.Get(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown test code"})
		return
	}
	c.JSON(http.StatusOK, summarize(def))
}

func summarize(def *models.TestDefinition) testSummary {
	names := make([]string, 0, len(def.Subscores))
	for _, s := range def.Subscores {
		names = append(names, s.Name)
	}
	return testSummary{
		Code:      def.Code,
		Name:      def.Name,
		Model:     def.Model,
		AgeMin:    def.AgeRange.Min,
		AgeMax:    def.AgeRange.Max,
		Subscores: names,
	}
}
