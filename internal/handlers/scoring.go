// internal/handlers/scoring.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/scoring"
)

type ScoreHandler struct {
	log     *zap.Logger
	Catalog *models.Catalog
}

func NewScoreHandler(log *zap.Logger, catalog *models.Catalog) *ScoreHandler {
	return &ScoreHandler{log: log, Catalog: catalog}
}

type previewResponse struct {
	Eligible bool                     `json:"eligible"`
	Complete bool                     `json:"complete"`
	Result   *models.CalculatedResult `json:"result,omitempty"`
}

// Preview scores a form snapshot without persisting anything. The UI
// calls this on every input change; ineligibility and incomplete input
// are ordinary response states, not errors.
func (h *ScoreHandler) Preview(c *gin.Context) {
	def, ok := h.Catalog.Get(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown test code"})
		return
	}

	var input models.RawScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Error("Failed to bind raw score input", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	resp := previewResponse{
		Eligible: scoring.IsEligible(def, input.PatientAge),
	}
	if !resp.Eligible {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Result = scoring.Calculate(def, &input)
	resp.Complete = resp.Result != nil
	c.JSON(http.StatusOK, resp)
}
