// internal/handlers/results.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/report"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/repository"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/scoring"
)

type ResultsHandler struct {
	log     *zap.Logger
	Catalog *models.Catalog
}

func NewResultsHandler(log *zap.Logger, catalog *models.Catalog) *ResultsHandler {
	return &ResultsHandler{log: log, Catalog: catalog}
}

type saveRequest struct {
	ClientID   int                  `json:"clientId"`
	ScheduleID *int                 `json:"scheduleId,omitempty"`
	TestCode   string               `json:"testCode"`
	AppliedBy  *int                 `json:"appliedBy,omitempty"`
	AppliedAt  *time.Time           `json:"appliedAt,omitempty"`
	Input      models.RawScoreInput `json:"input"`
}

// Save computes and persists one administration. Ineligible and
// incomplete submissions are reported back without a row being
// written; a persisted record always carries a full CalculatedResult.
func (h *ResultsHandler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind save request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	def, ok := h.Catalog.Get(req.TestCode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown test code"})
		return
	}
	if req.ClientID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing client id"})
		return
	}

	if !scoring.IsEligible(def, req.Input.PatientAge) {
		c.JSON(http.StatusOK, gin.H{"saved": false, "reason": "ineligible"})
		return
	}

	calc := scoring.Calculate(def, &req.Input)
	if calc == nil {
		c.JSON(http.StatusOK, gin.H{"saved": false, "reason": "incomplete"})
		return
	}

	appliedAt := time.Now()
	if req.AppliedAt != nil {
		appliedAt = *req.AppliedAt
	}

	result, err := models.NewTestResult(def, &req.Input, calc, req.ClientID, req.ScheduleID, req.AppliedBy, appliedAt)
	if err != nil {
		h.log.Error("Failed to package test result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to package result"})
		return
	}
	if err := repository.SaveTestResult(result); err != nil {
		h.log.Error("Failed to save test result", zap.Error(err), zap.String("testCode", req.TestCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saved": true, "id": result.ID})
}

// History lists a client's administrations, newest first, with
// administrator names resolved.
func (h *ResultsHandler) History(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	results, err := repository.GetResultsForClient(clientID)
	if err != nil {
		h.log.Error("Failed to load client history", zap.Error(err), zap.Int("clientID", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	names, err := repository.GetProfessionalNames(appliedByIDs(results))
	if err != nil {
		h.log.Error("Failed to resolve professional names", zap.Error(err))
		names = map[int]string{}
	}

	c.JSON(http.StatusOK, report.BuildHistory(results, names))
}

// Export renders the canonical plain-text block for a client's
// results, suitable for clipboard use in clinical reports. The
// optional ?result= parameter narrows the export to one record.
func (h *ResultsHandler) Export(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	results, err := repository.GetResultsForClient(clientID)
	if err != nil {
		h.log.Error("Failed to load client history", zap.Error(err), zap.Int("clientID", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	if filter := c.Query("result"); filter != "" {
		resultID, err := strconv.Atoi(filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result id"})
			return
		}
		filtered := results[:0]
		for _, res := range results {
			if res.ID == resultID {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	names, err := repository.GetProfessionalNames(appliedByIDs(results))
	if err != nil {
		h.log.Error("Failed to resolve professional names", zap.Error(err))
		names = map[int]string{}
	}

	var blocks []string
	for i := range results {
		res := &results[i]
		def, _ := h.Catalog.Get(res.TestCode)
		appliedBy := ""
		if res.AppliedBy != nil {
			appliedBy = names[*res.AppliedBy]
		}
		blocks = append(blocks, report.CanonicalText(res, def, appliedBy))
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(blocks, "\n")))
}

// Chart renders an echarts timeline of one subscore's calculated score
// across a client's administrations of a single instrument.
func (h *ResultsHandler) Chart(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}
	testCode := c.Query("test")
	subscore := c.Query("subscore")
	def, ok := h.Catalog.Get(testCode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown test code"})
		return
	}
	sub, ok := def.SubscoreByName(subscore)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscore"})
		return
	}

	points, err := repository.GetScoreTimeline(clientID, testCode, subscore)
	if err != nil {
		h.log.Error("Failed to load score timeline", zap.Error(err), zap.Int("clientID", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}

	label := sub.Label
	if label == "" {
		label = sub.Name
	}
	line := generateTimelineChart(points, def.Name, label)
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render chart", zap.Error(err))
	}
}

func appliedByIDs(results []models.TestResult) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, res := range results {
		if res.AppliedBy != nil && !seen[*res.AppliedBy] {
			seen[*res.AppliedBy] = true
			ids = append(ids, *res.AppliedBy)
		}
	}
	return ids
}

func generateTimelineChart(data []repository.TimelineDataPoint, title, metricLabel string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: metricLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0)
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries(metricLabel, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
