package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
	"github.com/HHRClemson/hydrological-toolkit/internal/usecase"
)

// Handler handles HTTP requests for SST extraction.
type Handler struct {
	extractionSvc *usecase.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(extractionSvc *usecase.Service) *Handler {
	return &Handler{
		extractionSvc: extractionSvc,
	}
}

// RecordResponse is one output row. SST is null where the grid holds no
// measurement (land or missing data).
type RecordResponse struct {
	Date string   `json:"date"`
	Lat  float64  `json:"lat"`
	Lon  float64  `json:"lon"`
	SST  *float64 `json:"sst"`
}

// Extract handles GET /v1/sst/extract.
//
// Query parameters: lat and lon (repeated, paired by position), start and
// end (ISO dates, inclusive). Coordinates returned are the grid cell's
// actual coordinates, not the caller's.
func (h *Handler) Extract(c *gin.Context) {
	latStrs := c.QueryArray("lat")
	lonStrs := c.QueryArray("lon")
	startStr := c.Query("start")
	endStr := c.Query("end")

	if len(latStrs) == 0 || len(lonStrs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one lat/lon pair is required"})
		return
	}
	if len(latStrs) != len(lonStrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("lat and lon counts differ (%d vs %d)", len(latStrs), len(lonStrs)),
		})
		return
	}
	if startStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start parameter is required"})
		return
	}
	if endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end parameter is required"})
		return
	}

	locs := make([]domain.Location, len(latStrs))
	for i := range latStrs {
		lat, err := strconv.ParseFloat(latStrs[i], 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude %q: %v", latStrs[i], err)})
			return
		}
		lon, err := strconv.ParseFloat(lonStrs[i], 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude %q: %v", lonStrs[i], err)})
			return
		}
		locs[i] = domain.Location{Lat: lat, Lon: lon}
	}

	req, err := usecase.NewRequest(locs, startStr, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.extractionSvc.Execute(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	rows := make([]RecordResponse, len(result.Records))
	for i, rec := range result.Records {
		rows[i] = RecordResponse{
			Date: rec.Date.Format("2006-01-02"),
			Lat:  rec.Lat,
			Lon:  rec.Lon,
			SST:  rec.SST,
		}
	}

	response := gin.H{
		"rows":  rows,
		"count": len(rows),
	}
	if result.Warning != nil {
		response["warning"] = result.Warning.Message
	}

	c.JSON(http.StatusOK, response)
}

// statusForError maps the error taxonomy onto HTTP statuses: input problems
// are the caller's fault, a date missing from the grid's time axis means the
// requested range is unprocessable, anything else is upstream or internal.
func statusForError(err error) int {
	var unsupported *domain.UnsupportedInputError
	var column *domain.ColumnError
	var dateMiss *domain.DateNotFoundError
	switch {
	case errors.As(err, &unsupported), errors.As(err, &column):
		return http.StatusBadRequest
	case errors.As(err, &dateMiss):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
