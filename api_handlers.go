package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// APIHandler handles JSON API requests.
type APIHandler struct {
	DB *StatsDB
}

// Records returns the yearly records for a range. Metrics with no data for
// a year are omitted from that record's value map, never reported as zero.
func (h *APIHandler) Records(w http.ResponseWriter, r *http.Request) {
	start, end := yearRangeFromQuery(r)
	records := FilterRecords(start, end)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
		"start":   start,
		"end":     end,
	})
}

// Metrics returns the fixed metric registry and the dataset year bounds.
func (h *APIHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	type metricInfo struct {
		ID           MetricID   `json:"id"`
		Name         string     `json:"name"`
		Color        string     `json:"color"`
		Axis         string     `json:"axis"`
		DefaultStyle ChartStyle `json:"defaultStyle"`
		Percent      bool       `json:"percent"`
	}

	infos := make([]metricInfo, len(Metrics))
	for i, m := range Metrics {
		infos[i] = metricInfo{
			ID:           m.ID,
			Name:         m.Name,
			Color:        m.Hex,
			Axis:         axisName(m.Axis),
			DefaultStyle: m.DefaultStyle,
			Percent:      m.Percent,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": infos,
		"minYear": MinYear,
		"maxYear": MaxYear,
	})
}

// Domains returns the computed y-axis ranges for a year range and metric
// set. Without a metrics parameter the default selection is used.
func (h *APIHandler) Domains(w http.ResponseWriter, r *http.Request) {
	start, end := yearRangeFromQuery(r)

	metrics := DefaultMetrics()
	if r.URL.Query().Has("metrics") {
		metrics = parseMetricList(r.URL.Query().Get("metrics"))
	}

	left, right := AxisDomains(FilterRecords(start, end), metrics)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"left":  left,
		"right": right,
		"start": start,
		"end":   end,
	})
}

// Summary returns per-metric aggregates over a year range.
func (h *APIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, end := yearRangeFromQuery(r)

	summaries, err := h.DB.SummarizeRange(start, end)
	if err != nil {
		log.Printf("Summary error: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Summary failed",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
		"start":     start,
		"end":       end,
	})
}

// Year returns the record for a single school year.
func (h *APIHandler) Year(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid year",
		})
		return
	}

	record, ok := RecordForYear(year)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "No statistics recorded for that year",
		})
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// yearRangeFromQuery parses the start and end parameters, falling back to
// the dataset bounds. Both are clamped and ordered so start <= end holds.
func yearRangeFromQuery(r *http.Request) (int, int) {
	start, end := MinYear, MaxYear
	if v := r.URL.Query().Get("start"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			start = clampYear(year)
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			end = clampYear(year)
		}
	}
	if end < start {
		end = start
	}
	return start, end
}

func axisName(a Axis) string {
	if a == AxisRight {
		return "right"
	}
	return "left"
}

// respondJSON is a helper function to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}
