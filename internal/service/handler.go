// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wneessen/go-tripfare/internal/geocode"
	"github.com/wneessen/go-tripfare/internal/logger"
	"github.com/wneessen/go-tripfare/internal/routing"
	"github.com/wneessen/go-tripfare/internal/trip"
)

const requestIDHeader = "X-Request-ID"

// indexData is the template payload of the estimate page.
type indexData struct {
	StartAddress string
	EndAddress   string
	Mode         string
	Result       *trip.Result
	Error        string
}

// handleIndex renders the empty trip form.
func (s *Service) handleIndex(c *gin.Context) {
	c.HTML(stdhttp.StatusOK, "index.html.tmpl", indexData{Mode: string(routing.ModeCar)})
}

// handleEstimate computes a trip estimate from the submitted form. Pipeline
// failures render as a retryable message on the form, never as a server error.
func (s *Service) handleEstimate(c *gin.Context) {
	data := indexData{
		StartAddress: strings.TrimSpace(c.PostForm("start_address")),
		EndAddress:   strings.TrimSpace(c.PostForm("end_address")),
		Mode:         strings.TrimSpace(c.PostForm("mode")),
	}
	if data.Mode == "" {
		data.Mode = string(routing.ModeCar)
	}

	if data.StartAddress == "" || data.EndAddress == "" {
		data.Error = s.localizer.Get("Please enter both start and dropoff addresses.")
		c.HTML(stdhttp.StatusOK, "index.html.tmpl", data)
		return
	}

	result, err := s.planner.ComputeTrip(c.Request.Context(), data.StartAddress, data.EndAddress, data.Mode)
	if err != nil {
		s.logger.Warn("trip estimation failed",
			slog.String("request_id", c.GetString(requestIDHeader)), logger.Err(err))
		data.Error = s.userMessage(err)
		c.HTML(stdhttp.StatusOK, "index.html.tmpl", data)
		return
	}

	data.Result = &result
	c.HTML(stdhttp.StatusOK, "index.html.tmpl", data)
}

// handleHealth reports service liveness.
func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(stdhttp.StatusOK, gin.H{"status": "ok"})
}

// userMessage maps pipeline failures onto localized, user-presentable messages.
// The typed failure detail stays visible so users can correct their input.
func (s *Service) userMessage(err error) string {
	var geocodeErr *geocode.GeocodeError
	if errors.As(err, &geocodeErr) {
		return fmt.Sprintf("%s: %s", s.localizer.Get("No results found for address"), geocodeErr.Address)
	}
	var routingErr *routing.RoutingError
	if errors.As(err, &routingErr) {
		return s.localizer.Get("No route found between the provided locations. Please try again.")
	}
	return err.Error()
}

// requestID tags every request with a UUID for log correlation.
func (s *Service) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one structured log line per request.
func (s *Service) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.logger.Info("request handled",
			slog.String("request_id", c.GetString(requestIDHeader)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(begin)),
		)
	}
}

// templateFuncs provides the formatting helpers of the estimate page. Number
// formatting lives here, not in the pipeline.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"km":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"min": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"rm":  func(v float64) string { return fmt.Sprintf("RM %.2f", v) },
		"m":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
}
