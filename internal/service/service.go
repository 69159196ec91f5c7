// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service wires the trip pipeline together and serves the web front-end.
package service

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vorlif/spreak"

	"github.com/wneessen/go-tripfare/internal/address"
	"github.com/wneessen/go-tripfare/internal/config"
	"github.com/wneessen/go-tripfare/internal/fare"
	"github.com/wneessen/go-tripfare/internal/logger"
	"github.com/wneessen/go-tripfare/internal/trip"
)

//go:embed templates/*
var templates embed.FS

const shutdownTimeout = time.Second * 10

// Service is the tripfare web service.
type Service struct {
	config    *config.Config
	logger    *logger.Logger
	localizer *spreak.Localizer
	planner   *trip.Planner
}

// New initializes the Service: it builds the address normalizer, the geocoding and
// routing provider chains and the fare calculator from the given configuration.
func New(conf *config.Config, log *logger.Logger, localizer *spreak.Localizer) (*Service, error) {
	s := &Service{
		config:    conf,
		logger:    log,
		localizer: localizer,
	}

	normalizer := address.New(conf.Address.DefaultCountry, nil, nil)
	geocoder := s.selectGeocodeProviders(normalizer)
	router, err := s.selectRouters()
	if err != nil {
		return nil, fmt.Errorf("failed to select routing providers: %w", err)
	}

	fares := fare.Calculator{
		Base:      conf.Fare.Base,
		PerKm:     conf.Fare.PerKm,
		PerMinute: conf.Fare.PerMinute,
	}
	s.planner = trip.New(geocoder, router, fares, log)

	return s, nil
}

// engine builds the gin engine with all middlewares, templates and routes.
func (s *Service) engine() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestID(), s.accessLog())

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.handleIndex)
	engine.POST("/", s.handleEstimate)
	engine.GET("/healthz", s.handleHealth)

	return engine, nil
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func (s *Service) Run(ctx context.Context) error {
	engine, err := s.engine()
	if err != nil {
		return err
	}

	server := &stdhttp.Server{
		Addr:              s.config.Listen,
		Handler:           engine,
		ReadHeaderTimeout: time.Second * 5,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	return nil
}
