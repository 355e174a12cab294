package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MrSpecks/Website-Summarizer/internal/catalog"
	"github.com/MrSpecks/Website-Summarizer/internal/credentials"
	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
	"github.com/MrSpecks/Website-Summarizer/internal/usecase"
)

//go:embed static
var staticFiles embed.FS

// Response is the standard API response envelope.
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ModelsRequest is the request body for POST /api/models.
type ModelsRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key"`
}

// SummarizeRequest is the request body for POST /api/summarize.
type SummarizeRequest struct {
	URL         string `json:"url" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	Model       string `json:"model"`
	APIKey      string `json:"api_key"`
	EndpointURL string `json:"endpoint_url"`
}

// Server exposes the scrape-and-summarize pipeline over HTTP. All request
// state (key, model, endpoint) lives in the request body; nothing is shared
// between users except the read-mostly model cache.
type Server struct {
	addr     string
	registry *provider.Registry
	resolver *credentials.Resolver
	catalog  *catalog.Service
	pipeline *usecase.Pipeline
	logger   *slog.Logger

	engine *gin.Engine
	server *http.Server
}

// New wires the HTTP layer around the core components.
func New(addr string, registry *provider.Registry, resolver *credentials.Resolver, cat *catalog.Service, pipeline *usecase.Pipeline, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		addr:     addr,
		registry: registry,
		resolver: resolver,
		catalog:  cat,
		pipeline: pipeline,
		logger:   logger,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	static, _ := fs.Sub(staticFiles, "static")
	// http.FileServer redirects an explicit index.html to "./"; asking for
	// the directory root serves the page without the loop.
	s.engine.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})

	api := s.engine.Group("/api")
	api.GET("/providers", s.handleProviders)
	api.POST("/models", s.handleModels)
	api.POST("/summarize", s.handleSummarize)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{Addr: s.addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.logger != nil {
		s.logger.Info("http server listening", "addr", s.addr)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleProviders(c *gin.Context) {
	type providerInfo struct {
		Name         string `json:"name"`
		Remote       bool   `json:"remote"`
		DefaultModel string `json:"default_model"`
	}

	var out []providerInfo
	for _, name := range s.registry.Names() {
		profile, err := s.registry.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, providerInfo{
			Name:         profile.Name,
			Remote:       profile.Remote(),
			DefaultModel: profile.DefaultModel,
		})
	}

	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: gin.H{"providers": out}})
}

func (s *Server) handleModels(c *gin.Context) {
	var req ModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}

	profile, err := s.registry.Lookup(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}

	session := domain.Session{Provider: req.Provider, APIKey: req.APIKey}
	key, err := s.resolver.Resolve(profile, session)
	if err != nil {
		var missing *credentials.MissingKeyError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: missing.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
		return
	}

	models := s.catalog.Models(c.Request.Context(), profile, key)
	data := gin.H{
		"models":        models,
		"default_model": profile.DefaultModel,
	}
	if profile.Remote() && len(models) == 0 {
		data["warning"] = "Could not load models for " + profile.Name + ". Check API key validity."
	}

	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: data})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}

	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: "please enter a valid URL starting with http:// or https://",
		})
		return
	}

	session := domain.Session{
		Provider:    req.Provider,
		Model:       req.Model,
		APIKey:      req.APIKey,
		EndpointURL: req.EndpointURL,
	}

	outcome, err := s.pipeline.Run(c.Request.Context(), session, req.URL)
	if err != nil {
		s.renderPipelineError(c, err)
		return
	}

	if !outcome.Scrape.OK() {
		c.JSON(http.StatusBadGateway, Response{
			Code:    http.StatusBadGateway,
			Data:    gin.H{"scrape": outcome.Scrape},
			Message: outcome.Scrape.Error,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code: http.StatusOK,
		Data: gin.H{
			"title":   outcome.Scrape.Title,
			"text":    outcome.Scrape.Text,
			"summary": outcome.Summary,
		},
	})
}

func (s *Server) renderPipelineError(c *gin.Context, err error) {
	var missing *credentials.MissingKeyError
	var failed *usecase.SummarizationError

	switch {
	case errors.Is(err, provider.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.As(err, &missing):
		c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: missing.Error()})
	case errors.As(err, &failed):
		c.JSON(http.StatusBadGateway, Response{Code: http.StatusBadGateway, Message: failed.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
	}
}
