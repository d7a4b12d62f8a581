package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simlm/adapters/stats/ols"
	"simlm/domain/core"
	"simlm/domain/frame"
	"simlm/domain/model"
	"simlm/domain/run"
	"simlm/domain/stats"
	"simlm/internal"
	"simlm/internal/report"
	"simlm/internal/sim"
	"simlm/internal/study"
	"simlm/ports"
)

// Server exposes the simulator over a JSON API
type Server struct {
	router *gin.Engine
	engine *sim.Engine
	fitter *ols.Fitter
	study  *study.Study
	ledger ports.RunLedger // optional; nil disables the run ledger
	log    *internal.Logger
}

// NewServer creates the API server and registers its routes
func NewServer(engine *sim.Engine, fitter *ols.Fitter, ledger ports.RunLedger) *Server {
	s := &Server{
		router: gin.Default(),
		engine: engine,
		fitter: fitter,
		study:  study.New(engine, fitter),
		ledger: ledger,
		log:    internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	api := s.router.Group("/api")
	{
		api.POST("/simulate", s.handleSimulate)
		api.POST("/study", s.handleStudy)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	s.log.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

// Router returns the underlying gin engine (used by tests)
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSimulate runs one scenario and returns the simulated dataset
func (s *Server) handleSimulate(c *gin.Context) {
	var scenario model.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario payload", "detail": err.Error()})
		return
	}

	f, err := s.engine.Run(scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Fit the declared model back to the dataset so the caller can compare
	// recovered coefficients against the configured truth.
	var fitPayload interface{}
	y, _ := f.Numeric(scenario.ResponseKey())
	cols, names, err := sim.Design(f, scenario, scenario.Terms)
	if err == nil && len(cols) > 0 {
		if fit, ferr := s.fitter.Fit(y, cols, names); ferr == nil {
			fitPayload = fit
			s.recordRun(c, scenario, f, fit)
		} else {
			s.log.Warn("recovery fit failed: %v", ferr)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":  f.RunID,
		"seed":    f.Seed,
		"n":       f.N,
		"columns": f.Columns,
		"fit":     fitPayload,
	})
}

type studyRequest struct {
	Scenario    model.Scenario `json:"scenario"`
	Replicates  int            `json:"replicates"`
	Concurrency int            `json:"concurrency"`
}

// handleStudy runs a repeated-simulation recovery study
func (s *Server) handleStudy(c *gin.Context) {
	var req studyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study payload", "detail": err.Error()})
		return
	}

	rep, err := s.study.Run(c.Request.Context(), study.Config{
		Scenario:    req.Scenario,
		Replicates:  req.Replicates,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(rep))
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run ledger not configured"})
		return
	}
	runs, err := s.ledger.ListRecent(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run ledger not configured"})
		return
	}
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := s.ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// recordRun persists the run manifest when a ledger is configured. Failures
// are logged, never surfaced; the simulation result does not depend on them.
func (s *Server) recordRun(c *gin.Context, scenario model.Scenario, f *frame.Frame, fit *stats.FitResult) {
	if s.ledger == nil {
		return
	}
	m, err := run.NewManifest(scenario, f, fit)
	if err != nil {
		s.log.Warn("failed to build run manifest: %v", err)
		return
	}
	if err := s.ledger.Create(c.Request.Context(), m); err != nil {
		s.log.Warn("failed to record run %s: %v", m.RunID, err)
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	if core.IsValidationError(err) || core.IsNotFoundError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
