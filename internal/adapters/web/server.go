// Package web exposes the dispatch services over a local HTTP API, the
// surface the browser UI consumes.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/runcard/internal/core/dispatch"
	"github.com/example/runcard/internal/ports/primary"
)

// Server wires the primary ports to HTTP routes.
type Server struct {
	dispatch primary.DispatchService
	status   primary.StatusService
	metrics  *Metrics
}

// NewServer creates a new Server.
func NewServer(dispatchSvc primary.DispatchService, statusSvc primary.StatusService, metrics *Metrics) *Server {
	return &Server{dispatch: dispatchSvc, status: statusSvc, metrics: metrics}
}

// Routes registers all API routes on e.
func (s *Server) Routes(e *echo.Echo) {
	e.GET("/api/incidents", s.handleIncidents)
	e.GET("/api/recommend", s.handleRecommend)
	e.GET("/api/units", s.handleUnits)
	e.GET("/api/status", s.handleStatusList)
	e.POST("/api/status", s.handleStatusSet)
	e.POST("/api/mutualaid", s.handleMutualAid)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
}

func (s *Server) handleIncidents(c echo.Context) error {
	types, err := s.dispatch.ListIncidentTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

func (s *Server) handleRecommend(c echo.Context) error {
	zone := c.QueryParam("zone")
	incident := c.QueryParam("incident")
	if zone == "" || incident == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "zone and incident are required")
	}

	start := time.Now()
	rec, err := s.dispatch.Recommend(c.Request().Context(), primary.RecommendRequest{
		Zone:     zone,
		Incident: incident,
	})
	if err != nil {
		s.metrics.ObserveRecommend(incident, "error", time.Since(start).Seconds())
		if errors.Is(err, dispatch.ErrNoPlan) || errors.Is(err, dispatch.ErrNoRunCard) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	s.metrics.ObserveRecommend(incident, "ok", time.Since(start).Seconds())
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleUnits(c echo.Context) error {
	units, err := s.dispatch.ListUnits(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, units)
}

func (s *Server) handleStatusList(c echo.Context) error {
	overrides, err := s.status.ListStatusOverrides(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overrides)
}

type statusEdit struct {
	Unit   string `json:"unit"`
	Status string `json:"status"`
	Clear  bool   `json:"clear"`
}

func (s *Server) handleStatusSet(c echo.Context) error {
	var edit statusEdit
	if err := c.Bind(&edit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status edit")
	}
	ctx := c.Request().Context()

	var err error
	if edit.Clear {
		err = s.status.ClearStatus(ctx, edit.Unit)
	} else {
		err = s.status.SetStatus(ctx, edit.Unit, edit.Status)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.metrics.ObserveEdit("status")
	return c.NoContent(http.StatusNoContent)
}

type mutualAidEdit struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleMutualAid(c echo.Context) error {
	var edit mutualAidEdit
	if err := c.Bind(&edit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mutual aid edit")
	}
	if err := s.status.SetMutualAid(c.Request().Context(), edit.Enabled); err != nil {
		return err
	}
	s.metrics.ObserveEdit("mutualaid")
	return c.NoContent(http.StatusNoContent)
}
