// Package server exposes the question answering pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/legalchat/legalchat/internal/pipeline"
	"github.com/legalchat/legalchat/internal/session"
)

// Server handles the HTTP API.
type Server struct {
	pipeline *pipeline.Pipeline
	store    session.Store
	logger   *zap.Logger
}

// New constructs a Server.
func New(p *pipeline.Pipeline, store session.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{pipeline: p, store: store, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.POST("/ask", s.handleAsk)
	r.GET("/sessions", s.handleListSessions)
	r.GET("/sessions/:id/history", s.handleHistory)
	r.DELETE("/sessions/:id", s.handleDeleteSession)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type askRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"detail": "query is required",
		})
		return
	}

	resp, err := s.pipeline.Ask(c.Request.Context(), req.Query, req.SessionID)
	if err != nil {
		s.logger.Error("ask failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"detail": "Error processing request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"session_id": resp.SessionID,
		"answer":     resp.Answer,
		"source":     resp.Source,
		"context":    resp.Context,
		"history":    resp.History,
	})
}

func (s *Server) handleListSessions(c *gin.Context) {
	infos, err := s.store.ListSessions(c.Request.Context())
	if err != nil {
		s.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	if infos == nil {
		infos = []session.Info{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "sessions": infos})
}

func (s *Server) handleHistory(c *gin.Context) {
	sessionID := c.Param("id")
	history, err := s.store.History(c.Request.Context(), sessionID)
	if err != nil {
		s.logger.Error("history read failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "history": history})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := s.store.DeleteHistory(c.Request.Context(), sessionID); err != nil {
		s.logger.Error("delete history failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	if err := s.store.DeleteSession(c.Request.Context(), sessionID); err != nil {
		s.logger.Error("delete session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
