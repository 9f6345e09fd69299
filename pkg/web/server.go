// Package web exposes the queue and account state over a local HTTP API.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/scheduler"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

// Server is the control API. It reads and writes the same queue and state
// stores the scheduler uses; posting itself always goes through the
// scheduler's gate.
type Server struct {
	cfg   *config.Config
	q     *queue.Queue
	st    *store.Store
	sched *scheduler.Service

	router *gin.Engine
	http   *http.Server
}

// New builds the server and registers its routes.
func New(cfg *config.Config, q *queue.Queue, st *store.Store, sched *scheduler.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, q: q, st: st, sched: sched, router: router}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.handleHealth)
	api.GET("/accounts/:id", s.handleAccount)
	api.POST("/accounts/:id/cooldown", s.handleSetCooldown)
	api.DELETE("/accounts/:id/cooldown", s.handleClearCooldown)

	api.GET("/queue", s.handleListQueue)
	api.POST("/queue", s.handleAddPost)
	api.GET("/queue/:id", s.handleGetPost)
	api.DELETE("/queue/:id", s.handleDeletePost)
	api.POST("/queue/:id/publish", s.handlePublish)
}

// Start begins serving on addr. It returns once the listener fails or the
// server is shut down.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("control API listening on %s", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

type healthResponse struct {
	Account       string     `json:"account"`
	Platform      string     `json:"platform"`
	ActionsToday  int        `json:"actionsToday"`
	LikesToday    int        `json:"likesToday"`
	CooldownUntil *time.Time `json:"cooldownUntil,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	accountID := c.DefaultQuery("account", s.cfg.Account)

	actions, likes, err := s.st.DailyTotals(accountID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	until, err := s.st.CooldownUntil(accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, healthResponse{
		Account:       accountID,
		Platform:      s.cfg.App.Platform,
		ActionsToday:  actions,
		LikesToday:    likes,
		CooldownUntil: until,
	})
}

func (s *Server) handleAccount(c *gin.Context) {
	acct, err := s.st.GetAccount(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if acct == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, acct)
}

type cooldownRequest struct {
	MinDays  int    `json:"minDays"`
	MaxDays  int    `json:"maxDays"`
	Incident string `json:"incident"`
}

func (s *Server) handleSetCooldown(c *gin.Context) {
	var req cooldownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MinDays <= 0 {
		req.MinDays = s.cfg.Limits.CooldownDaysMin
	}
	if req.MaxDays < req.MinDays {
		req.MaxDays = s.cfg.Limits.CooldownDaysMax
	}

	until, err := s.st.SetCooldown(c.Param("id"), req.MinDays, req.MaxDays, req.Incident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cooldownUntil": until})
}

func (s *Server) handleClearCooldown(c *gin.Context) {
	if err := s.st.ClearCooldown(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListQueue(c *gin.Context) {
	filter := queue.ListFilter{
		AccountID: c.Query("account"),
		Status:    queue.PostStatus(c.Query("status")),
		MediaType: queue.MediaType(c.Query("mediaType")),
	}
	items, err := s.q.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": items, "count": len(items)})
}

type addPostRequest struct {
	AccountID   string          `json:"accountId"`
	MediaType   queue.MediaType `json:"mediaType"`
	FilePaths   []string        `json:"filePaths"`
	Caption     string          `json:"caption"`
	Hashtags    []string        `json:"hashtags"`
	ScheduledAt *time.Time      `json:"scheduledAt"`
}

func (s *Server) handleAddPost(c *gin.Context) {
	var req addPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AccountID == "" {
		req.AccountID = s.cfg.Account
	}

	item, err := s.q.Add(&queue.PostItem{
		AccountID:   req.AccountID,
		MediaType:   req.MediaType,
		FilePaths:   req.FilePaths,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := s.q.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := s.q.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handlePublish triggers an immediate posting attempt. The attempt can take
// minutes, so the handler blocks; concurrent publishes get a 409 from the
// scheduler's gate rather than piling up.
func (s *Server) handlePublish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.sched.PostNow(id); err != nil {
		switch {
		case errors.Is(err, core.ErrPostingBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "another posting attempt is in progress"})
		case errors.Is(err, core.ErrAccountCooldown):
			c.JSON(http.StatusConflict, gin.H{"error": "account is in cooldown"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	item, err := s.q.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}
