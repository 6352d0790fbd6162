package http

import (
	"encoding/hex"
	"net/http"

	"licentia/internal/config"
	"licentia/internal/infra/db"
	"licentia/internal/infra/keys/soft"
	"licentia/internal/infra/logsink"
	"licentia/internal/infra/memstore"
	"licentia/internal/infra/redisstore"
	"licentia/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	issuer      *usecase.IssueService
	revocations *usecase.RevocationService
	signer      usecase.Signer
	grants      usecase.GrantLister

	adminAPIKey string
	initErr     error
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, r: r}
	s.initDeps(store)
	s.routes()
	return s
}

type ServerDeps struct {
	Issuer      *usecase.IssueService
	Revocations *usecase.RevocationService
	Signer      usecase.Signer
	Grants      usecase.GrantLister
	AdminAPIKey string
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:         cfg,
		r:           r,
		issuer:      deps.Issuer,
		revocations: deps.Revocations,
		signer:      deps.Signer,
		grants:      deps.Grants,
		adminAPIKey: deps.AdminAPIKey,
	}
	if s.signer == nil && s.issuer != nil {
		s.signer = s.issuer.Signer
	}
	s.routes()
	return s
}

func (s *Server) initDeps(store *db.Store) {
	s.adminAPIKey = s.cfg.AdminAPIKey

	signer, err := soft.NewManagerFromConfig(s.cfg)
	if err != nil {
		s.initErr = err
		return
	}
	s.signer = signer

	var revocations usecase.RevocationStore
	var grants usecase.GrantStore
	var sink usecase.EventSink

	if store != nil && store.DB != nil {
		revocations = db.NewRevocationRepository(store.DB)
		grantRepo := db.NewGrantRepository(store.DB)
		grants = grantRepo
		s.grants = grantRepo
		sink = db.NewEventRepository(store.DB)
	} else if s.cfg.RedisAddr != "" {
		redisStore, err := redisstore.New(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB)
		if err != nil {
			s.initErr = err
			return
		}
		revocations = redisStore
	}
	mem := memstore.New()
	if revocations == nil {
		revocations = mem
	}
	if grants == nil {
		grants = mem
		s.grants = mem
	}
	if sink == nil {
		sink = logsink.New(nil)
	}

	events := usecase.NewEventEmitter(sink, nil)
	s.issuer = usecase.NewIssueService(signer, grants, events, nil, s.cfg.TrialDuration())
	s.revocations = usecase.NewRevocationService(revocations, events)
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		mode := "memory"
		if s.cfg.PostgresDSN != "" {
			mode = "db"
		} else if s.cfg.RedisAddr != "" {
			mode = "redis"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	api := s.r.Group("/api")
	{
		api.POST("/trial/issue", s.handleIssue)
		api.GET("/trial/check", s.handleCheck)
		api.POST("/trial/revoke", s.handleRevoke)
		api.POST("/trial/unrevoke", s.handleUnrevoke)
		api.GET("/trial/grants", s.handleListGrants)
		api.GET("/public-key", s.handlePublicKey)
	}
}

func (s *Server) Run() error {
	if s.initErr != nil {
		return s.initErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}

// PublicKeyHex exposes the verification key for operator bootstrap.
func (s *Server) PublicKeyHex() string {
	if s.signer == nil {
		return ""
	}
	return hex.EncodeToString(s.signer.PublicKey())
}
