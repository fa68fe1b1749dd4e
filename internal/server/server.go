package server

import (
	"github.com/gin-gonic/gin"
	"github.com/studiokit/atelier/internal/audit"
	catalogdomain "github.com/studiokit/atelier/internal/catalog/domain"
	"github.com/studiokit/atelier/internal/config"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	intakedomain "github.com/studiokit/atelier/internal/intake/domain"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server owns the HTTP surface: public site endpoints, the rate-limited
// intake forms, and the API-key guarded admin CRM.
type Server struct {
	cfg      config.Config
	db       *gorm.DB
	log      *zap.Logger
	engine   *gin.Engine
	verifier TokenVerifier
	intakeRL *rateLimiter

	customerSvc customerdomain.Service
	paymentSvc  paymentdomain.Service
	intakeSvc   intakedomain.Service
	catalogSvc  catalogdomain.Service
	auditSvc    *audit.Service
}

type Params struct {
	fx.In

	Config   config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Engine   *gin.Engine
	Verifier TokenVerifier

	CustomerSvc customerdomain.Service
	PaymentSvc  paymentdomain.Service
	IntakeSvc   intakedomain.Service
	CatalogSvc  catalogdomain.Service
	AuditSvc    *audit.Service
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Config,
		db:          p.DB,
		log:         p.Log.Named("server"),
		engine:      p.Engine,
		verifier:    p.Verifier,
		intakeRL:    newRateLimiter(p.Config.IntakeRateLimit, p.Config.IntakeRateWindow),
		customerSvc: p.CustomerSvc,
		paymentSvc:  p.PaymentSvc,
		intakeSvc:   p.IntakeSvc,
		catalogSvc:  p.CatalogSvc,
		auditSvc:    p.AuditSvc,
	}
}

func (s *Server) audit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	var target *string
	if targetID != "" {
		target = &targetID
	}
	s.auditSvc.Record(c.Request.Context(), "admin", action, targetType, target, metadata)
}
