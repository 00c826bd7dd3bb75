package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"

	accesshandler "datasentinel/internal/access/handler"
	accessmetrics "datasentinel/internal/access/metrics"
	accessservice "datasentinel/internal/access/service"
	accessstore "datasentinel/internal/access/store"
	"datasentinel/internal/admin"
	alerthandler "datasentinel/internal/alert/handler"
	alertmetrics "datasentinel/internal/alert/metrics"
	alertservice "datasentinel/internal/alert/service"
	alertstore "datasentinel/internal/alert/store"
	anchorhandler "datasentinel/internal/anchor/handler"
	anchormetrics "datasentinel/internal/anchor/metrics"
	"datasentinel/internal/anchor/registry"
	anchorservice "datasentinel/internal/anchor/service"
	"datasentinel/internal/audit"
	"datasentinel/internal/audit/mirror"
	consenthandler "datasentinel/internal/consent/handler"
	consentmetrics "datasentinel/internal/consent/metrics"
	consentservice "datasentinel/internal/consent/service"
	consentstore "datasentinel/internal/consent/store"
	"datasentinel/internal/honeytoken/generator"
	hthandler "datasentinel/internal/honeytoken/handler"
	htmetrics "datasentinel/internal/honeytoken/metrics"
	htservice "datasentinel/internal/honeytoken/service"
	htstore "datasentinel/internal/honeytoken/store"
	"datasentinel/internal/platform/config"
	"datasentinel/internal/platform/database"
	"datasentinel/internal/platform/health"
	"datasentinel/internal/platform/kafka/producer"
	"datasentinel/internal/platform/redis"
	riskhandler "datasentinel/internal/risk/handler"
	riskmetrics "datasentinel/internal/risk/metrics"
	riskservice "datasentinel/internal/risk/service"
	riskstore "datasentinel/internal/risk/store"
	httptransport "datasentinel/internal/transport/http"
	traphandler "datasentinel/internal/trap/handler"
	trapmetrics "datasentinel/internal/trap/metrics"
	trapservice "datasentinel/internal/trap/service"
	"datasentinel/internal/watermark/codec"
	wmhandler "datasentinel/internal/watermark/handler"
	wmmetrics "datasentinel/internal/watermark/metrics"
	wmservice "datasentinel/internal/watermark/service"
	wmstore "datasentinel/internal/watermark/store"
	"datasentinel/pkg/platform/circuit"
	platformsync "datasentinel/pkg/platform/sync"
	"datasentinel/pkg/platform/tracer"
)

// infrastructure holds the optional external backends. Each is nil when its
// URL is unset, and the matching module falls back to memory.
type infrastructure struct {
	db       *database.Pool
	redis    *redis.Client
	producer *producer.Producer
}

func buildInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{}

	db, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	if db != nil {
		if err := db.Migrate(ctx); err != nil {
			db.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		infra.db = db
		log.Info("postgres stores enabled")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		infra.Close(log)
		return nil, err
	}
	if rc != nil {
		infra.redis = rc
		log.Info("redis risk and alert stores enabled")
	}

	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(producer.Config{
			Brokers:         cfg.Kafka.Brokers,
			Acks:            cfg.Kafka.Acks,
			Retries:         cfg.Kafka.Retries,
			DeliveryTimeout: cfg.Kafka.DeliveryTimeout,
		}, log)
		if err != nil {
			infra.Close(log)
			return nil, err
		}
		infra.producer = p
		log.Info("kafka audit mirror enabled", "topic", cfg.Kafka.AuditTopic)
	}
	return infra, nil
}

func (i *infrastructure) RegisterChecks(h *health.Handler) {
	if i.db != nil {
		h.RegisterCheck("postgres", i.db.Health)
	}
	if i.redis != nil {
		h.RegisterCheck("redis", i.redis.Health)
	}
	if i.producer != nil {
		h.RegisterCheck("kafka", i.producer.Healthy)
	}
}

func (i *infrastructure) Close(log *slog.Logger) {
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			log.Error("failed to close kafka producer", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("failed to close redis client", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
}

type modules struct {
	audit       *audit.Publisher
	honeytokens *htservice.Service
	watermarks  *wmservice.Service
	consent     *consentservice.Service
	risk        *riskservice.Engine
	alerts      *alertservice.Service
	access      *accessservice.Service
	trap        *trapservice.Service
	anchor      *anchorservice.Service
	admin       *admin.Service
	logger      *slog.Logger
}

func buildModules(cfg config.Server, infra *infrastructure, log *slog.Logger) (*modules, error) {
	m := &modules{logger: log}
	trace := tracer.NewOTel()

	var auditStore audit.Store = audit.NewInMemoryStore()
	if infra.db != nil {
		auditStore = audit.NewPostgresStore(infra.db.DB())
	}
	auditOpts := []audit.PublisherOption{audit.WithLogger(log)}
	if infra.producer != nil {
		auditOpts = append(auditOpts, audit.WithMirror(
			mirror.NewKafka(infra.producer, cfg.Kafka.AuditTopic),
			audit.KindTrapHit, audit.KindDecodeAttempt, audit.KindAccessDecision, audit.KindRestriction,
		))
	}
	m.audit = audit.NewPublisher(auditStore, auditOpts...)

	var htStore htservice.Store = htstore.New()
	var wmStore wmservice.Store = wmstore.New()
	var accessStore accessservice.Store = accessstore.New()
	consentMetrics := consentmetrics.New()
	var consentStore consentservice.Store = consentstore.New(platformsync.WithWaitObserver(consentMetrics.ObserveLockWait))
	if infra.db != nil {
		htStore = htstore.NewPostgres(infra.db.DB())
		wmStore = wmstore.NewPostgres(infra.db.DB())
		accessStore = accessstore.NewPostgres(infra.db.DB())
		consentStore = consentstore.NewPostgres(infra.db.DB())
	}
	riskMetrics := riskmetrics.New()
	var riskStore riskservice.Store = riskstore.New(platformsync.WithWaitObserver(riskMetrics.ObserveLockWait))
	var alertStore alertservice.Store = alertstore.New()
	if infra.redis != nil {
		riskStore = riskstore.NewRedis(infra.redis.Client)
		alertStore = alertstore.NewRedis(infra.redis.Client, alertstore.DefaultRetention)
	}

	m.honeytokens = htservice.New(htStore, generator.New(generator.WithDomain(cfg.Trap.Domain)),
		htservice.WithMetrics(htmetrics.New()),
		htservice.WithLogger(log),
	)

	wmCodec, err := codec.New(cfg.Watermark.Secret, cfg.Watermark.Length)
	if err != nil {
		return nil, fmt.Errorf("watermark codec: %w", err)
	}
	m.watermarks = wmservice.New(wmStore, wmCodec, m.audit,
		wmservice.WithMetrics(wmmetrics.New()),
		wmservice.WithLogger(log),
	)

	m.consent = consentservice.New(consentStore,
		consentservice.WithMetrics(consentMetrics),
		consentservice.WithLogger(log),
	)

	m.alerts = alertservice.New(alertStore,
		alertservice.WithMetrics(alertmetrics.New()),
		alertservice.WithLogger(log),
	)
	policy := riskservice.DefaultTraitPolicy()
	policy.RepeatWindow = cfg.Risk.RepeatWindow
	policy.RepeatCount = cfg.Risk.RepeatCount
	policy.VelocityInterval = cfg.Risk.VelocityInterval
	m.risk = riskservice.New(riskStore,
		riskservice.WithEscalator(m.alerts),
		riskservice.WithAuditor(m.audit),
		riskservice.WithMetrics(riskMetrics),
		riskservice.WithLogger(log),
		riskservice.WithTraitPolicy(policy),
		riskservice.WithThreshold(cfg.Risk.EscalationThreshold),
	)
	m.alerts.SetRiskReader(m.risk)

	m.access = accessservice.New(accessStore, m.consent, m.risk, m.audit,
		accessservice.WithAlerter(m.alerts),
		accessservice.WithMetrics(accessmetrics.New()),
		accessservice.WithLogger(log),
	)

	m.trap = trapservice.New(m.honeytokens, m.watermarks, m.risk, m.audit,
		trapservice.WithAlerter(m.alerts),
		trapservice.WithTracer(trace),
		trapservice.WithMetrics(trapmetrics.New()),
		trapservice.WithLogger(log),
		trapservice.WithRiskDelta(cfg.Risk.TrapDelta),
		trapservice.WithHitProbability(cfg.Trap.SimulatedProbability),
	)

	anchorMetrics := anchormetrics.New()
	m.anchor = anchorservice.New(m.honeytokens, buildRegistry(cfg, anchorMetrics, log),
		anchorservice.WithTracer(trace),
		anchorservice.WithMetrics(anchorMetrics),
		anchorservice.WithLogger(log),
	)

	m.admin = admin.NewService(m.audit, m.risk, m.access, m.honeytokens)
	return m, nil
}

func buildRegistry(cfg config.Server, m *anchormetrics.Metrics, log *slog.Logger) anchorservice.Registry {
	if cfg.Registry.URL == "" {
		log.Info("REGISTRY_URL not set; honeytoken anchors are kept in memory")
		return registry.NewInMemory()
	}
	breaker := circuit.New("anchor-registry",
		circuit.WithStateChange(func(name string, from, to circuit.State) {
			m.SetBreakerState(name, int(to))
			log.Warn("registry circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		}),
	)
	return registry.NewHTTPClient(registry.Config{
		BaseURL: cfg.Registry.URL,
		APIKey:  cfg.Registry.APIKey,
		Timeout: cfg.Registry.Timeout,
		Backoff: registry.BackoffConfig{MaxRetries: cfg.Registry.MaxRetries},
		Breaker: breaker,
	})
}

func (m *modules) routes(healthHandler *health.Handler) httptransport.Routes {
	accessH := accesshandler.New(m.access, m.logger)
	trapH := traphandler.New(m.trap, m.logger)
	riskH := riskhandler.New(m.risk, m.logger)

	return httptransport.Routes{
		Open: []httptransport.Registrar{healthHandler},
		API: []httptransport.Registrar{
			hthandler.New(m.honeytokens, m.logger),
			wmhandler.New(m.watermarks, m.logger),
			consenthandler.New(m.consent, m.logger),
			riskH,
			trapH,
			accessH,
			alerthandler.New(m.alerts, m.logger),
			anchorhandler.New(m.anchor, m.logger),
		},
		Admin: []func(chi.Router){
			accessH.RegisterAdmin,
			trapH.RegisterAdmin,
			riskH.RegisterAdmin,
			admin.New(m.admin, m.logger).Register,
		},
	}
}
