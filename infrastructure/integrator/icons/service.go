package icons

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/iconclient"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// IconIntegrator resolve ícones decorativos para os destaques do painel.
// Nunca retorna erro: qualquer falha resulta em "" (sem ícone).
type IconIntegrator interface {
	GetIconURL(ctx context.Context, term string) string
}

// defaultLookupTimeout limita a busca compartilhada quando ICONS_TIMEOUT não é informado
const defaultLookupTimeout = 2 * time.Second

type IconService struct {
	enabled bool
	timeout time.Duration
	Client  iconclient.Client
	metrics *metrics.Registry

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]string
}

func New(cfg *config.Config, client iconclient.Client, m *metrics.Registry) IconIntegrator {
	timeout := cfg.Icons.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	return &IconService{
		enabled: cfg.Icons.Enabled && client != nil,
		timeout: timeout,
		Client:  client,
		metrics: m,
		cache:   make(map[string]string),
	}
}

func (s *IconService) GetIconURL(ctx context.Context, term string) string {
	key := strings.ToLower(strings.TrimSpace(term))
	if !s.enabled || key == "" {
		s.metrics.RecordIconLookup(metrics.ResultDisabled)
		return ""
	}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.metrics.RecordIconLookup(metrics.ResultHit)
		return cached
	}

	// Buscas concorrentes do mesmo termo compartilham uma única requisição, com
	// prazo próprio: o cancelamento de quem chegou primeiro não afeta os demais
	result := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		icon, err := s.Client.GetIcon(fetchCtx, key)
		if err != nil {
			return "", err
		}
		if icon == nil {
			return "", nil
		}

		s.mu.Lock()
		s.cache[key] = icon.URL
		s.mu.Unlock()

		return icon.URL, nil
	})

	select {
	case <-ctx.Done():
		log.ForContext(ctx).WithField("icon_term", key).Debug("icons: tempo esgotado aguardando ícone")
		s.metrics.RecordIconLookup(metrics.ResultError)
		return ""
	case res := <-result:
		if res.Err != nil {
			log.ForContext(ctx).WithError(res.Err).WithField("icon_term", key).Debug("icons: falha ao buscar ícone")
			s.metrics.RecordIconLookup(metrics.ResultError)
			return ""
		}

		s.metrics.RecordIconLookup(metrics.ResultMiss)
		return res.Val.(string)
	}
}
