package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	Backend       domain.Backend
	FavoritesRepo domain.FavoritesRepository
	PollingConfig config.PollingConfig
	KeyConfig     config.KeyConfig
}

func NewService(params Params) (domain.Service, error) {
	svc := newService(params.Backend, params.FavoritesRepo, params.PollingConfig, params.KeyConfig)

	if err := prometheus.Register(svc.collector); err != nil {
		return nil, fmt.Errorf("failed to register metric collector: %v", err)
	}

	favorites, err := params.FavoritesRepo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %v", err)
	}
	svc.setFavorites(favorites)

	return svc, nil
}

// newService wires the service without touching the global prometheus
// registry; tests construct through here.
func newService(backend domain.Backend, favRepo domain.FavoritesRepository, pollCfg config.PollingConfig, keyCfg config.KeyConfig) *Service {
	svc := &Service{
		backend:              backend,
		favRepo:              favRepo,
		filter:               domain.DefaultFilter(),
		sort:                 domain.DefaultSort(),
		selection:            map[int32]struct{}{},
		favSet:               map[uint16]struct{}{},
		settleDelay:          time.Duration(pollCfg.SettleDelayMsec) * time.Millisecond,
		containerSettleDelay: time.Duration(pollCfg.ContainerSettleDelayMsec) * time.Millisecond,
		jwtSecret:            []byte(keyCfg.JWTSecret),
		operatorBcrypt:       keyCfg.OperatorPasswordBcrypt,
		tokenTTL:             time.Duration(keyCfg.TokenTTLHours) * time.Hour,
		collector:            NewMetricCollector(),
	}
	svc.pollInterval.Store(pollCfg.IntervalMsec)
	return svc
}

type Service struct {
	backend domain.Backend
	favRepo domain.FavoritesRepository

	// snapshot holds *domain.Snapshot; nil until the first successful
	// fetch. Replaced atomically, never merged.
	snapshot     atomic.Value
	fetchCount   atomic.Uint64
	lastFetchErr atomic.Value

	viewMu sync.RWMutex
	filter domain.FilterSpec
	sort   domain.SortSpec

	selMu     sync.Mutex
	selection map[int32]struct{}

	auditMu sync.Mutex
	audit   []*domain.AuditEntry

	favMu     sync.Mutex
	favorites []uint16
	favSet    map[uint16]struct{}

	pollMu       sync.Mutex
	polling      bool
	pollStop     chan struct{}
	pollInterval atomic.Int64

	settleDelay          time.Duration
	containerSettleDelay time.Duration

	jwtSecret      []byte
	operatorBcrypt string
	tokenTTL       time.Duration

	collector *MetricCollector
}

var _ domain.Service = (*Service)(nil)

func (svc *Service) Filter() domain.FilterSpec {
	svc.viewMu.RLock()
	defer svc.viewMu.RUnlock()
	return svc.filter
}

// SetFilter stores the new spec. Widening or narrowing the backend scan
// scope changes what the backend returns, so flipping IncludeNonListening
// triggers one immediate reconciliation fetch.
func (svc *Service) SetFilter(ctx context.Context, spec domain.FilterSpec) {
	svc.viewMu.Lock()
	scopeChanged := spec.IncludeNonListening != svc.filter.IncludeNonListening
	svc.filter = spec
	svc.viewMu.Unlock()

	if scopeChanged {
		go svc.Refresh(context.WithoutCancel(ctx))
	}
}

func (svc *Service) Sort() domain.SortSpec {
	svc.viewMu.RLock()
	defer svc.viewMu.RUnlock()
	return svc.sort
}

func (svc *Service) SetSort(spec domain.SortSpec) {
	svc.viewMu.Lock()
	defer svc.viewMu.Unlock()
	svc.sort = spec
}

func (svc *Service) FindPort(ctx context.Context, port int) ([]*domain.ProcessRecord, error) {
	if err := domain.ValidatePort(port); err != nil {
		return nil, err
	}
	return svc.backend.FindPort(ctx, uint16(port))
}

func (svc *Service) Containers(ctx context.Context) ([]*domain.ContainerInfo, error) {
	return svc.backend.GetContainers(ctx)
}
