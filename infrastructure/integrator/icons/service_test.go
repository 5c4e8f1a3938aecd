package icons

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	icondomain "github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/domain"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func enabledConfig() *config.Config {
	return &config.Config{Icons: config.Icons{Enabled: true, BaseURL: "http://icons.local", Timeout: time.Second}}
}

func TestIconService_GetIconURL(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name     string
		term     string
		setup    func(client *mocks.MockClient)
		expected string
	}{
		{
			name: "ícone encontrado",
			term: "São Paulo",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetIcon(gomock.Any(), "são paulo").
					Return(&icondomain.Icon{URL: "https://cdn.local/sp.png"}, nil)
			},
			expected: "https://cdn.local/sp.png",
		},
		{
			name: "falha no serviço retorna vazio",
			term: "A",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetIcon(gomock.Any(), "a").Return(nil, errors.New("timeout"))
			},
			expected: "",
		},
		{
			name: "resposta nula retorna vazio",
			term: "A",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetIcon(gomock.Any(), "a").Return(nil, nil)
			},
			expected: "",
		},
		{
			name:     "termo vazio não consulta o serviço",
			term:     "   ",
			setup:    func(client *mocks.MockClient) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			service := New(enabledConfig(), client, metrics.New())

			assert.Equal(t, tt.expected, service.GetIconURL(context.Background(), tt.term))
		})
	}
}

func TestIconService_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	m := metrics.New()

	service := New(&config.Config{}, client, m)

	assert.Equal(t, "", service.GetIconURL(context.Background(), "A"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IconLookups.WithLabelValues(metrics.ResultDisabled)))
}

func TestIconService_CachesSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	m := metrics.New()

	client.EXPECT().GetIcon(gomock.Any(), "a").
		Return(&icondomain.Icon{URL: "https://cdn.local/a.png"}, nil).
		Times(1)

	service := New(enabledConfig(), client, m)

	assert.Equal(t, "https://cdn.local/a.png", service.GetIconURL(context.Background(), "A"))
	assert.Equal(t, "https://cdn.local/a.png", service.GetIconURL(context.Background(), "a"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IconLookups.WithLabelValues(metrics.ResultHit)))
}

func TestIconService_CollapsesConcurrentLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	release := make(chan struct{})
	client.EXPECT().GetIcon(gomock.Any(), "a").
		DoAndReturn(func(ctx context.Context, term string) (*icondomain.Icon, error) {
			<-release
			return &icondomain.Icon{URL: "https://cdn.local/a.png"}, nil
		}).
		MaxTimes(1)

	service := New(enabledConfig(), client, nil)

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = service.GetIconURL(context.Background(), "a")
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, url := range results {
		assert.Equal(t, "https://cdn.local/a.png", url)
	}
}

func TestIconService_ContextDeadline(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	release := make(chan struct{})
	defer close(release)

	client.EXPECT().GetIcon(gomock.Any(), "a").
		DoAndReturn(func(ctx context.Context, term string) (*icondomain.Icon, error) {
			<-release
			return nil, errors.New("liberado")
		})

	service := New(enabledConfig(), client, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Equal(t, "", service.GetIconURL(ctx, "a"))
}

func TestIconService_SharedLookupOutlivesFirstCaller(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().GetIcon(gomock.Any(), "a").
		DoAndReturn(func(ctx context.Context, term string) (*icondomain.Icon, error) {
			close(started)
			select {
			case <-release:
				return &icondomain.Icon{URL: "https://cdn.local/a.png"}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}).
		Times(1)

	service := New(enabledConfig(), client, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan string)
	go func() {
		firstDone <- service.GetIconURL(firstCtx, "a")
	}()
	<-started

	secondDone := make(chan string)
	go func() {
		secondDone <- service.GetIconURL(context.Background(), "a")
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.Equal(t, "", <-firstDone)

	close(release)
	assert.Equal(t, "https://cdn.local/a.png", <-secondDone)
}

func TestIconService_SharedLookupUsesConfiguredTimeout(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().GetIcon(gomock.Any(), "a").
		DoAndReturn(func(ctx context.Context, term string) (*icondomain.Icon, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	cfg := enabledConfig()
	cfg.Icons.Timeout = 20 * time.Millisecond
	service := New(cfg, client, nil)

	assert.Equal(t, "", service.GetIconURL(context.Background(), "a"))
}
