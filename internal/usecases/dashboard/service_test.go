package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	iconmocks "github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/mocks"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/testutil"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Upload:   config.Upload{MaxSizeMB: 1, SheetName: ingesting.DefaultSheetName, SheetMode: "strict"},
		Pipeline: config.Pipeline{TopN: 5, PreviewRows: 5},
		Icons:    config.Icons{Timeout: 100 * time.Millisecond},
	}
}

func newService(repo repository.DatasetRepository, iconIntegrator *iconmocks.MockIconIntegrator) *DashboardService {
	var svc Service
	if iconIntegrator == nil {
		svc = NewDashboardService(testConfig(), repo, nil, metrics.New())
	} else {
		svc = NewDashboardService(testConfig(), repo, iconIntegrator, metrics.New())
	}
	s := svc.(*DashboardService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func salesWorkbook(t *testing.T, sheetName string) []byte {
	t.Helper()
	data, err := testutil.Workbook(testutil.Sheet{Name: sheetName, Rows: testutil.SalesRows()})
	require.NoError(t, err)
	return data
}

func TestDashboardService_Upload(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name         string
		sheetName    string
		mode         string
		setup        func(repo *mocks.MockDatasetRepository)
		expectedCode string
		validate     func(t *testing.T, dataset *domain.Dataset)
	}{
		{
			name:      "Planilha válida - deve criar dataset",
			sheetName: "Sample Data",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().GetByFingerprint(gomock.Any()).Return(nil, nil)
				repo.EXPECT().Save(gomock.Any()).DoAndReturn(func(d *domain.Dataset) error {
					assert.Len(t, d.ID, 6)
					assert.Len(t, d.Fingerprint, 64)
					return nil
				})
				repo.EXPECT().Count().Return(1)
			},
			validate: func(t *testing.T, dataset *domain.Dataset) {
				assert.Equal(t, "vendas.xlsx", dataset.FileName)
				assert.Equal(t, "Sample Data", dataset.Sheet)
				assert.Equal(t, 3, dataset.Table.Len())
				assert.Equal(t, fixedNow, dataset.UploadedAt)
				assert.Equal(t, fixedNow, dataset.LastAccessedAt)
			},
		},
		{
			name:      "Arquivo repetido - deve reaproveitar dataset existente",
			sheetName: "Sample Data",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().GetByFingerprint(gomock.Any()).
					Return(&domain.Dataset{ID: "abc123", FileName: "antigo.xlsx"}, nil)
				repo.EXPECT().Touch("abc123", fixedNow).Return(nil)
			},
			validate: func(t *testing.T, dataset *domain.Dataset) {
				assert.Equal(t, "abc123", dataset.ID)
				assert.Equal(t, "antigo.xlsx", dataset.FileName)
				assert.Equal(t, fixedNow, dataset.LastAccessedAt)
			},
		},
		{
			name:      "Modo estrito sem a aba esperada - deve retornar UPL_001",
			sheetName: "Outra",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().GetByFingerprint(gomock.Any()).Return(nil, nil)
			},
			expectedCode: apiErrors.ErrSheetNotFound,
		},
		{
			name:      "Modo first aceita qualquer aba",
			sheetName: "Outra",
			mode:      "first",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().GetByFingerprint(gomock.Any()).Return(nil, nil)
				repo.EXPECT().Save(gomock.Any()).Return(nil)
				repo.EXPECT().Count().Return(1)
			},
			validate: func(t *testing.T, dataset *domain.Dataset) {
				assert.Equal(t, "Outra", dataset.Sheet)
			},
		},
		{
			name:         "Modo inválido - deve retornar VAL_003",
			sheetName:    "Sample Data",
			mode:         "qualquer",
			setup:        func(repo *mocks.MockDatasetRepository) {},
			expectedCode: apiErrors.ErrInvalidFormat,
		},
		{
			name:      "Falha ao salvar - deve retornar SRV_001",
			sheetName: "Sample Data",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().GetByFingerprint(gomock.Any()).Return(nil, nil)
				repo.EXPECT().Save(gomock.Any()).Return(errors.New("falhou"))
			},
			expectedCode: apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockDatasetRepository(ctrl)
			tt.setup(repo)

			service := newService(repo, nil)

			dataset, err := service.Upload(context.Background(), "vendas.xlsx", salesWorkbook(t, tt.sheetName), tt.mode)

			if tt.expectedCode != "" {
				require.Error(t, err)
				var dashErr *DashboardError
				require.True(t, errors.As(err, &dashErr))
				assert.Equal(t, tt.expectedCode, dashErr.Code)
				assert.Nil(t, dataset)
				return
			}

			require.NoError(t, err)
			tt.validate(t, dataset)
		})
	}
}

func TestDashboardService_UploadInvalidBytes(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().GetByFingerprint(gomock.Any()).Return(nil, nil)

	_, err := newService(repo, nil).Upload(context.Background(), "x.xlsx", []byte("não é planilha"), "")

	assert.ErrorIs(t, err, ingesting.ErrParse)
}

func TestDashboardService_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().GetByID("nope").Return(nil, nil).AnyTimes()
	repo.EXPECT().Delete("nope").Return(false, nil)

	service := newService(repo, nil)
	ctx := context.Background()

	_, err := service.GetDataset(ctx, "nope")
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	_, err = service.View(ctx, "nope", nil, 5)
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	_, err = service.FilterOptions(ctx, "nope")
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	err = service.Export(ctx, "nope", nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	err = service.DeleteDataset(ctx, "nope")
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	var dashErr *DashboardError
	require.True(t, errors.As(err, &dashErr))
	assert.Equal(t, apiErrors.ErrDatasetNotFound, dashErr.Code)
	assert.Equal(t, "nope", dashErr.DatasetID)
}

// Os fluxos de leitura usam o repositório em memória real
func uploadedService(t *testing.T, iconIntegrator *iconmocks.MockIconIntegrator) (*DashboardService, string) {
	t.Helper()
	log.SetupTestLogger()

	service := newService(repository.NewDatasetRepository(), iconIntegrator)
	dataset, err := service.Upload(context.Background(), "vendas.xlsx", salesWorkbook(t, "Sample Data"), "")
	require.NoError(t, err)

	return service, dataset.ID
}

func TestDashboardService_View(t *testing.T) {
	ctrl := gomock.NewController(t)
	iconIntegrator := iconmocks.NewMockIconIntegrator(ctrl)
	iconIntegrator.EXPECT().GetIconURL(gomock.Any(), "A").Return("https://cdn.local/a.png")
	iconIntegrator.EXPECT().GetIconURL(gomock.Any(), gomock.Not("A")).Return("").AnyTimes()

	service, id := uploadedService(t, iconIntegrator)

	view, err := service.View(context.Background(), id, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, id, view.DatasetID)
	assert.Equal(t, 3, view.FilteredRows)

	byCity, ok := view.GroupedSum(analyzing.ViewRevenueByCity)
	require.True(t, ok)
	assert.Equal(t, []domain.GroupTotal{{Key: "A", Total: 30}, {Key: "B", Total: 5}}, byCity.Groups)

	topCity, ok := view.Headline(analyzing.HeadlineTopCity)
	require.True(t, ok)
	assert.Equal(t, "A", topCity.Value)
	assert.Equal(t, 2, topCity.Count)
	assert.Equal(t, "https://cdn.local/a.png", topCity.IconURL)

	topCustomer, ok := view.Headline(analyzing.HeadlineTopCustomer)
	require.True(t, ok)
	assert.Equal(t, "Acme", topCustomer.Value)
	assert.Empty(t, topCustomer.IconURL)
}

func TestDashboardService_ViewWithFilter(t *testing.T) {
	service, id := uploadedService(t, nil)

	view, err := service.View(context.Background(), id, domain.FilterSelection{"City": {"B"}}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, view.FilteredRows)
	assert.Equal(t, 3, view.TotalRows)

	byCity, ok := view.GroupedSum(analyzing.ViewRevenueByCity)
	require.True(t, ok)
	assert.Equal(t, []domain.GroupTotal{{Key: "B", Total: 5}}, byCity.Groups)

	for _, ranking := range view.Rankings {
		assert.LessOrEqual(t, len(ranking.Entries), 1)
	}
}

func TestDashboardService_FilterOptions(t *testing.T) {
	service, id := uploadedService(t, nil)

	options, err := service.FilterOptions(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, []domain.FilterOption{
		{Column: "City", Values: []string{"A", "B"}},
		{Column: "Medium", Values: []string{"Email", "Phone"}},
		{Column: "Contact Status", Values: []string{"Won", "Lost"}},
		{Column: "Year", Values: []string{"2023", "2024"}},
	}, options)
}

func TestDashboardService_Export(t *testing.T) {
	service, id := uploadedService(t, nil)

	var buf bytes.Buffer
	err := service.Export(context.Background(), id, domain.FilterSelection{"Contact Status": {"Won"}}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "City,Revenue,Contact Status,Customer,Variant,Month,Year,Medium", lines[0])
	assert.Equal(t, "A,10,Won,Acme,Premium,Jan,2023,Email", lines[1])
	assert.Equal(t, "B,5,Won,Globex,Premium,Jan,2024,Email", lines[2])
}

func TestDashboardService_ListAndDelete(t *testing.T) {
	service, id := uploadedService(t, nil)
	ctx := context.Background()

	infos, err := service.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, id, infos[0].ID)
	assert.Equal(t, 3, infos[0].Rows)

	require.NoError(t, service.DeleteDataset(ctx, id))

	infos, err = service.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}
