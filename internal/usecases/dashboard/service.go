package dashboard

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Upload(ctx context.Context, fileName string, data []byte, mode string) (*domain.Dataset, error)
	GetDataset(ctx context.Context, id string) (*domain.Dataset, error)
	ListDatasets(ctx context.Context) ([]*domain.DatasetInfo, error)
	DeleteDataset(ctx context.Context, id string) error
	FilterOptions(ctx context.Context, id string) ([]domain.FilterOption, error)
	View(ctx context.Context, id string, selection domain.FilterSelection, topN int) (*domain.FilteredView, error)
	Export(ctx context.Context, id string, selection domain.FilterSelection, w io.Writer) error
}

type DashboardService struct {
	DatasetRepository repository.DatasetRepository
	IconIntegrator    icons.IconIntegrator
	metrics           *metrics.Registry

	sheetName   string
	sheetMode   string
	layout      analyzing.Layout
	iconTimeout time.Duration
	now         func() time.Time
}

func NewDashboardService(
	cfg *config.Config,
	datasetRepository repository.DatasetRepository,
	iconIntegrator icons.IconIntegrator,
	m *metrics.Registry,
) Service {
	layout := analyzing.DefaultLayout().WithTopN(cfg.Pipeline.TopN)
	layout.PreviewRows = cfg.Pipeline.PreviewRows

	return &DashboardService{
		DatasetRepository: datasetRepository,
		IconIntegrator:    iconIntegrator,
		metrics:           m,
		sheetName:         cfg.Upload.SheetName,
		sheetMode:         cfg.Upload.SheetMode,
		layout:            layout,
		iconTimeout:       cfg.Icons.Timeout,
		now:               time.Now,
	}
}

// Upload lê a planilha e guarda a tabela em memória. Reenviar os mesmos bytes
// com o mesmo modo devolve o dataset já existente.
func (s *DashboardService) Upload(ctx context.Context, fileName string, data []byte, mode string) (*domain.Dataset, error) {
	logger := log.ForContext(ctx)

	if mode == "" {
		mode = s.sheetMode
	}
	sheetMode, err := ingesting.ParseSheetMode(mode)
	if err != nil {
		s.metrics.RecordUpload(metrics.ResultError)
		return nil, uploadError(err)
	}

	fingerprint := utils.Fingerprint([]byte(sheetMode), []byte{0}, []byte(s.sheetName), []byte{0}, data)

	existing, err := s.DatasetRepository.GetByFingerprint(fingerprint)
	if err != nil {
		s.metrics.RecordUpload(metrics.ResultError)
		return nil, NewDashboardError(ErrSaveDataset, apiErrors.ErrInternalServer, err.Error())
	}
	if existing != nil {
		now := s.now()
		if err := s.DatasetRepository.Touch(existing.ID, now); err != nil {
			logger.WithError(err).Warn("dashboard: falha ao atualizar último acesso")
		}
		existing.LastAccessedAt = now

		logger.WithField("dataset_id", existing.ID).Info("dashboard: arquivo já enviado, reaproveitando dataset")
		s.metrics.RecordUpload(metrics.ResultDuplicate)
		return existing, nil
	}

	result, err := ingesting.Parse(data, ingesting.Options{SheetName: s.sheetName, Mode: sheetMode})
	if err != nil {
		logger.WithError(err).WithField("dataset_file", fileName).Warn("dashboard: falha ao ler planilha")
		s.metrics.RecordUpload(metrics.ResultError)
		return nil, uploadError(err)
	}

	id, err := utils.GenerateID()
	if err != nil {
		s.metrics.RecordUpload(metrics.ResultError)
		return nil, NewDashboardError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	now := s.now()
	dataset := &domain.Dataset{
		ID:             id,
		FileName:       fileName,
		Sheet:          result.Sheet,
		Fingerprint:    fingerprint,
		Table:          result.Table,
		UploadedAt:     now,
		LastAccessedAt: now,
	}

	if err := s.DatasetRepository.Save(dataset); err != nil {
		s.metrics.RecordUpload(metrics.ResultError)
		return nil, NewDashboardErrorWithID(ErrSaveDataset, apiErrors.ErrInternalServer, id, err.Error())
	}

	logger.WithFields(log.Fields{
		"dataset_id":   id,
		"dataset_file": fileName,
		"sheet":        result.Sheet,
		"rows":         result.Table.Len(),
	}).Info("dashboard: dataset criado")

	s.metrics.RecordUpload(metrics.ResultSuccess)
	s.metrics.SetDatasetsActive(s.DatasetRepository.Count())

	return dataset, nil
}

// GetDataset busca o dataset e renova seu último acesso
func (s *DashboardService) GetDataset(ctx context.Context, id string) (*domain.Dataset, error) {
	dataset, err := s.DatasetRepository.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar dataset")
	}
	if dataset == nil {
		return nil, NewDashboardErrorWithID(ErrDatasetNotFound, apiErrors.ErrDatasetNotFound, id, "")
	}

	now := s.now()
	if err := s.DatasetRepository.Touch(id, now); err != nil {
		log.ForContext(ctx).WithError(err).WithField("dataset_id", id).Warn("dashboard: falha ao atualizar último acesso")
	}
	dataset.LastAccessedAt = now

	return dataset, nil
}

func (s *DashboardService) ListDatasets(ctx context.Context) ([]*domain.DatasetInfo, error) {
	datasets, err := s.DatasetRepository.List()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar datasets")
	}

	infos := make([]*domain.DatasetInfo, 0, len(datasets))
	for _, dataset := range datasets {
		infos = append(infos, dataset.Info())
	}

	return infos, nil
}

func (s *DashboardService) DeleteDataset(ctx context.Context, id string) error {
	deleted, err := s.DatasetRepository.Delete(id)
	if err != nil {
		return errors.Wrap(err, "erro ao remover dataset")
	}
	if !deleted {
		return NewDashboardErrorWithID(ErrDatasetNotFound, apiErrors.ErrDatasetNotFound, id, "")
	}

	log.ForContext(ctx).WithField("dataset_id", id).Info("dashboard: dataset removido")
	s.metrics.SetDatasetsActive(s.DatasetRepository.Count())

	return nil
}

// FilterOptions lista os valores de filtro disponíveis na tabela completa
func (s *DashboardService) FilterOptions(ctx context.Context, id string) ([]domain.FilterOption, error) {
	dataset, err := s.GetDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	return analyzing.FilterOptions(dataset.Table, s.layout.FilterColumns), nil
}

// View executa o pipeline sobre o dataset e enriquece os destaques com ícones
func (s *DashboardService) View(ctx context.Context, id string, selection domain.FilterSelection, topN int) (*domain.FilteredView, error) {
	dataset, err := s.GetDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	view := analyzing.Apply(dataset.Table, selection, s.layout.WithTopN(topN))
	elapsed := time.Since(start)
	s.metrics.ObservePipeline(elapsed)

	view.DatasetID = dataset.ID

	log.ForContext(ctx).WithFields(log.Fields{
		"dataset_id":       dataset.ID,
		"dataset_filtered": view.FilteredRows,
		"dataset_warnings": len(view.Warnings),
		"duration_ms":      elapsed.Milliseconds(),
	}).Debug("dashboard: pipeline executado")

	s.enrichHeadlines(ctx, view)

	return view, nil
}

// Export escreve as linhas filtradas em CSV
func (s *DashboardService) Export(ctx context.Context, id string, selection domain.FilterSelection, w io.Writer) error {
	dataset, err := s.GetDataset(ctx, id)
	if err != nil {
		return err
	}

	filtered := analyzing.Filter(dataset.Table, selection)
	if err := exporting.WriteCSV(w, filtered); err != nil {
		return NewDashboardErrorWithID(ErrExport, apiErrors.ErrInternalServer, id, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"dataset_id":   id,
		"dataset_rows": filtered.Len(),
	}).Debug("dashboard: csv exportado")

	return nil
}

// enrichHeadlines busca os ícones em paralelo com prazo limitado. Falhas
// deixam o destaque sem ícone.
func (s *DashboardService) enrichHeadlines(ctx context.Context, view *domain.FilteredView) {
	if s.IconIntegrator == nil || len(view.Headlines) == 0 {
		return
	}

	timeout := s.iconTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	iconCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var g errgroup.Group
	for i := range view.Headlines {
		headline := &view.Headlines[i]
		g.Go(func() error {
			headline.IconURL = s.IconIntegrator.GetIconURL(iconCtx, headline.Value)
			return nil
		})
	}
	_ = g.Wait()
}
