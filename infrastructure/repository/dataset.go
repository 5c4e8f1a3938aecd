package repository

//go:generate mockgen -source=dataset.go -destination=mocks/dataset.go -package=mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var ErrInvalidDataset = errors.New("dataset inválido")

type DatasetRepository interface {
	Save(dataset *domain.Dataset) error
	GetByID(id string) (*domain.Dataset, error)
	GetByFingerprint(fingerprint string) (*domain.Dataset, error)
	List() ([]*domain.Dataset, error)
	Delete(id string) (bool, error)
	DeleteExpired(before time.Time) int
	Touch(id string, at time.Time) error
	Count() int
}

// datasetRepository guarda os datasets em memória. As tabelas são imutáveis
// depois do upload, então apenas o mapa e os metadados ficam sob o mutex.
type datasetRepository struct {
	mu            sync.RWMutex
	datasets      map[string]domain.Dataset
	byFingerprint map[string]string
}

func NewDatasetRepository() DatasetRepository {
	return &datasetRepository{
		datasets:      make(map[string]domain.Dataset),
		byFingerprint: make(map[string]string),
	}
}

func (r *datasetRepository) Save(dataset *domain.Dataset) error {
	if dataset == nil || dataset.ID == "" {
		return errors.Wrap(ErrInvalidDataset, "id obrigatório")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.datasets[dataset.ID]; ok && previous.Fingerprint != "" {
		delete(r.byFingerprint, previous.Fingerprint)
	}

	r.datasets[dataset.ID] = *dataset
	if dataset.Fingerprint != "" {
		r.byFingerprint[dataset.Fingerprint] = dataset.ID
	}

	return nil
}

// GetByID retorna nil, nil quando o dataset não existe
func (r *datasetRepository) GetByID(id string) (*domain.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dataset, ok := r.datasets[id]
	if !ok {
		return nil, nil
	}

	return &dataset, nil
}

func (r *datasetRepository) GetByFingerprint(fingerprint string) (*domain.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byFingerprint[fingerprint]
	if !ok {
		return nil, nil
	}

	dataset := r.datasets[id]
	return &dataset, nil
}

// List retorna os datasets do mais recente para o mais antigo
func (r *datasetRepository) List() ([]*domain.Dataset, error) {
	r.mu.RLock()
	datasets := make([]*domain.Dataset, 0, len(r.datasets))
	for _, dataset := range r.datasets {
		d := dataset
		datasets = append(datasets, &d)
	}
	r.mu.RUnlock()

	sort.Slice(datasets, func(i, j int) bool {
		if !datasets[i].UploadedAt.Equal(datasets[j].UploadedAt) {
			return datasets[i].UploadedAt.After(datasets[j].UploadedAt)
		}
		return datasets[i].ID < datasets[j].ID
	})

	return datasets, nil
}

func (r *datasetRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deleteLocked(id), nil
}

// DeleteExpired remove os datasets cujo último acesso é anterior a before
func (r *datasetRepository) DeleteExpired(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, dataset := range r.datasets {
		if dataset.LastAccessedAt.Before(before) {
			r.deleteLocked(id)
			removed++
		}
	}

	return removed
}

func (r *datasetRepository) Touch(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, ok := r.datasets[id]
	if !ok {
		return nil
	}

	if at.After(dataset.LastAccessedAt) {
		dataset.LastAccessedAt = at
		r.datasets[id] = dataset
	}

	return nil
}

func (r *datasetRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.datasets)
}

func (r *datasetRepository) deleteLocked(id string) bool {
	dataset, ok := r.datasets[id]
	if !ok {
		return false
	}

	delete(r.datasets, id)
	if r.byFingerprint[dataset.Fingerprint] == id {
		delete(r.byFingerprint, dataset.Fingerprint)
	}

	return true
}
