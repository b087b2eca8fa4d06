package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

const DeploymentsFile = "deployments.json"

// FileRepository stores deployments in a json file under the project data dir
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*domain.Deployment
}

// NewFileRepository creates a repository rooted at dataDir and loads existing records
func NewFileRepository(dataDir string) (*FileRepository, error) {
	r := &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[string]*domain.Deployment),
	}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return r, nil
}

// NewFileRepositoryFromConfig creates the repository for the configured project
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, DeploymentsFile)
}

func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &r.deployments)
}

// save writes the registry atomically; the data dir is created on first write
func (r *FileRepository) save() error {
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.dataDir, err)
	}

	data, err := json.MarshalIndent(r.deployments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployments: %w", err)
	}

	tmp := r.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write deployments: %w", err)
	}
	return os.Rename(tmp, r.path())
}

// Save inserts or replaces a deployment
func (r *FileRepository) Save(ctx context.Context, deployment *domain.Deployment) error {
	if deployment.ID == "" {
		deployment.ID = domain.DeploymentID(deployment.ChainID, deployment.Address)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.deployments[deployment.ID] = deployment
	return r.save()
}

// Get retrieves a deployment by ID
func (r *FileRepository) Get(ctx context.Context, id string) (*domain.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dep, ok := r.deployments[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	return dep, nil
}

// FindByAddress returns every deployment at address across chains
func (r *FileRepository) FindByAddress(ctx context.Context, address string) ([]*domain.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := lo.Filter(lo.Values(r.deployments), func(d *domain.Deployment, _ int) bool {
		return strings.EqualFold(d.Address, address)
	})
	if len(matches) == 0 {
		return nil, fmt.Errorf("deployment at %s: %w", address, domain.ErrNotFound)
	}
	sortDeployments(matches)
	return matches, nil
}

// List returns deployments matching filter, newest first
func (r *FileRepository) List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Filter(lo.Values(r.deployments), func(d *domain.Deployment, _ int) bool {
		return filter.Matches(d)
	})
	sortDeployments(result)
	return result, nil
}

// Remove deletes a deployment by ID
func (r *FileRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = strings.ToLower(id)
	if _, ok := r.deployments[id]; !ok {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	delete(r.deployments, id)
	return r.save()
}

func sortDeployments(deps []*domain.Deployment) {
	slices.SortFunc(deps, func(a, b *domain.Deployment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
