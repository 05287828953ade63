package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

const (
	DeploymentsFile = "deployments.json"
)

// LookupIndexes are rebuilt from the deployments on every load
type LookupIndexes struct {
	ByRun      map[string][]string // run ID -> deployment IDs
	ByContract map[string][]string // contract name -> deployment IDs
}

// FileRepository stores deployments as JSON in the data directory.
// Nothing touches the disk until the first read or write.
type FileRepository struct {
	fs          afero.Fs
	dataDir     string
	mu          sync.RWMutex
	loaded      bool
	deployments map[string]*models.Deployment
	lookups     *LookupIndexes
}

// NewFileRepository creates a new deployment registry rooted at cfg.DataDir
func NewFileRepository(fs afero.Fs, cfg *config.RuntimeConfig) *FileRepository {
	return &FileRepository{
		fs:          fs,
		dataDir:     cfg.DataDir,
		deployments: make(map[string]*models.Deployment),
		lookups:     newLookupIndexes(),
	}
}

func newLookupIndexes() *LookupIndexes {
	return &LookupIndexes{
		ByRun:      make(map[string][]string),
		ByContract: make(map[string][]string),
	}
}

// ensureLoaded reads the registry file once; callers must hold the write lock
func (m *FileRepository) ensureLoaded() error {
	if m.loaded {
		return nil
	}

	path := filepath.Join(m.dataDir, DeploymentsFile)
	data, err := afero.ReadFile(m.fs, path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load deployments: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, &m.deployments); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if m.deployments == nil {
			m.deployments = make(map[string]*models.Deployment)
		}
	}

	m.rebuildLookups()
	m.loaded = true
	return nil
}

// save writes the registry file atomically
func (m *FileRepository) save() error {
	if err := m.fs.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dataDir, err)
	}

	data, err := json.MarshalIndent(m.deployments, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(m.dataDir, DeploymentsFile)

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(m.fs, tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return m.fs.Rename(tmpPath, path)
}

// rebuildLookups rebuilds all lookup indexes from the loaded data
func (m *FileRepository) rebuildLookups() {
	m.lookups = newLookupIndexes()
	for id, dep := range m.deployments {
		m.index(id, dep)
	}
}

func (m *FileRepository) index(id string, dep *models.Deployment) {
	m.lookups.ByRun[dep.RunID] = append(m.lookups.ByRun[dep.RunID], id)
	m.lookups.ByContract[dep.ContractName] = append(m.lookups.ByContract[dep.ContractName], id)
}

// SaveDeployment records a deployment. Re-deploying creates a new record since every
// deployment lands at a new address.
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}

	if deployment.ID == "" {
		deployment.ID = models.DeploymentID(deployment.ChainID, deployment.ContractName, deployment.Address)
	}

	clone := *deployment
	m.deployments[clone.ID] = &clone
	m.rebuildLookups()

	return m.save()
}

// ListDeployments retrieves deployments matching the filter
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}

	var result []*models.Deployment
	for _, id := range m.candidates(filter) {
		dep := m.deployments[id]
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			continue
		}
		if filter.RunID != "" && dep.RunID != filter.RunID {
			continue
		}

		clone := *dep
		result = append(result, &clone)
	}

	return result, nil
}

// candidates narrows the scan to the smallest matching index
func (m *FileRepository) candidates(filter domain.DeploymentFilter) []string {
	switch {
	case filter.RunID != "":
		return m.lookups.ByRun[filter.RunID]
	case filter.ContractName != "":
		return m.lookups.ByContract[filter.ContractName]
	default:
		return lo.Keys(m.deployments)
	}
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRepository = (*FileRepository)(nil)
