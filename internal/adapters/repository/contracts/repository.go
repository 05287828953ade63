package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

const maxSuggestions = 3

// Repository discovers and indexes compiled contracts from Hardhat or Foundry build output
type Repository struct {
	fs            afero.Fs
	projectRoot   string
	artifactsDir  string
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new contract repository reading artifacts from fs
func NewRepository(fs afero.Fs, cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dir := cfg.ArtifactsDir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &Repository{
		fs:            fs,
		projectRoot:   cfg.ProjectRoot,
		artifactsDir:  dir,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts. It runs once, on first lookup, so that a compile
// step earlier in the run is picked up.
func (i *Repository) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.indexed {
		return nil
	}

	i.contracts = make(map[string]*models.Contract)
	i.contractNames = make(map[string][]*models.Contract)

	if i.artifactsDir == "" {
		return fmt.Errorf("no artifacts directory configured")
	}
	exists, err := afero.DirExists(i.fs, i.artifactsDir)
	if err != nil {
		return fmt.Errorf("failed to stat artifacts directory: %w", err)
	}
	if !exists {
		return fmt.Errorf("artifacts directory %s not found (compile the contracts first or pass --compile)", i.artifactsDir)
	}

	err = afero.Walk(i.fs, i.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		return i.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	i.indexed = true
	i.log.Debug("indexed artifacts", "dir", i.artifactsDir, "contracts", len(i.contracts))
	return nil
}

// processArtifact processes a single artifact file
func (i *Repository) processArtifact(artifactPath string) error {
	data, err := afero.ReadFile(i.fs, artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not an artifact (cache files, debug output)
		i.log.Debug("skipping unreadable artifact", "path", artifactPath, "error", err)
		return nil
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	contractName, sourceName := artifact.ContractName, artifact.SourceName
	if contractName == "" || sourceName == "" {
		for source, contract := range artifact.Metadata.Settings.CompilationTarget {
			sourceName = source
			contractName = contract
			break // There should only be one entry
		}
	}
	if contractName == "" {
		// Foundry layout without metadata: out/<File>.sol/<Name>.json
		contractName = strings.TrimSuffix(filepath.Base(artifactPath), ".json")
		sourceName = filepath.Base(filepath.Dir(artifactPath))
	}

	relArtifactPath, err := filepath.Rel(i.projectRoot, artifactPath)
	if err != nil {
		relArtifactPath = artifactPath
	}

	info := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
	}

	key := info.Key()
	if _, exists := i.contracts[key]; exists {
		return nil
	}
	i.contracts[key] = info
	i.contractNames[info.Name] = append(i.contractNames[info.Name], info)

	return nil
}

// GetContract retrieves a contract by key (name or path:name)
func (i *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := i.Index(); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.Contains(key, ":") {
		if contract, exists := i.contracts[key]; exists {
			return contract, nil
		}
		return nil, &domain.ContractNotFoundError{Name: key, Suggestions: i.suggest(key)}
	}

	matches := i.contractNames[key]
	switch len(matches) {
	case 0:
		return nil, &domain.ContractNotFoundError{Name: key, Suggestions: i.suggest(key)}
	case 1:
		return matches[0], nil
	default:
		return nil, &domain.AmbiguousContractError{
			Name:    key,
			Matches: lo.Map(matches, func(c *models.Contract, _ int) string { return c.Key() }),
		}
	}
}

// suggest returns indexed contract names close to the requested one
func (i *Repository) suggest(query string) []string {
	if idx := strings.LastIndex(query, ":"); idx != -1 {
		query = query[idx+1:]
	}

	names := lo.Keys(i.contractNames)
	sort.Strings(names)

	var suggestions []string
	for _, name := range names {
		if strings.EqualFold(name, query) {
			suggestions = append(suggestions, name)
		}
	}
	for _, match := range fuzzy.Find(query, names) {
		suggestions = append(suggestions, match.Str)
	}

	suggestions = lo.Uniq(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
