// Package updater wires the pipeline together: fetch the descriptor-table
// source, resolve per-file indices and names, scan each contract source,
// then merge the fresh extraction into the persisted registry.
package updater

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/smacker/go-tree-sitter/cpp"
	"golang.org/x/sync/errgroup"

	"github.com/qubicscan/contract-registry/internal/config"
	"github.com/qubicscan/contract-registry/internal/ctxlog"
	"github.com/qubicscan/contract-registry/internal/extractor"
	"github.com/qubicscan/contract-registry/internal/fetch"
	"github.com/qubicscan/contract-registry/internal/identity"
	"github.com/qubicscan/contract-registry/internal/label"
	"github.com/qubicscan/contract-registry/internal/registry"
	"github.com/qubicscan/contract-registry/internal/validator"
)

// Updater runs one extraction-and-merge pass over the configured sources.
type Updater struct {
	Config *config.Config

	// Fetcher retrieves external source text.
	Fetcher *fetch.Client

	// Provider derives identities; nil degrades every address to its seed.
	Provider identity.Provider

	norm  *extractor.Normalizer
	pats  extractor.Patterns
	check *validator.Validator
}

// New builds an Updater from configuration.
func New(cfg *config.Config) (*Updater, error) {
	pats, err := extractor.CompilePatterns(cfg.Extract.Patterns)
	if err != nil {
		return nil, err
	}

	norm := extractor.NewNormalizer(pats)
	if !cfg.Extract.PatternOnly {
		norm.SetLanguage(cpp.GetLanguage())
	}

	var provider identity.Provider
	if cfg.Identity.HelperPath != "" {
		provider = &identity.NodeProvider{
			HelperPath: cfg.Identity.HelperPath,
			NodeBin:    cfg.Identity.NodeBin,
			Timeout:    time.Duration(cfg.Identity.TimeoutSeconds) * time.Second,
		}
	}

	check, err := validator.New()
	if err != nil {
		return nil, err
	}

	return &Updater{
		Config:   cfg,
		Fetcher:  fetch.New(time.Duration(cfg.FetchTimeoutSeconds) * time.Second),
		Provider: provider,
		norm:     norm,
		pats:     pats,
		check:    check,
	}, nil
}

// Run executes one full pass. The only fatal condition is an unreachable
// descriptor-table source; every per-file problem is logged and skipped,
// and the persisted registry is rewritten exactly once at the end.
func (u *Updater) Run(ctx context.Context) error {
	log := ctxlog.FromContext(ctx)

	defText, err := u.Fetcher.Text(ctx, u.Config.Sources.DescriptorURL)
	if err != nil {
		return fmt.Errorf("fetching descriptor table: %w", err)
	}

	stripped := u.norm.Strip(defText)

	allow := make(map[string]bool)
	var basenames []string
	for _, b := range extractor.IncludeBasenames(stripped, u.pats) {
		if u.Config.ShouldSkipFile(b) {
			continue
		}
		allow[b] = true
		basenames = append(basenames, b)
	}

	indices := extractor.ResolveIndices(stripped, allow, u.pats, u.Config.Extract.LookbackLines)
	names := extractor.ParseDescriptorTable(stripped, u.pats)

	// Per-file fetch and scan is independent work; the merge below stays
	// single-threaded.
	results := make([]*registry.Contract, len(basenames))
	g, gctx := errgroup.WithContext(ctx)
	limit := u.Config.MaxParallelFetches
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, basename := range basenames {
		cidx, ok := indices[basename]
		if !ok {
			log.Warn("no contract index in range, skipping", "file", basename)
			continue
		}
		g.Go(func() error {
			results[i] = u.extractContract(gctx, basename, cidx, names)
			return nil
		})
	}
	_ = g.Wait()

	fresh := make([]*registry.Contract, 0, len(results))
	for _, c := range results {
		if c != nil {
			fresh = append(fresh, c)
		}
	}

	doc, err := registry.Load(u.Config.DataFile)
	if err != nil {
		log.Warn("persisted registry unreadable, starting from empty", "error", err)
	}

	doc.Contracts = registry.Merge(doc.Contracts, fresh)
	registry.SortContracts(doc.Contracts)

	if err := u.check.ValidateDocument(doc); err != nil {
		return fmt.Errorf("merged registry failed schema validation: %w", err)
	}
	if err := registry.Save(u.Config.DataFile, doc); err != nil {
		return err
	}

	log.Info("registry updated", "path", u.Config.DataFile, "contracts", len(doc.Contracts))
	return nil
}

// extractContract builds one fresh descriptor. A failed per-file fetch
// still yields the descriptor, just with an empty procedure list.
func (u *Updater) extractContract(ctx context.Context, basename string, cidx int, names map[int]string) *registry.Contract {
	log := ctxlog.FromContext(ctx)

	var procs registry.ProcedureList
	url := u.Config.Sources.ContractBaseURL + basename
	text, err := u.Fetcher.Text(ctx, url)
	if err != nil {
		log.Warn("contract source unavailable, keeping entry without procedures", "url", url, "error", err)
	} else {
		for _, reg := range extractor.ScanProcedures(u.norm.Strip(text), u.pats) {
			procs = append(procs, registry.Procedure{ID: reg.ID, Name: label.FromIdentifier(reg.Symbol)})
		}
	}

	stem := strings.TrimSuffix(basename, path.Ext(basename))
	name, ok := names[cidx]
	if !ok {
		name = strings.ToUpper(stem)
	}

	idx := cidx
	return &registry.Contract{
		Filename:      basename,
		Name:          name,
		Label:         label.FromFilename(stem),
		SourceURL:     u.Config.Sources.LinkBaseURL + basename,
		ContractIndex: &idx,
		Address:       identity.Resolve(ctx, u.Provider, cidx),
		Procedures:    procs,
	}
}
