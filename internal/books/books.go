package books

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sitebook-dev/sitebook/internal/audit"
	"github.com/sitebook-dev/sitebook/internal/config"
	"github.com/sitebook-dev/sitebook/internal/posting"
	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/report"
	"github.com/sitebook-dev/sitebook/internal/store"
)

var (
	// ErrNotInitialized is returned when a books directory has no
	// books.yaml.
	ErrNotInitialized = errors.New("books not initialized")

	// ErrUnknownProject is returned when an operation names a project
	// code that was never created.
	ErrUnknownProject = errors.New("unknown project code")

	// ErrInvalidCashLine is returned when a cash book line does not
	// carry exactly one positive side.
	ErrInvalidCashLine = errors.New("cash line must have exactly one positive side")
)

// Books ties together the configuration, store, posting engine,
// reconciliation engine and reporter of one set of books. Every CLI
// operation goes through it; mutations land in the audit log.
type Books struct {
	root     string
	actor    string
	cfg      *config.Config
	store    *store.Store
	posting  *posting.Engine
	rec      *reconcile.Engine
	reporter *report.Reporter
}

// Open loads the books rooted at dir. actor is recorded in the audit
// log against every mutating operation.
func Open(dir, actor string) (*Books, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.FileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: no %s in %s", ErrNotInitialized, config.FileName, absDir)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath(absDir, cfg))
	if err != nil {
		return nil, err
	}

	rec := reconcile.NewEngine(st, cfg.Cash.AccountCode)
	rep := report.NewReporter(st, rec, report.Thresholds{
		MinCollectionRatio: cfg.Thresholds.MinCollectionRatio,
		MaxDebtToAssets:    cfg.Thresholds.MaxDebtToAssets,
	})

	return &Books{
		root:     absDir,
		actor:    actor,
		cfg:      cfg,
		store:    st,
		posting:  posting.NewEngine(st),
		rec:      rec,
		reporter: rep,
	}, nil
}

// Init creates a new set of books in dir: directory layout, a default
// books.yaml, the database, and the seeded chart of accounts. Returns
// the opened books.
func Init(ctx context.Context, dir, companyName, currency, actor string) (*Books, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil, fmt.Errorf("books already initialized at %s", absDir)
	}

	for _, d := range []string{"logs", "backups"} {
		if err := os.MkdirAll(filepath.Join(absDir, d), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(companyName)
	if currency != "" {
		cfg.Company.Currency = currency
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return nil, err
	}

	b, err := Open(absDir, actor)
	if err != nil {
		return nil, err
	}

	added, err := b.SeedChart(ctx)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.audit("init", fmt.Sprintf("%s (%d accounts seeded)", companyName, added), "")
	return b, nil
}

// Close releases the underlying database.
func (b *Books) Close() error {
	return b.store.Close()
}

// Root returns the books directory.
func (b *Books) Root() string {
	return b.root
}

// Config returns the loaded configuration.
func (b *Books) Config() *config.Config {
	return b.cfg
}

func dbPath(root string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Database.Path) {
		return cfg.Database.Path
	}
	return filepath.Join(root, cfg.Database.Path)
}

// audit records a mutating operation. Failures do not undo work that
// already landed; they are reported as warnings.
func (b *Books) audit(action, detail, ref string) {
	entry := audit.Entry{
		Timestamp: time.Now().UTC(),
		Actor:     b.actor,
		Action:    action,
		Detail:    detail,
		Ref:       ref,
	}
	if err := audit.Append(b.root, []audit.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
