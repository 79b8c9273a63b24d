// Package wrapper runs the real compiler in place of compdb-wrapper, embedding
// a compilation database entry into compile-only invocations.
package wrapper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/slchris/compdb-wrapper/internal/compdb"
	"github.com/slchris/compdb-wrapper/internal/logging"
	"github.com/slchris/compdb-wrapper/internal/process"
	"github.com/slchris/compdb-wrapper/pkg/config"
)

// Wrapper stands in for the compiler.
type Wrapper struct {
	config       *config.WrapperConfig
	compilerPath string
	transformer  *compdb.Transformer
	logger       *logging.Logger
	execer       process.Execer

	lookPath   func(string) (string, error)
	executable func() (string, error)
	getwd      func() (string, error)
	environ    func() []string
}

// Option customizes a Wrapper.
type Option func(*Wrapper)

// WithExecer replaces the process hand-off.
func WithExecer(e process.Execer) Option {
	return func(w *Wrapper) { w.execer = e }
}

// WithLogger sets the logger. By default one is built from the config.
func WithLogger(l *logging.Logger) Option {
	return func(w *Wrapper) { w.logger = l }
}

// WithLookPath replaces the compiler lookup.
func WithLookPath(f func(string) (string, error)) Option {
	return func(w *Wrapper) { w.lookPath = f }
}

// WithExecutable replaces the lookup of the wrapper's own binary.
func WithExecutable(f func() (string, error)) Option {
	return func(w *Wrapper) { w.executable = f }
}

// WithGetwd replaces the working directory lookup.
func WithGetwd(f func() (string, error)) Option {
	return func(w *Wrapper) { w.getwd = f }
}

// WithEnviron replaces the environment handed to the compiler.
func WithEnviron(f func() []string) Option {
	return func(w *Wrapper) { w.environ = f }
}

// NewWrapper creates a new compiler wrapper.
func NewWrapper(cfg *config.WrapperConfig, opts ...Option) (*Wrapper, error) {
	if cfg == nil {
		cfg = config.DefaultWrapperConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	w := &Wrapper{
		config:     cfg,
		execer:     process.System{},
		lookPath:   process.LookPath,
		executable: os.Executable,
		getwd:      os.Getwd,
		environ:    os.Environ,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		logger, err := logging.New(loggingConfig(cfg.Logging))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		w.logger = logger
	}

	compilerPath, err := w.lookPath(cfg.Compiler)
	if err != nil {
		return nil, fmt.Errorf("failed to find compiler: %w", err)
	}

	self, selfErr := w.executable()
	if selfErr == nil && sameFile(self, compilerPath) {
		return nil, fmt.Errorf("compiler %s resolves to the wrapper itself (%s)", cfg.Compiler, compilerPath)
	}
	w.compilerPath = compilerPath

	header := cfg.Header
	if selfErr == nil {
		header = ResolveHeader(header, filepath.Dir(self))
	}

	w.transformer = &compdb.Transformer{
		Compiler:        cfg.Compiler,
		CompileOnlyFlag: cfg.CompileOnlyFlag,
		Header:          header,
		Finder:          compdb.SuffixFinder{Suffixes: cfg.SourceSuffixes},
	}

	return w, nil
}

// CompilerPath returns the resolved compiler binary.
func (w *Wrapper) CompilerPath() string {
	return w.compilerPath
}

// Plan computes the compiler command line for args without running it.
func (w *Wrapper) Plan(args []string) (*compdb.Plan, error) {
	if !w.config.Enabled || !w.transformer.CompileOnly(args) {
		// No entry is built, so the working directory is not needed.
		argv := make([]string, 0, len(args)+1)
		argv = append(argv, w.config.Compiler)
		return &compdb.Plan{Argv: append(argv, args...)}, nil
	}

	cwd, err := w.getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	plan, err := w.transformer.Plan(args, cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to plan compiler command: %w", err)
	}
	return plan, nil
}

// Execute replaces the current process with the compiler. It returns only
// when that fails.
func (w *Wrapper) Execute(args []string) error {
	plan, err := w.Plan(args)
	if err != nil {
		w.logger.Error("%v", err)
		return err
	}

	if plan.Instrumented {
		w.logger.Info("embedding %s for %q in %s", plan.Symbol, plan.Entry.File, plan.Entry.Directory)
		w.logger.Debug("entry: %s", plan.Serialized)
	} else {
		w.logger.Debug("passing through %d arguments", len(args))
	}
	w.logger.Debug("exec %s", w.compilerPath)

	// Nothing after a successful Exec runs, so release the log file now.
	_ = w.logger.Close()

	if err := w.execer.Exec(w.compilerPath, plan.Argv, w.environ()); err != nil {
		w.logger.Error("%v", err)
		return err
	}
	return nil
}

// ResolveHeader makes a relative header absolute when a file of that name
// sits next to the wrapper binary. Otherwise the compiler's include search
// decides.
func ResolveHeader(header, exeDir string) string {
	if header == "" || filepath.IsAbs(header) || exeDir == "" {
		return header
	}
	candidate := filepath.Join(exeDir, header)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return header
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func loggingConfig(c config.LoggingConfig) *logging.Config {
	return &logging.Config{
		Enabled:       c.Enabled,
		Level:         c.Level,
		Dir:           c.Dir,
		MaxSizeMB:     c.MaxSizeMB,
		EnableConsole: c.Console,
		EnableFile:    c.Dir != "",
	}
}
