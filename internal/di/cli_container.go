package di

import (
	"flag"
	"io"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Corpus flags
	SpamDir       string
	HamDir        string
	UnfilteredDir string
	Exclude       string

	// Classifier flags
	MaxTokens     int
	LedgerMode    string
	UnknownTokens string

	// Document flags
	Charset string

	// Journal flags
	Store      string
	SQLitePath string
	MySQLDSN   string

	// Output flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags(fs *flag.FlagSet, args []string) (*CLIFlags, error) {
	flags := &CLIFlags{}

	// Corpus flags
	fs.StringVar(&flags.SpamDir, "spam", "", "Directory with spam emails")
	fs.StringVar(&flags.HamDir, "ham", "", "Directory with ham emails")
	fs.StringVar(&flags.UnfilteredDir, "dir", "", "Directory with unfiltered emails")
	fs.StringVar(&flags.Exclude, "exclude", "", "Comma-separated file name patterns to skip")

	// Classifier flags
	fs.IntVar(&flags.MaxTokens, "max-tokens", 15, "Number of most extreme tokens combined per message")
	fs.StringVar(&flags.LedgerMode, "ledger-mode", "replace", "Ledger ingest mode (replace, accumulate)")
	fs.StringVar(&flags.UnknownTokens, "unknown-tokens", "neutral", "Unknown token policy (neutral, fail)")

	// Document flags
	fs.StringVar(&flags.Charset, "charset", "utf-8", "Charset of the email files")

	// Journal flags
	fs.StringVar(&flags.Store, "journal", "", "Verdict journal type (memory, sqlite, mysql); empty disables it")
	fs.StringVar(&flags.SQLitePath, "sqlite-path", "spam-blaster.db", "SQLite verdict journal path")
	fs.StringVar(&flags.MySQLDSN, "mysql-dsn", "", "MySQL verdict journal DSN")

	// Output flags
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags, in io.Reader, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewWithFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := registerConsole(container, in, out); err != nil {
		return nil, err
	}

	if err := registerFilter(container); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Every directory comes from flags, so never prompt
	v.Set("driver.type", "batch")

	v.Set("corpus.spam_dir", flags.SpamDir)
	v.Set("corpus.ham_dir", flags.HamDir)
	v.Set("corpus.unfiltered_dir", flags.UnfilteredDir)
	if flags.Exclude != "" {
		patterns := strings.Split(flags.Exclude, ",")
		for i, p := range patterns {
			patterns[i] = strings.TrimSpace(p)
		}
		v.Set("corpus.exclude", patterns)
	}

	v.Set("classifier.max_tokens", flags.MaxTokens)
	v.Set("classifier.ledger_mode", flags.LedgerMode)
	v.Set("classifier.unknown_tokens", flags.UnknownTokens)

	v.Set("documents.charset", flags.Charset)

	// Set journal configuration
	switch flags.Store {
	case "":
		v.Set("store.enabled", false)
	default:
		v.Set("store.type", flags.Store)
		v.Set("store.sqlite_path", flags.SQLitePath)
		v.Set("store.mysql_dsn", flags.MySQLDSN)
	}

	return config.NewFromViper(v)
}
