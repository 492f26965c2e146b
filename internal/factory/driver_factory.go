package factory

import (
	"fmt"
	"io"

	"github.com/isyiwang/spam-blaster/internal/adapters/driver"
	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"go.uber.org/zap"
)

// DriverFactory creates run drivers based on configuration
type DriverFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.FilterService
	lister  ports.DirectoryLister
	in      io.Reader
	out     io.Writer
}

// NewDriverFactory creates a new driver factory
func NewDriverFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.FilterService,
	lister ports.DirectoryLister,
	in io.Reader,
	out io.Writer,
) *DriverFactory {
	return &DriverFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		lister:  lister,
		in:      in,
		out:     out,
	}
}

// CreateDriver creates a driver based on the configuration
func (f *DriverFactory) CreateDriver() (ports.Driver, error) {
	corpus := f.cfg.GetCorpus()
	dirs := driver.Directories{
		Spam:       corpus.SpamDir,
		Ham:        corpus.HamDir,
		Unfiltered: corpus.UnfilteredDir,
	}

	driverType := f.cfg.GetString("driver.type")
	switch driverType {
	case "prompt":
		return driver.NewPromptDriver(f.service, f.lister, f.logger, dirs, f.in, f.out), nil
	case "batch":
		return driver.NewBatchDriver(f.service, f.lister, f.logger, dirs, f.out)
	default:
		return nil, fmt.Errorf("unsupported driver type: %s", driverType)
	}
}
