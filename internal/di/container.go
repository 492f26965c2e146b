package di

import (
	"io"
	"os"
	"time"

	"go.uber.org/dig"

	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/factory"
	"github.com/isyiwang/spam-blaster/internal/logging"
	"github.com/isyiwang/spam-blaster/internal/ports"
)

// BuildContainer creates and configures a dependency injection container.
// An empty configFile searches the standard config locations.
func BuildContainer(configFile string) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		return config.NewWithFile(configFile)
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register console streams
	if err := registerConsole(container, os.Stdin, os.Stdout); err != nil {
		return nil, err
	}

	if err := registerFilter(container); err != nil {
		return nil, err
	}

	return container, nil
}

func registerConsole(container *dig.Container, in io.Reader, out io.Writer) error {
	if err := container.Provide(func() io.Reader { return in }); err != nil {
		return err
	}
	return container.Provide(func() io.Writer { return out })
}

// registerFilter registers everything built from *config.Config and *zap.Logger
func registerFilter(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewDocumentFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewDriverFactory); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (*core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return err
	}

	// Register document collaborators
	if err := container.Provide(func(f *factory.DocumentFactory) (core.DocumentSource, error) {
		return f.CreateDocumentSource()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.DocumentFactory) ports.DirectoryLister {
		return f.CreateDirectoryLister()
	}); err != nil {
		return err
	}

	// Register verdict repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.VerdictRepository, error) {
		return f.CreateVerdictRepository()
	}); err != nil {
		return err
	}

	// Register verdict retention and enabled flag
	if err := container.Provide(func(f *factory.StoreFactory) (time.Duration, error) {
		return f.GetRetention()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.StoreFactory) bool {
		return f.IsStoreEnabled()
	}); err != nil {
		return err
	}

	// Register filter service
	if err := container.Provide(core.NewFilterService); err != nil {
		return err
	}

	// Register driver
	if err := container.Provide(func(f *factory.DriverFactory) (ports.Driver, error) {
		return f.CreateDriver()
	}); err != nil {
		return err
	}

	return nil
}
