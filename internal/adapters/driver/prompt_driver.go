package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"go.uber.org/zap"
)

// Directories names the three corpora of a run. Empty entries are prompted for.
type Directories struct {
	Spam       string
	Ham        string
	Unfiltered string
}

// PromptDriver trains and scans from directories, asking for any directory
// that is not configured
type PromptDriver struct {
	service     ports.CorpusFilter
	lister      ports.DirectoryLister
	logger      *zap.Logger
	dirs        Directories
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPromptDriver creates a driver that reads missing directories from in
func NewPromptDriver(
	service ports.CorpusFilter,
	lister ports.DirectoryLister,
	logger *zap.Logger,
	dirs Directories,
	in io.Reader,
	out io.Writer,
) *PromptDriver {
	return &PromptDriver{
		service:     service,
		lister:      lister,
		logger:      logger,
		dirs:        dirs,
		in:          bufio.NewReader(in),
		out:         out,
		interactive: true,
	}
}

// NewBatchDriver creates a driver that never prompts; every directory must be set
func NewBatchDriver(
	service ports.CorpusFilter,
	lister ports.DirectoryLister,
	logger *zap.Logger,
	dirs Directories,
	out io.Writer,
) (*PromptDriver, error) {
	var missing []string
	if dirs.Spam == "" {
		missing = append(missing, "spam")
	}
	if dirs.Ham == "" {
		missing = append(missing, "ham")
	}
	if dirs.Unfiltered == "" {
		missing = append(missing, "unfiltered")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("batch driver needs %s directory", strings.Join(missing, ", "))
	}

	return &PromptDriver{
		service: service,
		lister:  lister,
		logger:  logger,
		dirs:    dirs,
		out:     out,
	}, nil
}

// Run trains on the spam and ham corpora, recomputes spamicity and scans the
// unfiltered documents, reporting each spam verdict
func (d *PromptDriver) Run(ctx context.Context) error {
	fmt.Fprintln(d.out, "Spam Blaster - Isaac Wang")

	spamFiles, err := d.corpus(ctx, "Set directory with spam emails: ", d.dirs.Spam)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Added %d spam files to filter\n", len(spamFiles))
	if _, err := d.service.TrainCorpus(ctx, core.Spam, spamFiles); err != nil {
		return err
	}

	hamFiles, err := d.corpus(ctx, "Set directory with ham emails: ", d.dirs.Ham)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Added %d ham files to filter\n", len(hamFiles))
	if _, err := d.service.TrainCorpus(ctx, core.Ham, hamFiles); err != nil {
		return err
	}

	d.service.UpdateSpamicity()

	unfiltered, err := d.corpus(ctx, "Set directory with unfiltered emails: ", d.dirs.Unfiltered)
	if err != nil {
		return err
	}
	report, err := d.service.ScanBatch(ctx, unfiltered)
	for _, path := range report.Flagged {
		fmt.Fprintf(d.out, "Spam detected: %s\n", path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "Detected %d / %d spam messages\n", report.SpamCount, report.Total)
	return nil
}

// corpus resolves a directory, prompting when it is not preset, and lists its files
func (d *PromptDriver) corpus(ctx context.Context, prompt, preset string) ([]string, error) {
	dir := preset
	if dir == "" {
		if !d.interactive {
			return nil, errors.New("no directory configured")
		}
		var err error
		if dir, err = d.ask(prompt); err != nil {
			return nil, err
		}
	} else {
		d.logger.Info("Using configured directory", zap.String("directory", dir))
	}

	return d.lister.List(ctx, dir)
}

func (d *PromptDriver) ask(prompt string) (string, error) {
	fmt.Fprint(d.out, prompt)

	line, err := d.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	dir := strings.TrimRight(line, "\r\n")
	if dir == "" {
		return "", errors.New("no directory given")
	}
	return dir, nil
}

var _ ports.Driver = (*PromptDriver)(nil)
