package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/psacct"
	"github.com/neox5/acctstat/internal/sysstat"
)

// Dump file names expected in the data directory.
const (
	PsacctFile  = "psacct-dump-all"
	SysstatFile = "sysstat-dump.json"

	// InProgressSuffix marks a dump file taken by the watcher.
	InProgressSuffix = ".inprogress"
)

// Kind names a dump family; it prefixes archived file names.
type Kind string

const (
	KindPsacct  Kind = "psacct"
	KindSysstat Kind = "sysstat"
)

// maxLineSize bounds a single psacct line.
const maxLineSize = 1024 * 1024

// BatchApplier consumes one psacct dump.
type BatchApplier interface {
	ApplyBatch(ctx context.Context, host string, lines []string, workers int) (psacct.BatchResult, error)
}

// SnapshotProcessor consumes one sysstat snapshot.
type SnapshotProcessor interface {
	ProcessSnapshot(snap *sysstat.Snapshot) error
}

// Watcher polls the data directory and hands finished dump files to the reconcilers.
type Watcher struct {
	cfg     config.IngestConfig
	host    string
	psacct  BatchApplier
	sysstat SnapshotProcessor
	logger  *slog.Logger

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// New creates a watcher over cfg.DataPath. psacct lines are attributed to host.
func New(cfg config.IngestConfig, host string, ps BatchApplier, ss SnapshotProcessor, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:     cfg,
		host:    host,
		psacct:  ps,
		sysstat: ss,
		logger:  logger,
		now:     time.Now,
		wait:    sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("starting ingest watcher",
		"data_path", w.cfg.DataPath,
		"poll_interval", w.cfg.PollInterval,
		"read_lock_interval", w.cfg.ReadLockInterval)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.Poll(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("ingest poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("ingest watcher shutdown complete")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll checks each dump file once and processes those that are complete.
// Kinds are handled one after the other.
func (w *Watcher) Poll(ctx context.Context) error {
	var errs []error
	for _, kind := range []Kind{KindPsacct, KindSysstat} {
		if err := w.pollOne(ctx, kind); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	return errors.Join(errs...)
}

func (w *Watcher) path(kind Kind) string {
	if kind == KindPsacct {
		return filepath.Join(w.cfg.DataPath, PsacctFile)
	}
	return filepath.Join(w.cfg.DataPath, SysstatFile)
}

func (w *Watcher) pollOne(ctx context.Context, kind Kind) error {
	path := w.path(kind)

	stable, err := w.stable(ctx, path)
	if err != nil || !stable {
		return err
	}

	// Claim the file first; a dump is applied at most once.
	claimed := path + InProgressSuffix
	if err := os.Rename(path, claimed); err != nil {
		return fmt.Errorf("failed to claim %s: %w", path, err)
	}

	switch kind {
	case KindPsacct:
		err = w.processPsacct(ctx, claimed)
	case KindSysstat:
		err = w.processSysstat(claimed)
	}

	return errors.Join(err, w.finish(kind, claimed))
}

// stable reports whether path exists and its size and modification time did
// not change across the read lock interval.
func (w *Watcher) stable(ctx context.Context, path string) (bool, error) {
	before, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := w.wait(ctx, w.cfg.ReadLockInterval); err != nil {
		return false, err
	}

	after, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if before.Size() != after.Size() || !before.ModTime().Equal(after.ModTime()) {
		w.logger.Debug("dump file still changing", "path", path)
		return false, nil
	}
	return true, nil
}

func (w *Watcher) processPsacct(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	w.logger.Debug("processing psacct dump", "path", path, "lines", len(lines))

	// Interrupted batches are archived too; their counters are already applied.
	if _, err := w.psacct.ApplyBatch(ctx, w.host, lines, w.cfg.Workers); err != nil {
		w.logger.Warn("psacct batch interrupted", "path", path, "error", err)
	}
	return nil
}

// processSysstat decodes and reconciles one snapshot. Bad input is logged and
// dropped; the next interval brings a fresh snapshot.
func (w *Watcher) processSysstat(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := sysstat.Decode(f)
	if err != nil {
		w.logger.Warn("dropping sysstat dump", "path", path, "error", err)
		return nil
	}

	if err := w.sysstat.ProcessSnapshot(snap); err != nil {
		w.logger.Warn("dropping sysstat snapshot", "host", snap.Hostname, "error", err)
		return nil
	}

	w.logger.Debug("processed sysstat snapshot", "host", snap.Hostname)
	return nil
}

// finish archives or removes a processed file. When archiving fails the file
// is removed instead.
func (w *Watcher) finish(kind Kind, path string) error {
	if w.cfg.ArchiveEnabled() {
		dst, err := archive(w.cfg.DataPath, kind, path, w.now())
		if err == nil {
			w.logger.Debug("archived dump file", "from", path, "to", dst)
			return nil
		}
		w.logger.Error("archiving dump file failed, removing it", "path", path, "error", err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
