// Package follow ships lines appended to a file as plog messages.
//
// The follower watches the file's directory with fsnotify and also polls on a
// fixed interval, so it keeps working on filesystems that do not deliver
// events. Truncated files are re-read from the start; rotated files are
// drained and the new file at the same path is followed from its start.
package follow

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/plog/pkg/log"
)

// Sender is the part of the plog client the follower needs.
// *client.Client and *client.SyncClient satisfy it.
type Sender interface {
	Send(message []byte) (uint32, error)
}

// Config holds follower options.
type Config struct {
	// Path is the file to follow.
	Path string

	// FromStart sends the lines already in the file before following it.
	FromStart bool

	// PollInterval is how often the file is checked without an event.
	// Default: 1 second
	PollInterval time.Duration

	// RetryMax caps the wait between attempts to open a missing file.
	// Default: 5 seconds
	RetryMax time.Duration
}

// Follower tails one file. Use New() to create an instance.
type Follower struct {
	cfg    Config
	sender Sender
	logger log.Logger

	file    *os.File
	reader  *bufio.Reader
	offset  int64
	partial []byte

	// lines counts messages handed to the sender, failed or not.
	lines int
}

// New creates a follower. Nothing is opened until Run.
func New(cfg Config, sender Sender, logger log.Logger) *Follower {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 5 * time.Second
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Follower{cfg: cfg, sender: sender, logger: logger}
}

// Run follows the file until ctx is done. It returns nil on cancellation;
// send failures are logged and never stop the follower.
func (f *Follower) Run(ctx context.Context) error {
	if f.cfg.Path == "" {
		return errors.New("follow: path is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("follow: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.cfg.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("follow: watch %s: %w", dir, err)
	}

	if err := f.open(ctx, f.cfg.FromStart); err != nil {
		return canceled(ctx, err)
	}
	defer f.close()

	f.logger.Info("following file", log.String("path", f.cfg.Path), log.Bool("from_start", f.cfg.FromStart))
	f.drain()

	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	name := filepath.Clean(f.cfg.Path)
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("stopped following file", log.String("path", f.cfg.Path), log.Int("lines", f.lines))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if err := f.check(ctx); err != nil {
				return canceled(ctx, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watcher error", log.Err(err))

		case <-ticker.C:
			if err := f.check(ctx); err != nil {
				return canceled(ctx, err)
			}
		}
	}
}

// canceled maps errors caused by ctx ending to a clean stop.
func canceled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// check reads new data and handles truncation and rotation. It only fails
// when a rotated file cannot be reopened.
func (f *Follower) check(ctx context.Context) error {
	f.drain()

	pathInfo, err := os.Stat(f.cfg.Path)
	fileInfo, ferr := f.file.Stat()
	switch {
	case ferr != nil:
		f.logger.Warn("stat followed file", log.Err(ferr))
		return nil

	case err != nil || !os.SameFile(pathInfo, fileInfo):
		// Rotated or removed: what was written to the old file is already
		// drained, continue with whatever appears at the path.
		f.logger.Info("file rotated", log.String("path", f.cfg.Path))
		f.close()
		if err := f.open(ctx, true); err != nil {
			return err
		}
		f.drain()

	case fileInfo.Size() < f.offset:
		f.logger.Info("file truncated", log.String("path", f.cfg.Path), log.Int64("offset", f.offset))
		if _, err := f.file.Seek(0, io.SeekStart); err != nil {
			f.logger.Warn("rewind truncated file", log.Err(err))
			return nil
		}
		f.reader.Reset(f.file)
		f.offset = 0
		f.partial = nil
		f.drain()
	}
	return nil
}

// open waits for the file to exist. Unless fromStart, reading begins at the
// current end of the file.
func (f *Follower) open(ctx context.Context, fromStart bool) error {
	b := newBackoff(f.cfg.PollInterval, f.cfg.RetryMax)
	for {
		file, err := os.Open(f.cfg.Path)
		if err == nil {
			var offset int64
			if !fromStart {
				if offset, err = file.Seek(0, io.SeekEnd); err != nil {
					file.Close()
					return fmt.Errorf("follow: seek: %w", err)
				}
			}
			f.file = file
			f.reader = bufio.NewReader(file)
			f.offset = offset
			f.partial = nil
			b.reset()
			return nil
		}

		f.logger.Debug("waiting for file", log.String("path", f.cfg.Path), log.Err(err))
		if err := b.wait(ctx); err != nil {
			return err
		}
	}
}

func (f *Follower) close() {
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}
}

// drain sends every complete line currently readable. An unterminated tail is
// kept until its newline arrives.
func (f *Follower) drain() {
	for {
		chunk, err := f.reader.ReadBytes('\n')
		f.offset += int64(len(chunk))
		if err != nil {
			f.partial = append(f.partial, chunk...)
			if !errors.Is(err, io.EOF) {
				f.logger.Warn("read followed file", log.Err(err))
			}
			return
		}

		line := chunk
		if len(f.partial) > 0 {
			line = append(f.partial, chunk...)
			f.partial = nil
		}
		f.send(bytes.TrimRight(line, "\r\n"))
	}
}

func (f *Follower) send(line []byte) {
	f.lines++
	id, err := f.sender.Send(line)
	if err != nil {
		// The client reopens its socket on the next send.
		f.logger.Warn("send line", log.Uint32("message_id", id), log.Err(err))
		return
	}
	f.logger.Debug("sent line", log.Uint32("message_id", id), log.Int("bytes", len(line)))
}
