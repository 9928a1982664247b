//
// dir.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Dir exchanges protocol messages through files in a directory shared
// by the peers. Each message is published atomically under its name
// and the peer waits for the name to appear.
type Dir struct {
	Path string
}

// NewDir creates a directory exchange, creating the directory if
// needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{
		Path: path,
	}, nil
}

func (d *Dir) file(name string) string {
	return filepath.Join(d.Path, name)
}

// Exists tests if the message has been published.
func (d *Dir) Exists(name string) bool {
	_, err := os.Stat(d.file(name))
	return err == nil
}

// Remove removes the message file if it exists.
func (d *Dir) Remove(name string) error {
	err := os.Remove(d.file(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Publish writes the message with the write function. The message
// becomes visible to the peer only after the function returns
// successfully.
func (d *Dir) Publish(name string, write func(conn *Conn) error) (
	IOStats, error) {

	f, err := os.CreateTemp(d.Path, "."+name+".*")
	if err != nil {
		return NewIOStats(), err
	}
	tmp := f.Name()

	conn := NewConn(f)
	err = write(conn)
	if cerr := conn.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return conn.Stats, errors.Wrapf(err, "publish %s", name)
	}
	if err := os.Rename(tmp, d.file(name)); err != nil {
		os.Remove(tmp)
		return conn.Stats, err
	}
	return conn.Stats, nil
}

// Open opens the published message for reading.
func (d *Dir) Open(name string) (*Conn, error) {
	f, err := os.Open(d.file(name))
	if err != nil {
		return nil, err
	}
	return NewConn(f), nil
}

// Await blocks until the message is published or the context is
// done.
func (d *Dir) Await(ctx context.Context, name string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(d.Path); err != nil {
		return err
	}
	// The message may have been published before the watch started.
	if d.Exists(name) {
		return nil
	}
	target := d.file(name)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Write) != 0 &&
				d.Exists(name) {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return errors.Wrap(err, "watch")

		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "await %s", name)
		}
	}
}
