//
// dir_test.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDir(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awaited := make(chan error, 1)
	go func() {
		awaited <- dir.Await(ctx, "reply")
	}()

	stats, err := dir.Publish("reply", func(conn *Conn) error {
		if err := conn.SendString("hello"); err != nil {
			return err
		}
		return conn.SendUint32(42)
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if stats.Sent.Load() == 0 {
		t.Errorf("Publish: no bytes sent")
	}
	if err := <-awaited; err != nil {
		t.Fatalf("Await: %v", err)
	}

	conn, err := dir.Open("reply")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	str, err := conn.ReceiveString()
	if err != nil || str != "hello" {
		t.Errorf("ReceiveString: %q, %v", str, err)
	}
	v, err := conn.ReceiveUint32()
	if err != nil || v != 42 {
		t.Errorf("ReceiveUint32: %v, %v", v, err)
	}

	// Already published messages are returned immediately.
	if err := dir.Await(ctx, "reply"); err != nil {
		t.Errorf("Await: %v", err)
	}
	if err := dir.Remove("reply"); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if dir.Exists("reply") {
		t.Errorf("message exists after Remove")
	}
}

func TestDirPublishError(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	failed := errors.New("failed")
	_, err = dir.Publish("bundle", func(conn *Conn) error {
		return failed
	})
	if !errors.Is(err, failed) {
		t.Errorf("Publish: expected error, got %v", err)
	}
	if dir.Exists("bundle") {
		t.Errorf("failed message was published")
	}
}

func TestDirAwaitTimeout(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(),
		50*time.Millisecond)
	defer cancel()

	err = dir.Await(ctx, "request")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await: expected deadline exceeded, got %v", err)
	}
}
