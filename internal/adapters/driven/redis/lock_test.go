package redis

import (
	"context"
	"testing"
	"time"
)

func TestLock_AcquireAndRelease(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	first := NewLock(client)
	second := NewLock(client)

	acquired, err := first.Acquire(ctx, "sweep", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("expected first acquire to succeed")
	}

	acquired, err = second.Acquire(ctx, "sweep", time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if acquired {
		t.Fatal("expected second acquire to fail while held")
	}

	if err := first.Release(ctx, "sweep"); err != nil {
		t.Fatalf("release: %v", err)
	}

	acquired, err = second.Acquire(ctx, "sweep", time.Minute)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	if !acquired {
		t.Fatal("expected acquire to succeed after release")
	}
}

func TestLock_ReleaseOnlyByOwner(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	owner := NewLock(client)
	intruder := NewLock(client)

	if acquired, _ := owner.Acquire(ctx, "sweep", time.Minute); !acquired {
		t.Fatal("expected acquire to succeed")
	}

	// A different instance releasing is a no-op
	if err := intruder.Release(ctx, "sweep"); err != nil {
		t.Fatalf("foreign release errored: %v", err)
	}
	if acquired, _ := intruder.Acquire(ctx, "sweep", time.Minute); acquired {
		t.Fatal("lock was stolen by a foreign release")
	}
}

func TestLock_DifferentNamesIndependent(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	lock := NewLock(client)

	if acquired, _ := lock.Acquire(ctx, "sweep", time.Minute); !acquired {
		t.Fatal("expected acquire of sweep")
	}
	if acquired, _ := lock.Acquire(ctx, "other", time.Minute); !acquired {
		t.Fatal("expected acquire of other")
	}
}
