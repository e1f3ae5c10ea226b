package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("yahoo", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("yahoo", 3, 0) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("yahoo", 1, 0) {
		t.Fatal("first yahoo request should be allowed")
	}
	if l.Allow("yahoo", 1, 0) {
		t.Fatal("yahoo bucket should be empty")
	}
	if !l.Allow("newsapi", 1, 0) {
		t.Fatal("newsapi bucket should be untouched")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()

	if !l.Allow("yahoo", 1, 100) {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("yahoo", 1, 100) {
		t.Fatal("bucket should be drained")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("yahoo", 1, 100) {
		t.Fatal("bucket should have refilled")
	}
}
