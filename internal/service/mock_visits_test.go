package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/visitbeacon/internal/db"
)

func TestMockVisitGeneratorSpreadsVisits(t *testing.T) {
	store := newFakeVisitStore()
	gen := NewMockVisitGenerator(store, 1)

	now := time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC)
	since := now.Add(-72 * time.Hour)
	template := db.Visit{ID: 55, CampaignID: 1, IP: "127.0.0.1", URL: "https://neetchy.com", Agent: "UA", Zone: "America/New_York", Screen: "1920x1080"}

	count, err := gen.Generate(context.Background(), template, since, now)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	// 72 小时内每条间隔最多 1 小时，至少 72 条。
	if count < 72 {
		t.Fatalf("expected at least 72 visits, got %d", count)
	}
	if count != store.visitCount() {
		t.Fatalf("count %d does not match stored rows %d", count, store.visitCount())
	}

	prev := since.Unix()
	for i, v := range store.visits {
		if v.Time <= prev {
			t.Fatalf("visit %d time %d not after previous %d", i, v.Time, prev)
		}
		if v.Time-prev > int64(time.Hour/time.Second) {
			t.Fatalf("visit %d gap %ds exceeds one hour", i, v.Time-prev)
		}
		if v.Time > now.Unix() {
			t.Fatalf("visit %d is in the future", i)
		}
		if v.CampaignID != 1 || v.Screen != "1920x1080" {
			t.Fatalf("template fields not copied: %+v", v)
		}
		prev = v.Time
	}
}

func TestMockVisitGeneratorWithMaxStep(t *testing.T) {
	store := newFakeVisitStore()
	gen := NewMockVisitGenerator(store, 7).WithMaxStep(time.Second)

	now := time.Unix(1700000100, 0)
	count, err := gen.Generate(context.Background(), db.Visit{CampaignID: 1, IP: "x", URL: "https://a.com"}, now.Add(-100*time.Second), now)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if count != 100 {
		t.Fatalf("expected one visit per second, got %d", count)
	}
}

func TestMockVisitGeneratorStopsOnStoreError(t *testing.T) {
	store := newFakeVisitStore()
	store.insertErr = errors.New("disk full")
	gen := NewMockVisitGenerator(store, 1)

	now := time.Now()
	count, err := gen.Generate(context.Background(), db.Visit{CampaignID: 1}, now.Add(-24*time.Hour), now)
	if err == nil || count != 0 {
		t.Fatalf("expected error on first insert, got count=%d err=%v", count, err)
	}

	if _, err := gen.Generate(context.Background(), db.Visit{}, now, now.Add(-time.Second)); err == nil {
		t.Fatal("expected error when since is after now")
	}
}
