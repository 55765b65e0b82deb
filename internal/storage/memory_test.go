package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCouncils(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryWithCouncils([]Council{{Key: "testshire", Name: "Testshire"}})

	c, err := m.GetCouncil(ctx, "testshire")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil || c.Name != "Testshire" {
		t.Fatalf("unexpected council: %+v", c)
	}

	missing, err := m.GetCouncil(ctx, "atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing council, got %+v", missing)
	}

	if err := m.UpsertCouncil(ctx, Council{Key: "northmoor", Name: "Northmoor"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	list, err := m.ListCouncils(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 councils, got %d", len(list))
	}
}

func TestMemoryScheduleSnapshots(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got, err := m.GetScheduleSnapshot(ctx, "testshire", "The Mall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a cache miss, got %+v", got)
	}

	fetched := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	snap := ScheduleSnapshot{
		Council:   "testshire",
		Street:    "The Mall",
		Payload:   []byte(`{"council":"testshire"}`),
		FetchedAt: fetched,
	}
	if err := m.SaveScheduleSnapshot(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = m.GetScheduleSnapshot(ctx, "testshire", "The Mall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.FetchedAt.Equal(fetched) || string(got.Payload) != `{"council":"testshire"}` {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	// Snapshots are keyed per council AND street.
	other, err := m.GetScheduleSnapshot(ctx, "testshire", "Acacia Avenue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != nil {
		t.Errorf("snapshot leaked across streets: %+v", other)
	}
}

func TestMemorySubscriptions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	sub := Subscription{ID: "s1", Council: "testshire", Street: "The Mall", Email: "a@b.c", DaysBefore: 1}
	if err := m.CreateSubscription(ctx, sub); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := m.ListSubscriptions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Email != "a@b.c" {
		t.Fatalf("unexpected subscriptions: %+v", list)
	}

	if err := m.DeleteSubscription(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = m.ListSubscriptions(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %+v", list)
	}
}

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.SetSetting(ctx, "refresh_interval_seconds", "600"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := m.GetSetting(ctx, "refresh_interval_seconds")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "600" {
		t.Errorf("unexpected value: %q", v)
	}

	empty, err := m.GetSetting(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if empty != "" {
		t.Errorf("expected empty string for a missing key, got %q", empty)
	}
}

func TestMemoryUsersAndTokens(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.CreateUser(ctx, User{ID: "u1", Username: "alice", Role: "admin"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	u, err := m.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if u == nil || u.ID != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if err := m.CreateToken(ctx, Token{ID: "t1", UserID: "u1", TokenHash: "abc", Role: "admin"}); err != nil {
		t.Fatalf("create token: %v", err)
	}
	tok, err := m.GetTokenByHash(ctx, "abc")
	if err != nil {
		t.Fatalf("get by hash: %v", err)
	}
	if tok == nil || tok.ID != "t1" {
		t.Fatalf("unexpected token: %+v", tok)
	}

	if err := m.UpdateTokenLastUsed(ctx, "t1"); err != nil {
		t.Fatalf("update last used: %v", err)
	}
	tok, _ = m.GetToken(ctx, "t1")
	if tok.LastUsedAt == nil {
		t.Error("expected LastUsedAt to be set")
	}

	toks, err := m.ListTokens(ctx, "u1")
	if err != nil || len(toks) != 1 {
		t.Fatalf("unexpected token list: %v %v", toks, err)
	}
}

func TestMemoryAdvisoryLock(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	ok, err := m.AcquireAdvisoryLock(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("single-instance lock must always acquire: %v %v", ok, err)
	}
	if _, err := m.ReleaseAdvisoryLock(ctx, 42); err != nil {
		t.Fatalf("release: %v", err)
	}
}
