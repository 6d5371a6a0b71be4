package session

import (
	"testing"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/storage"
)

func TestStoreStartsUnauthenticated(t *testing.T) {
	store, err := NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if store.Authenticated() {
		t.Error("Expected fresh store to be unauthenticated")
	}
	if store.Token() != "" {
		t.Errorf("Expected empty token, got %s", store.Token())
	}
	if store.User() != nil {
		t.Error("Expected no user")
	}
}

func TestLoginPersistsToken(t *testing.T) {
	backend := storage.NewMemoryStore()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Login("jwt-123"); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	if !store.Authenticated() {
		t.Error("Expected authenticated after login")
	}
	if store.Token() != "jwt-123" {
		t.Errorf("Expected jwt-123, got %s", store.Token())
	}

	value, ok, _ := backend.Get("token")
	if !ok || value != "jwt-123" {
		t.Errorf("Expected token persisted, got %q (ok=%v)", value, ok)
	}
}

func TestSessionRestoredFromBackend(t *testing.T) {
	backend := storage.NewMemoryStore()

	first, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := first.Login("jwt-123"); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if err := first.SetUser(&api.User{ID: "u1", Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("Failed to set user: %v", err)
	}

	second, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Failed to restore store: %v", err)
	}

	if !second.Authenticated() {
		t.Error("Expected restored session to be authenticated")
	}
	user := second.User()
	if user == nil {
		t.Fatal("Expected restored user")
	}
	if user.Name != "Jane" {
		t.Errorf("Expected Jane, got %s", user.Name)
	}
}

func TestTokenWithoutUserIsTolerated(t *testing.T) {
	backend := storage.NewMemoryStore()
	if err := backend.Set("token", "jwt-123"); err != nil {
		t.Fatalf("Failed to seed backend: %v", err)
	}

	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if !store.Authenticated() {
		t.Error("Expected token-only session to count as authenticated")
	}
	if store.User() != nil {
		t.Error("Expected no user record")
	}
}

func TestCorruptUserRecordDiscarded(t *testing.T) {
	backend := storage.NewMemoryStore()
	if err := backend.Set("token", "jwt-123"); err != nil {
		t.Fatalf("Failed to seed backend: %v", err)
	}
	if err := backend.Set("user", "{not json"); err != nil {
		t.Fatalf("Failed to seed backend: %v", err)
	}

	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Expected corrupt user record to be tolerated, got %v", err)
	}

	if store.User() != nil {
		t.Error("Expected corrupt user record to be discarded")
	}
	if !store.Authenticated() {
		t.Error("Expected token to survive a corrupt user record")
	}
	if _, ok, _ := backend.Get("user"); ok {
		t.Error("Expected corrupt user record removed from backend")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	backend := storage.NewMemoryStore()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Login("jwt-123"); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if err := store.SetUser(&api.User{ID: "u1", Name: "Jane"}); err != nil {
		t.Fatalf("Failed to set user: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Failed to logout: %v", err)
	}

	if store.Authenticated() {
		t.Error("Expected unauthenticated after logout")
	}
	if store.User() != nil {
		t.Error("Expected no user after logout")
	}
	if _, ok, _ := backend.Get("token"); ok {
		t.Error("Expected token removed from backend")
	}
	if _, ok, _ := backend.Get("user"); ok {
		t.Error("Expected user removed from backend")
	}
}

func TestUserReturnsCopy(t *testing.T) {
	store, err := NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.SetUser(&api.User{ID: "u1", Name: "Jane"}); err != nil {
		t.Fatalf("Failed to set user: %v", err)
	}

	user := store.User()
	user.Name = "changed"

	if store.User().Name != "Jane" {
		t.Error("Store user was mutated through a returned copy")
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	store, err := NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	var events []EventType
	store.Subscribe(func(e Event) {
		events = append(events, e.Type)
	})

	if err := store.Login("jwt-123"); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if err := store.SetUser(&api.User{ID: "u1"}); err != nil {
		t.Fatalf("Failed to set user: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("Failed to logout: %v", err)
	}

	expected := []EventType{EventLogin, EventUserSet, EventLogout}
	if len(events) != len(expected) {
		t.Fatalf("Expected %d events, got %d", len(expected), len(events))
	}
	for i, e := range expected {
		if events[i] != e {
			t.Errorf("Event %d: expected %v, got %v", i, e, events[i])
		}
	}
}

func TestErrorSlot(t *testing.T) {
	store, err := NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	store.SetError(api.NewNetworkError("connection failed", nil))
	if store.Err() == nil {
		t.Error("Expected pending error")
	}

	store.ClearError()
	if store.Err() != nil {
		t.Error("Expected error cleared")
	}
}
