package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

// storeUnderTest exercises the Store contract against any implementation.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing session
	_, err := store.Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	found, err := store.Exists(ctx, "missing")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if found {
		t.Error("Expected missing session to not exist")
	}

	// Round trip
	sess := New("alice@example.com", "resume text")
	sess.History = append(sess.History,
		Turn{Speaker: SpeakerAssistant, Text: "What year did you graduate?"},
		Turn{Speaker: SpeakerUser, Text: "2019"},
	)
	sess.Profile.PersonalInfo.Name = "Alice"
	sess.PendingPrompt = "What was your role?"
	sess.RemainingEstimate = 2

	err = store.Put(ctx, sess)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Profile.PersonalInfo.Name != "Alice" {
		t.Errorf("Expected profile name Alice, got %q", got.Profile.PersonalInfo.Name)
	}
	if len(got.History) != 2 {
		t.Errorf("Expected 2 history turns, got %d", len(got.History))
	}
	if got.State() != StateAwaitingHuman {
		t.Errorf("Expected awaiting state, got %s", got.State())
	}

	found, err = store.Exists(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !found {
		t.Error("Expected stored session to exist")
	}

	// Overwrite
	got.IsComplete = true
	got.PendingPrompt = ""
	err = store.Put(ctx, got)
	if err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}

	final, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if final.State() != StateDone {
		t.Errorf("Expected done state after overwrite, got %s", final.State())
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	storeUnderTest(t, store)
}

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	sess := New("s1", "resume")
	sess.History = append(sess.History, Turn{Speaker: SpeakerAssistant, Text: "q?"})
	err := store.Put(ctx, sess)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating a retrieved copy must not affect the stored snapshot.
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got.History[0].Text = "tampered"

	fresh, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fresh.History[0].Text != "q?" {
		t.Errorf("Stored snapshot was aliased: %q", fresh.History[0].Text)
	}
}

func TestBadgerStoreInMemory(t *testing.T) {
	store, err := NewBadgerStore("", true)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	defer store.Close()

	storeUnderTest(t, store)
}

func TestBadgerStoreOnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(dir, false)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}

	ctx := context.Background()
	sess := New("persisted", "resume")
	sess.IsComplete = true
	err = store.Put(ctx, sess)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	err = store.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and verify the session survived.
	store, err = NewBadgerStore(dir, false)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.Get(ctx, "persisted")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.State() != StateDone {
		t.Errorf("Expected done session after reopen, got %s", got.State())
	}
}

func TestBadgerStoreRequiresDir(t *testing.T) {
	_, err := NewBadgerStore("", false)
	if err == nil {
		t.Error("Expected error for on-disk store without a directory")
	}
}

func TestSessionStateDerivation(t *testing.T) {
	sess := New("s1", "resume")
	if sess.State() != StateExtracting {
		t.Errorf("Expected extracting, got %s", sess.State())
	}

	sess.PendingPrompt = "q?"
	if sess.State() != StateAwaitingHuman {
		t.Errorf("Expected awaitingHuman, got %s", sess.State())
	}

	sess.IsComplete = true
	if sess.State() != StateDone {
		t.Errorf("Expected done, got %s", sess.State())
	}
}
