package services

import (
	"errors"
	"testing"
	"time"

	"github.com/wangtaito/workout-project/internal/store"
)

func TestMessageThreadLifecycle(t *testing.T) {
	slot := store.NewMemorySlot()
	service := NewMessageService(newMessageRegistry(slot))
	service.newID = sequentialIDs("msg-")
	clock := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := service.PostMessage("user-id", "David", "  Great run yesterday! ")
	if err != nil {
		t.Fatalf("PostMessage() error: %v", err)
	}
	second, err := service.PostMessage("user-id", "David", "Remember to stretch.")
	if err != nil {
		t.Fatalf("PostMessage() error: %v", err)
	}
	if first.Body != "Great run yesterday!" || first.IsRead || first.UserID != "user-id" {
		t.Fatalf("PostMessage() = %+v", first)
	}

	if _, err := service.PostMessage("user-id", "David", "   "); !errors.Is(err, ErrInvalidMessageBody) {
		t.Fatalf("expected ErrInvalidMessageBody, got %v", err)
	}
	if _, err := service.PostMessage("user-id", "", "hello"); !errors.Is(err, ErrInvalidMessageAuthor) {
		t.Fatalf("expected ErrInvalidMessageAuthor, got %v", err)
	}

	listed := service.ListMessages("user-id")
	if len(listed) != 2 || listed[0].ID != second.ID {
		t.Fatalf("ListMessages() = %+v, want newest first", listed)
	}
	if service.UnreadCount("user-id") != 2 {
		t.Fatalf("UnreadCount() = %d, want 2", service.UnreadCount("user-id"))
	}

	if err := service.MarkRead("user-id", first.ID); err != nil {
		t.Fatalf("MarkRead() error: %v", err)
	}
	if err := service.MarkRead("user-id", "missing"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}

	edited, err := service.EditMessage("user-id", second.ID, "Remember to stretch after every run.")
	if err != nil || edited.Body != "Remember to stretch after every run." {
		t.Fatalf("EditMessage() = (%+v, %v)", edited, err)
	}

	if err := service.DeleteMessage("user-id", first.ID); err != nil {
		t.Fatalf("DeleteMessage() error: %v", err)
	}

	reloaded := NewMessageService(newMessageRegistry(slot)).ListMessages("user-id")
	if len(reloaded) != 1 || reloaded[0].ID != second.ID || reloaded[0].IsRead || !reloaded[0].Date.Equal(second.Date) {
		t.Fatalf("reloaded thread = %+v", reloaded)
	}
	if others := service.ListMessages("someone-else"); len(others) != 0 {
		t.Fatalf("expected separate thread per user, got %+v", others)
	}
}
