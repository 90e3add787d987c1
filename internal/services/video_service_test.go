package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

func newTestVideoService(slot store.Slot) (*VideoService, *store.RecordStore[models.ExerciseVideo]) {
	videos := store.New(slot, "exerciseVideos",
		store.WithLogger[models.ExerciseVideo](quietLogger()),
		store.WithSeed(BundledVideos),
	)
	return NewVideoService(videos), videos
}

func TestBundledVideosSeedEmptySlot(t *testing.T) {
	slot := store.NewMemorySlot()
	service, videos := newTestVideoService(slot)

	if videos.Len() == 0 {
		t.Fatal("expected bundled videos to seed an empty catalog")
	}
	if _, found, _ := slot.Get("exerciseVideos"); found {
		t.Fatal("expected seed to stay in memory until the first write")
	}

	categories := service.Categories()
	if len(categories) < 2 || categories[0] != VideoCategoryAll {
		t.Fatalf("Categories() = %v", categories)
	}
}

func TestAddVideoValidationAndID(t *testing.T) {
	slot := store.NewMemorySlot()
	service, _ := newTestVideoService(slot)
	service.now = func() time.Time { return time.UnixMilli(1700000000123) }

	valid := VideoInput{
		Title:       "Kettlebell Basics",
		Description: "Swings and goblet squats",
		VideoURL:    "https://youtu.be/abcdefghijk",
		Duration:    "12:30",
		Category:    "Functional",
		Level:       "beginner",
	}

	tests := []struct {
		name    string
		mutate  func(*VideoInput)
		wantErr error
	}{
		{name: "missing title", mutate: func(input *VideoInput) { input.Title = " " }, wantErr: ErrInvalidVideoTitle},
		{name: "missing description", mutate: func(input *VideoInput) { input.Description = "" }, wantErr: ErrInvalidVideoDescription},
		{name: "missing url", mutate: func(input *VideoInput) { input.VideoURL = "" }, wantErr: ErrInvalidVideoURL},
		{name: "seconds out of range", mutate: func(input *VideoInput) { input.Duration = "12:60" }, wantErr: ErrInvalidVideoDuration},
		{name: "unpadded minutes", mutate: func(input *VideoInput) { input.Duration = "5:00" }, wantErr: ErrInvalidVideoDuration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			if _, err := service.AddVideo(input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	video, err := service.AddVideo(valid)
	if err != nil {
		t.Fatalf("AddVideo() error: %v", err)
	}
	if !regexp.MustCompile(`^video-1700000000123-[0-9a-z]{9}$`).MatchString(video.ID) {
		t.Fatalf("video id = %q", video.ID)
	}
	if video.ThumbnailURL != "https://img.youtube.com/vi/abcdefghijk/maxresdefault.jpg" {
		t.Fatalf("thumbnail = %q", video.ThumbnailURL)
	}

	reloaded, _ := newTestVideoService(slot)
	found := reloaded.Search("kettlebell", "Functional")
	if len(found) != 1 || found[0].ID != video.ID {
		t.Fatalf("Search() after reload = %+v", found)
	}
	categories := reloaded.Categories()
	if categories[len(categories)-1] != "Functional" {
		t.Fatalf("expected stored-only category to be listed last, got %v", categories)
	}
}

func TestSearchFiltersByTermAndCategory(t *testing.T) {
	videos := store.New[models.ExerciseVideo](store.NewMemorySlot(), "exerciseVideos", store.WithLogger[models.ExerciseVideo](quietLogger()))
	videos.Add(models.ExerciseVideo{ID: "1", Title: "Morning Yoga", Description: "Gentle flow", Category: "Yoga"})
	videos.Add(models.ExerciseVideo{ID: "2", Title: "Leg Day", Description: "Squats and lunges, no yoga", Category: "Strength"})
	videos.Add(models.ExerciseVideo{ID: "3", Title: "Intervals", Description: "Sprint work", Category: "Cardio"})
	service := NewVideoService(videos)

	tests := []struct {
		term     string
		category string
		wantIDs  []string
	}{
		{term: "YOGA", category: "all", wantIDs: []string{"1", "2"}},
		{term: "yoga", category: "Yoga", wantIDs: []string{"1"}},
		{term: "", category: "全部", wantIDs: []string{"1", "2", "3"}},
		{term: "", category: "Cardio", wantIDs: []string{"3"}},
		{term: "pilates", category: "", wantIDs: []string{}},
	}
	for _, tc := range tests {
		got := service.Search(tc.term, tc.category)
		if len(got) != len(tc.wantIDs) {
			t.Fatalf("Search(%q, %q) = %+v, want ids %v", tc.term, tc.category, got, tc.wantIDs)
		}
		for index, id := range tc.wantIDs {
			if got[index].ID != id {
				t.Fatalf("Search(%q, %q)[%d] = %s, want %s", tc.term, tc.category, index, got[index].ID, id)
			}
		}
	}
}

func TestYouTubeThumbnailURL(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?start=10":    "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		"https://www.youtube.com/watch?feature=x&v=dQw4w9WgXcQ": "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		"https://youtu.be/short":                                "",
		"https://vimeo.com/123456":                              "",
	}
	for url, want := range tests {
		if got := YouTubeThumbnailURL(url); got != want {
			t.Fatalf("YouTubeThumbnailURL(%q) = %q, want %q", url, got, want)
		}
	}
}
