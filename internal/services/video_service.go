package services

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/security"
)

var (
	ErrInvalidVideoTitle       = errors.New("invalid video title")
	ErrInvalidVideoDescription = errors.New("invalid video description")
	ErrInvalidVideoURL         = errors.New("invalid video url")
	ErrInvalidVideoDuration    = errors.New("invalid video duration")
	ErrCreateVideoFailed       = errors.New("create video failed")
)

// VideoCategoryAll selects every category when filtering. The legacy label is
// accepted as well.
const (
	VideoCategoryAll       = "all"
	videoCategoryAllLegacy = "全部"
	videoIDSuffixLength    = 9
)

var (
	videoDurationPattern = regexp.MustCompile(`^([0-5][0-9]):([0-5][0-9])$`)
	youtubeIDPattern     = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

//go:embed data/exercise_videos.json
var bundledVideoCatalog []byte

type VideoCatalog struct {
	Categories []string               `json:"categories"`
	Videos     []models.ExerciseVideo `json:"videos"`
}

var loadBundledCatalog = sync.OnceValues(func() (VideoCatalog, error) {
	catalog := VideoCatalog{}
	if err := json.Unmarshal(bundledVideoCatalog, &catalog); err != nil {
		return VideoCatalog{}, fmt.Errorf("parse bundled video catalog: %w", err)
	}
	return catalog, nil
})

// BundledVideos returns a fresh copy of the videos shipped with the binary,
// used to seed an empty catalog slot.
func BundledVideos() []models.ExerciseVideo {
	catalog, err := loadBundledCatalog()
	if err != nil {
		return []models.ExerciseVideo{}
	}
	return slices.Clone(catalog.Videos)
}

type VideoStore interface {
	All() []models.ExerciseVideo
	Add(video models.ExerciseVideo)
}

type VideoInput struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	Category     string
	Level        string
}

type VideoService struct {
	videos VideoStore
	now    func() time.Time
}

func NewVideoService(videos VideoStore) *VideoService {
	return &VideoService{videos: videos, now: time.Now}
}

func (service *VideoService) AddVideo(input VideoInput) (models.ExerciseVideo, error) {
	video := models.ExerciseVideo{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		VideoURL:     strings.TrimSpace(input.VideoURL),
		ThumbnailURL: strings.TrimSpace(input.ThumbnailURL),
		Duration:     strings.TrimSpace(input.Duration),
		Category:     strings.TrimSpace(input.Category),
		Level:        strings.TrimSpace(input.Level),
	}
	switch {
	case video.Title == "":
		return models.ExerciseVideo{}, ErrInvalidVideoTitle
	case video.Description == "":
		return models.ExerciseVideo{}, ErrInvalidVideoDescription
	case video.VideoURL == "":
		return models.ExerciseVideo{}, ErrInvalidVideoURL
	case !videoDurationPattern.MatchString(video.Duration):
		return models.ExerciseVideo{}, ErrInvalidVideoDuration
	}
	if thumbnail := YouTubeThumbnailURL(video.VideoURL); thumbnail != "" {
		video.ThumbnailURL = thumbnail
	}

	id, err := service.newVideoID()
	if err != nil {
		return models.ExerciseVideo{}, fmt.Errorf("%w: %v", ErrCreateVideoFailed, err)
	}
	video.ID = id
	service.videos.Add(video)
	return video, nil
}

// Search matches term case-insensitively against title and description and
// narrows by category unless category selects all of them.
func (service *VideoService) Search(term string, category string) []models.ExerciseVideo {
	term = strings.ToLower(strings.TrimSpace(term))
	category = strings.TrimSpace(category)
	anyCategory := category == "" || strings.EqualFold(category, VideoCategoryAll) || category == videoCategoryAllLegacy

	result := make([]models.ExerciseVideo, 0)
	for _, video := range service.videos.All() {
		matchesTerm := term == "" ||
			strings.Contains(strings.ToLower(video.Title), term) ||
			strings.Contains(strings.ToLower(video.Description), term)
		if matchesTerm && (anyCategory || video.Category == category) {
			result = append(result, video)
		}
	}
	return result
}

// Categories lists "all", then the bundled categories, then any category only
// present on stored videos, each once.
func (service *VideoService) Categories() []string {
	seen := map[string]bool{VideoCategoryAll: true}
	categories := []string{VideoCategoryAll}
	add := func(category string) {
		category = strings.TrimSpace(category)
		if category == "" || category == videoCategoryAllLegacy || seen[category] {
			return
		}
		seen[category] = true
		categories = append(categories, category)
	}

	if catalog, err := loadBundledCatalog(); err == nil {
		for _, category := range catalog.Categories {
			add(category)
		}
	}
	for _, video := range service.videos.All() {
		add(video.Category)
	}
	return categories
}

func (service *VideoService) newVideoID() (string, error) {
	suffix, err := security.RandomBase36(videoIDSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("video-%d-%s", service.now().UnixMilli(), suffix), nil
}

// YouTubeThumbnailURL derives the preview image of a YouTube link, or returns
// "" when url does not carry an 11 character video id.
func YouTubeThumbnailURL(url string) string {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if len(match) < 3 || len(match[2]) != 11 {
		return ""
	}
	return "https://img.youtube.com/vi/" + match[2] + "/maxresdefault.jpg"
}
