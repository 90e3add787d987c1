package models

type ExerciseVideo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Duration     string `json:"duration"`
	Category     string `json:"category"`
	Level        string `json:"level"`
}

func (video ExerciseVideo) RecordID() string {
	return video.ID
}
