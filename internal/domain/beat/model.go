package beat

import "time"

// Beat is an audio track listed on the beats page.
type Beat struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	AudioURL      string    `json:"audio_url"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Duration      *int      `json:"duration,omitempty"` // seconds
	CreatedAt     time.Time `json:"created_at"`
}
