package setting

import "time"

// Key names a recognized site setting.
type Key string

// Known setting keys
const (
	KeyName            Key = "name"
	KeyBio             Key = "bio"
	KeyTagline         Key = "tagline"
	KeyLocation        Key = "location"
	KeyEmail           Key = "email"
	KeyGithubURL       Key = "github_url"
	KeyLinkedinURL     Key = "linkedin_url"
	KeyTwitterURL      Key = "twitter_url"
	KeyProfileImageURL Key = "profile_image_url"
)

// KnownKeys lists every accepted key in display order.
var KnownKeys = []Key{
	KeyName,
	KeyBio,
	KeyTagline,
	KeyLocation,
	KeyEmail,
	KeyGithubURL,
	KeyLinkedinURL,
	KeyTwitterURL,
	KeyProfileImageURL,
}

// Known reports whether k is a recognized key.
func (k Key) Known() bool {
	for _, known := range KnownKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Setting is one stored key/value row.
type Setting struct {
	Key       Key       `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is the flat key to value view served to pages.
type Settings map[Key]string

// Defaults returns the placeholder profile used for fresh installs.
func Defaults() Settings {
	return Settings{
		KeyName:            "Your Name",
		KeyBio:             "Passionate web developer using AI pair programming, creative graphic designer, and music producer.",
		KeyTagline:         "Web Developer, Graphic Designer & Beatmaker",
		KeyLocation:        "Your City, Country",
		KeyEmail:           "contact@example.com",
		KeyGithubURL:       "https://github.com",
		KeyLinkedinURL:     "https://linkedin.com",
		KeyTwitterURL:      "https://twitter.com",
		KeyProfileImageURL: "/images/profile.jpg",
	}
}
