package upload

import (
	"io"
	"slices"
)

// Kind is the upload category. It selects the MIME allow-list and the
// storage namespace.
type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindImage || k == KindAudio
}

// Policy bounds what the pipeline accepts.
type Policy struct {
	MaxBytes     int64
	AllowedTypes map[Kind][]string
}

// DefaultMaxBytes is the per-file ceiling (50 MiB).
const DefaultMaxBytes int64 = 50 << 20

// DefaultPolicy returns the stock allow-lists with the given size ceiling.
// A non-positive maxBytes selects DefaultMaxBytes.
func DefaultPolicy(maxBytes int64) Policy {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return Policy{
		MaxBytes: maxBytes,
		AllowedTypes: map[Kind][]string{
			KindImage: {"image/jpeg", "image/png", "image/webp"},
			KindAudio: {
				"audio/mpeg", "audio/mp3",
				"audio/wav", "audio/x-wav", "audio/wave",
				"audio/ogg",
				"audio/mp4", "audio/m4a", "audio/x-m4a",
			},
		},
	}
}

// Allows reports whether contentType is on the allow-list for kind.
func (p Policy) Allows(kind Kind, contentType string) bool {
	return slices.Contains(p.AllowedTypes[kind], contentType)
}

// Request is a single file submitted for upload.
type Request struct {
	Kind        Kind
	Filename    string // name supplied by the client, used only for its extension
	ContentType string
	Size        int64
	Body        io.Reader
}

// Asset describes a stored upload. It is not persisted on its own; callers
// embed URL into a project or beat.
type Asset struct {
	Kind     Kind   `json:"kind"`
	Key      string `json:"key"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}
