package s3

import (
	"testing"

	"github.com/mentora-io/assetgc/internal/mediastore"
	"github.com/stretchr/testify/assert"
)

func TestListPrefix(t *testing.T) {
	assert.Equal(t, "public/image/", listPrefix(mediastore.KindImage, mediastore.AccessPublic))
	assert.Equal(t, "private/raw/", listPrefix(mediastore.KindRaw, mediastore.AccessPrivate))
}

func TestBuildKeyPrefix(t *testing.T) {
	got := buildKeyPrefix("avatars/u123/profile", mediastore.KindImage, mediastore.AccessPublic)
	assert.Equal(t, "public/image/avatars/u123/profile.", got)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		publicID string
		kind     mediastore.Kind
		access   mediastore.AccessMode
		format   string
		ok       bool
	}{
		{
			name:     "nested public id",
			key:      "public/image/avatars/u123/profile.jpg",
			publicID: "avatars/u123/profile",
			kind:     mediastore.KindImage,
			access:   mediastore.AccessPublic,
			format:   "jpg",
			ok:       true,
		},
		{
			name:     "private video",
			key:      "private/video/sessions/s9/recording.mp4",
			publicID: "sessions/s9/recording",
			kind:     mediastore.KindVideo,
			access:   mediastore.AccessPrivate,
			format:   "mp4",
			ok:       true,
		},
		{
			name:     "no extension",
			key:      "public/raw/exports/report",
			publicID: "exports/report",
			kind:     mediastore.KindRaw,
			access:   mediastore.AccessPublic,
			format:   "",
			ok:       true,
		},
		{name: "unknown access", key: "internal/image/a.jpg", ok: false},
		{name: "unknown kind", key: "public/audio/a.mp3", ok: false},
		{name: "too short", key: "public/image/", ok: false},
		{name: "not an asset key", key: "lifecycle-marker", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			publicID, kind, access, format, ok := parseKey(tc.key)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.publicID, publicID)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.access, access)
			assert.Equal(t, tc.format, format)
		})
	}
}

func TestFolderOf(t *testing.T) {
	assert.Equal(t, "avatars/u123", folderOf("avatars/u123/profile"))
	assert.Equal(t, "", folderOf("standalone"))
}
