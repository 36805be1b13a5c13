package submission

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
	return verr.Code
}

func TestSMMPlatformSelection(t *testing.T) {
	f := &SMMFields{}

	err := f.SetPlatform("myspace")
	assert.Equal(t, "PLATFORM_INVALID", validationCode(t, err))

	require.NoError(t, f.SetPlatform("instagram"))
	require.NoError(t, f.SetMediaType("reel"))

	// Switching platform clears a media type the new platform lacks.
	require.NoError(t, f.SetPlatform("twitter"))
	assert.Equal(t, "", f.MediaType)

	// A media type shared by both platforms survives the switch.
	require.NoError(t, f.SetMediaType("photo"))
	require.NoError(t, f.SetPlatform("facebook"))
	assert.Equal(t, "photo", f.MediaType)
}

func TestSMMMediaTypeRequiresPlatform(t *testing.T) {
	f := &SMMFields{}
	err := f.SetMediaType("photo")
	assert.Equal(t, "PLATFORM_REQUIRED", validationCode(t, err))

	require.NoError(t, f.SetPlatform("youtube"))
	err = f.SetMediaType("story")
	assert.Equal(t, "MEDIA_TYPE_INVALID", validationCode(t, err))
}

func TestSMMCaptionLimit(t *testing.T) {
	f := &SMMFields{}
	require.NoError(t, f.SetPlatform("twitter"))

	require.NoError(t, f.SetCaption(strings.Repeat("x", 280)))

	err := f.SetCaption(strings.Repeat("x", 281))
	assert.Equal(t, "CAPTION_TOO_LONG", validationCode(t, err))
	assert.Len(t, f.Caption, 280, "rejected caption must not overwrite the previous one")

	// Limits are per platform.
	require.NoError(t, f.SetPlatform("linkedin"))
	require.NoError(t, f.SetCaption(strings.Repeat("x", 281)))
}

func TestKeywordSetOrderAndDuplicates(t *testing.T) {
	ks := NewKeywordSet()

	assert.True(t, ks.Add("seo"))
	assert.True(t, ks.Add("content"))
	assert.True(t, ks.Add("marketing"))
	assert.False(t, ks.Add("seo"), "duplicates are rejected")
	assert.False(t, ks.Add(""), "empty keywords are rejected")

	assert.Equal(t, []string{"seo", "content", "marketing"}, ks.Values())
	assert.Equal(t, 3, ks.Len())

	assert.True(t, ks.Remove("content"))
	assert.False(t, ks.Remove("content"))
	assert.Equal(t, []string{"seo", "marketing"}, ks.Values())

	// Removal frees the name for re-insertion, at the end.
	assert.True(t, ks.Add("content"))
	assert.Equal(t, []string{"seo", "marketing", "content"}, ks.Values())
}
