package firefox_test

import (
	"testing"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/firefox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backup = `{
	"title": "",
	"root": "placesRoot",
	"children": [
		{
			"title": "Unsorted Bookmarks",
			"root": "unfiledBookmarksFolder",
			"children": [
				{
					"title": "Go Blog",
					"uri": "https://go.dev/blog/",
					"dateAdded": 1296445975000000,
					"lastModified": 1296445997000000
				},
				{
					"title": "Spec intro",
					"uri": "https://go.dev/ref/spec#Introduction",
					"dateAdded": 1296446000000000,
					"lastModified": 1296446000000000
				},
				{
					"title": "Spec types",
					"uri": "https://go.dev/ref/spec#Types",
					"dateAdded": 1296446001000000,
					"lastModified": 1296446001000000
				},
				{
					"title": "A folder, not a page",
					"children": []
				}
			]
		},
		{
			"title": "Tags",
			"root": "tagsFolder",
			"children": [
				{
					"title": "golang",
					"lastModified": 1400000000000000,
					"children": [
						{"uri": "https://go.dev/blog/"},
						{"uri": "https://go.dev/ref/spec#Introduction"}
					]
				},
				{
					"title": "nosave",
					"lastModified": 1296446100000000,
					"children": [
						{"uri": "https://go.dev/ref/spec#Types"}
					]
				}
			]
		}
	]
}`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("extracts marks, tags, and tag freshness", func(t *testing.T) {
		t.Parallel()

		snap, err := firefox.Parse([]byte(backup))
		require.NoError(t, err)

		require.Len(t, snap.Marks, 3, "folders without a uri are not marks")
		assert.Equal(t, "Go Blog", snap.Marks[0].Title)
		assert.Equal(t, "https://go.dev/blog/", snap.Marks[0].URI)

		assert.Equal(t, []string{"golang"}, snap.Tags["https://go.dev/blog/"])
		assert.Equal(t, []string{"golang"}, snap.Tags["https://go.dev/ref/spec#Introduction"])
		assert.Equal(t, []string{"nosave"}, snap.Tags["https://go.dev/ref/spec#Types"])

		assert.Equal(t, int64(1400000000), snap.TagModified["golang"])
	})

	t.Run("normalizes microsecond timestamps to seconds", func(t *testing.T) {
		t.Parallel()

		snap, err := firefox.Parse([]byte(backup))
		require.NoError(t, err)

		assert.Equal(t, int64(1296445975), snap.Marks[0].DateAdded)
		assert.Equal(t, int64(1296445997), snap.Marks[0].LastModified)
	})

	t.Run("fragment variants stay distinct marks", func(t *testing.T) {
		t.Parallel()

		snap, err := firefox.Parse([]byte(backup))
		require.NoError(t, err)

		uris := make(map[string]bool)
		for _, m := range snap.Marks {
			uris[m.URI] = true
		}
		assert.True(t, uris["https://go.dev/ref/spec#Introduction"])
		assert.True(t, uris["https://go.dev/ref/spec#Types"])
	})

	t.Run("recognizes roots by folder title in older backups", func(t *testing.T) {
		t.Parallel()

		legacy := `{
			"title": "",
			"children": [
				{
					"title": "Unsorted Bookmarks",
					"children": [{"title": "A", "uri": "http://a.com/", "dateAdded": 1000, "lastModified": 1000}]
				}
			]
		}`
		snap, err := firefox.Parse([]byte(legacy))
		require.NoError(t, err)
		require.Len(t, snap.Marks, 1)
		assert.Equal(t, int64(1000), snap.Marks[0].DateAdded, "second timestamps pass through unscaled")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := firefox.Parse([]byte("{not json"))
		require.Error(t, err)
		assert.Equal(t, foxmark.EINVALID, foxmark.ErrorCode(err))
	})

	t.Run("rejects backups without an unfiled folder", func(t *testing.T) {
		t.Parallel()

		_, err := firefox.Parse([]byte(`{"title": "", "children": []}`))
		require.Error(t, err)
		assert.Equal(t, foxmark.EINVALID, foxmark.ErrorCode(err))
	})
}
