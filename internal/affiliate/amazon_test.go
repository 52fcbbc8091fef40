package affiliate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder(t *testing.T) {
	t.Run("uses configured tag", func(t *testing.T) {
		b := NewBuilder("mytag-21")
		assert.Equal(t, "mytag-21", b.Tag())
	})

	t.Run("empty tag falls back to default", func(t *testing.T) {
		assert.Equal(t, DefaultTag, NewBuilder("").Tag())
		assert.Equal(t, DefaultTag, NewBuilder("   ").Tag())
	})
}

func TestSearchURL(t *testing.T) {
	b := NewBuilder("mytag-21")

	raw := b.SearchURL("apple cider vinegar")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.amazon.com", u.Host)
	assert.Equal(t, "/s", u.Path)

	q := u.Query()
	assert.Equal(t, "apple cider vinegar", q.Get("k"))
	assert.Equal(t, "grocery", q.Get("i"))
	assert.Equal(t, "mytag-21", q.Get("tag"))
}

func TestSearchURL_EscapesQuery(t *testing.T) {
	b := NewBuilder("t-20")

	raw := b.SearchURL("salt & pepper")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "salt & pepper", u.Query().Get("k"))
}
