package domain

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemedyID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, RemedyID("ch1.xhtml", 3), RemedyID("ch1.xhtml", 3))
	})

	t.Run("twelve hex characters", func(t *testing.T) {
		id := RemedyID("ch1.xhtml", 0)
		assert.Len(t, id, 12)
		_, err := hex.DecodeString(id)
		assert.NoError(t, err)
	})

	t.Run("location changes the id", func(t *testing.T) {
		assert.NotEqual(t, RemedyID("ch1.xhtml", 0), RemedyID("ch1.xhtml", 1))
		assert.NotEqual(t, RemedyID("ch1.xhtml", 0), RemedyID("ch2.xhtml", 0))
	})

	t.Run("matches md5 prefix", func(t *testing.T) {
		sum := md5.Sum([]byte("ch1.xhtml7")) //nolint:gosec
		assert.Equal(t, hex.EncodeToString(sum[:])[:12], RemedyID("ch1.xhtml", 7))
	})
}
