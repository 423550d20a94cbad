package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventboard/internal/utils"
)

func TestGenerateEventID(t *testing.T) {
	id1 := utils.GenerateEventID()
	id2 := utils.GenerateEventID()

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
}

func TestGenerateAssetKey(t *testing.T) {
	key := utils.GenerateAssetKey("My Poster.JPG")
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	// 16 random bytes hex-encoded plus the extension
	assert.Len(t, key, 32+len(".jpg"))

	assert.NotEqual(t, utils.GenerateAssetKey("a.png"), utils.GenerateAssetKey("a.png"))

	// no extension is fine
	key = utils.GenerateAssetKey("noext")
	assert.Len(t, key, 32)
}
