package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteKeywords(t *testing.T) {
	keywords := RemoteKeywords()
	assert.Contains(t, keywords, "remote")
	assert.Contains(t, keywords, "wfh")

	// Mutating the returned slice must not leak into later calls
	keywords[0] = "onsite"
	assert.Contains(t, RemoteKeywords(), "remote")
}
