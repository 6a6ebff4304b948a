// Package asset publishes document images and built-in illustrations and
// turns them into lookup table consumed by the article builder.
//
// Every picture is identified by the digest of its bytes. Published links are
// remembered in persistent cache keyed by host and digest, so the same
// picture is uploaded at most once per cache lifetime no matter how many
// documents or paragraphs refer to it.
package asset

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns hex encoded BLAKE3 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
