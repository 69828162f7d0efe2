package registry

import (
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests a mark's identity-defining fields. The digest is
// stable across runs for identical inputs and changes when any single
// field changes. Fields are NUL-separated before hashing so that boundary
// shifts between adjacent fields cannot produce the same byte stream.
//
// URL fragments are not stripped: bookmarks for the same base URL with
// different fragments are distinct marks.
func Fingerprint(uri, title, tags string, added int64) string {
	h := xxhash.New()
	_, _ = h.WriteString(uri)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(title)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(tags)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.FormatInt(added, 10))

	var b [8]byte
	sum := h.Sum64()
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
