package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// computeFingerprint generates a stable hash of the document slice.
// The fingerprint changes when document content changes, enabling
// cheap invalidation decisions (e.g. clearing result caches) when a
// catalog is rebuilt.
func computeFingerprint(docs []Doc) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(doc.ID))
		h.Write([]byte{0}) // separator
		h.Write([]byte(doc.Skill))
		h.Write([]byte{0})
		h.Write([]byte(doc.Name))
		h.Write([]byte{0})
		h.Write([]byte(doc.Category))
		h.Write([]byte{0})
		h.Write([]byte(doc.Text))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
