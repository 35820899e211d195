// Package storage uploads event assets (banner and card images) and hands
// back publicly reachable URLs. The hosted bucket client talks to a
// Supabase-style storage REST API; the disk store backs local development.
package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Store uploads an object and returns its public URL.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ObjectKey builds a collision-safe object key from a prefix ("banner",
// "card") and the client-supplied filename.
func ObjectKey(prefix, filename string) string {
	return prefix + "_" + uuid.NewString() + "_" + sanitizeFilename(filename)
}

// sanitizeFilename strips path separators and characters that need escaping
// in URLs, keeping the original name readable in the key.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
