package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Normalisation stays off because cache keys embed case-sensitive page
// paths.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ContentKey derives the cache key for a rendered page path.
func ContentKey(path string) string {
	return "content_" + UUID("go-wiki:content:"+path).String()
}

// SearchKey derives the cache key for a search query. Queries are matched
// case-insensitively, so the key folds case before hashing.
func SearchKey(query string) string {
	return "search_" + UUID("go-wiki:search:"+strings.ToLower(strings.TrimSpace(query))).String()
}
