package uploader

import (
	"crypto/md5"
	"encoding/hex"
	"path"
	"strings"
	"time"
)

// ComputeObjectKey derives the object key for a file from its relative path.
//
// The key has the shape [basePrefix/]YYYYMMDD/<md5-of-relative-path>[.ext].
// The relative path is the semantic identity of the file: separators are
// normalized to forward slashes before hashing, so the same file addressed
// from Windows and Unix hashes to the same key. The original extension is
// kept so consumers can tell file types apart. Deterministic and free of
// I/O; the caller supplies the clock.
//
// Distinct relative paths hashing to the same digest would overwrite each
// other; no pre-upload existence check is made.
func ComputeObjectKey(basePrefix, relativePath string, now time.Time) string {
	normalized := strings.ReplaceAll(relativePath, "\\", "/")

	sum := md5.Sum([]byte(normalized))
	name := hex.EncodeToString(sum[:])
	if ext := path.Ext(normalized); len(ext) > 1 {
		name += ext
	}

	partition := now.Format("20060102")

	prefix := strings.Trim(basePrefix, "/")
	if prefix == "" {
		return path.Join(partition, name)
	}
	return path.Join(prefix, partition, name)
}
