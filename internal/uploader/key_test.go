package uploader

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var keyDate = time.Date(2025, 9, 4, 10, 30, 0, 0, time.UTC)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestComputeObjectKey_Shape(t *testing.T) {
	key := ComputeObjectKey("uploads", "docs/report.pdf", keyDate)

	expected := fmt.Sprintf("uploads/20250904/%s.pdf", md5hex("docs/report.pdf"))
	assert.Equal(t, expected, key)
}

func TestComputeObjectKey_Deterministic(t *testing.T) {
	first := ComputeObjectKey("base", "a/b/c.txt", keyDate)
	second := ComputeObjectKey("base", "a/b/c.txt", keyDate)

	assert.Equal(t, first, second)
}

func TestComputeObjectKey_NormalizesSeparators(t *testing.T) {
	windows := ComputeObjectKey("", `a\b\c.txt`, keyDate)
	unix := ComputeObjectKey("", "a/b/c.txt", keyDate)

	assert.Equal(t, unix, windows)
}

func TestComputeObjectKey_PreservesExtension(t *testing.T) {
	key := ComputeObjectKey("", "reports/q3/summary.pdf", keyDate)

	assert.True(t, strings.HasSuffix(key, ".pdf"), "key %q should keep the .pdf extension", key)
}

func TestComputeObjectKey_NoExtension(t *testing.T) {
	key := ComputeObjectKey("", "bin/uploader", keyDate)

	assert.Equal(t, "20250904/"+md5hex("bin/uploader"), key)
}

func TestComputeObjectKey_EmptyBasePrefix(t *testing.T) {
	key := ComputeObjectKey("", "a.txt", keyDate)

	assert.False(t, strings.HasPrefix(key, "/"))
	assert.Equal(t, "20250904/"+md5hex("a.txt")+".txt", key)
}

func TestComputeObjectKey_TrimsBasePrefixSlashes(t *testing.T) {
	plain := ComputeObjectKey("uploads", "a.txt", keyDate)
	slashed := ComputeObjectKey("/uploads/", "a.txt", keyDate)

	assert.Equal(t, plain, slashed)
}

func TestComputeObjectKey_DatePartition(t *testing.T) {
	newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	key := ComputeObjectKey("", "a.txt", newYear)

	assert.True(t, strings.HasPrefix(key, "20260101/"), "key %q should start with the partition date", key)
}

func TestComputeObjectKey_CollisionPolicy(t *testing.T) {
	// Distinct relative paths get distinct keys for realistic inputs; the
	// digest is the whole collision policy, there is no existence check.
	keys := map[string]string{}
	for _, rel := range []string{
		"docs/report.pdf",
		"docs/report2.pdf",
		"images/report.pdf",
		"report.pdf",
	} {
		key := ComputeObjectKey("", rel, keyDate)
		for other, existing := range keys {
			assert.NotEqual(t, existing, key, "%q and %q must not share a key", rel, other)
		}
		keys[rel] = key
	}
}
