package agent

import (
	"path/filepath"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// MirrorDir returns where a bare mirror of url lives under the
// workspace. The key scheme matches what go uses for module downloads
// in cmd/go/internal/modfetch/codehost: hash the typed location so the
// directory name is stable and free of url characters.
func MirrorDir(workspaceDir, url string) string {
	return filepath.Join(workspaceDir, "cache", "vcs", hashKey("git:"+url))
}

func hashKey(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return base58.Encode(sum[:])
}
