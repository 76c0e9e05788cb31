package oracle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactPath builds a unique exchange-artifact path under dir. Embedding
// an invocation-scoped identifier keeps concurrent drivers that share a
// working directory from colliding on a fixed relative name.
func ArtifactPath(dir, family, ext string) string {
	name := fmt.Sprintf("vv_%s_%s.%s", family, uuid.NewString(), ext)
	return filepath.Join(dir, name)
}

// RemoveArtifact deletes an exchange artifact. Cleanup is best-effort: the
// artifact's lifetime is test-local and a leftover file is harmless.
func RemoveArtifact(path string) {
	_ = os.Remove(path)
}
