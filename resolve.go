package docweaver

import (
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads a target file for extraction. The engine treats the
// filesystem as a collaborator behind this type so hosts and tests can
// substitute their own source of file contents.
type FileReader func(path string) ([]byte, error)

func osFileReader(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// resolvePath interprets target relative to the directory containing the
// host document, not the process working directory. Existence is not checked
// here; a missing file surfaces when the engine tries to read it, so missing
// files and missing tags are reported through the same diagnostics path.
func resolvePath(docPath, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(docPath), target)
}

// insideRoot reports whether path stays within root once both are cleaned.
func insideRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
