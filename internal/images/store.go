package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store copies uploaded item images into a local directory. The stored
// reference is the resulting path inside that directory.
type Store struct {
	Dir string
}

// Save writes src under the original filename. When the name is taken, a
// numeric suffix "(1)", "(2)", ... goes before the extension until a free
// name is found.
func (s *Store) Save(filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	base := filepath.Base(filename)
	dest := filepath.Join(s.Dir, base)
	for count := 1; exists(dest); count++ {
		dest = filepath.Join(s.Dir, suffixed(base, count))
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

func suffixed(base string, count int) string {
	suffix := fmt.Sprintf("(%d)", count)
	if dot := strings.LastIndex(base, "."); dot > 0 {
		return base[:dot] + suffix + base[dot:]
	}
	return base + suffix
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
