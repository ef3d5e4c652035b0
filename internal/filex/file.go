// Package filex contains small filesystem helpers shared by the client.
package filex

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// DetectContentType returns the media type for the file at path.
//
// The extension mapping is consulted first; if the extension is unknown the
// first 512 bytes are sniffed. An empty string is returned when neither
// method produces a type, so the caller can apply its own fallback.
func DetectContentType(path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if n == 0 {
		// Zero-byte files carry no signature to sniff.
		return "", nil
	}
	return http.DetectContentType(buf[:n]), nil
}

// Size returns the size in bytes of the regular file at path.
func Size(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return fi.Size(), nil
}
