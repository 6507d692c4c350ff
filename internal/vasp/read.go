package vasp

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte header every gzip stream starts with.
var gzipMagic = []byte{0x1f, 0x8b}

// ReadFile reads a whole output file into memory as text. Files compressed
// with gzip (by suffix or by magic bytes) are decompressed transparently;
// runs parked on HPC scratch are routinely stored that way. Failures are
// reported as IO errors and never retried.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", NewIOError("unable to read file", path, err)
	}

	if strings.HasSuffix(path, ".gz") || bytes.HasPrefix(raw, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", NewIOError("unable to open gzip stream", path, err)
		}
		defer zr.Close()
		text, err := io.ReadAll(zr)
		if err != nil {
			return "", NewIOError("unable to decompress file", path, err)
		}
		return string(text), nil
	}

	return string(raw), nil
}
