package download

import (
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// DecompressLZMA writes the decompressed form of an LZMA ("lzma alone") stream to dst.
func DecompressLZMA(dst io.Writer, src io.Reader) (int64, error) {
	r, err := lzma.NewReader(src)
	if err != nil {
		return 0, fmt.Errorf("open lzma stream: %w", err)
	}
	n, err := io.Copy(dst, r)
	if err != nil {
		return n, fmt.Errorf("decompress lzma stream: %w", err)
	}
	return n, nil
}
