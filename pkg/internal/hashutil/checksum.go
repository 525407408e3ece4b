package hashutil

import (
	"encoding/hex"

	"github.com/arthur-debert/bub/pkg/types"
	"github.com/zeebo/blake3"
)

// Prefix tags checksums with the algorithm that produced them
const Prefix = "blake3:"

// Sum returns the tagged BLAKE3 checksum of data
func Sum(data []byte) string {
	sum := blake3.Sum256(data)
	return Prefix + hex.EncodeToString(sum[:])
}

// FileChecksum returns the tagged BLAKE3 checksum of the file at path
func FileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}
