package engine

import (
	"path/filepath"
	"strings"
)

// ChangeExtension drops everything from the last '.' of the file name and
// appends ext. Dots in directory names are left alone.
func ChangeExtension(fileName, ext string) string {
	base := filepath.Base(fileName)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		fileName = fileName[:len(fileName)-len(base)+i]
	}
	return fileName + ext
}
