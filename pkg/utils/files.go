package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ObjectExt is the extension of assembled output files.
const ObjectExt = ".obj"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ObjectPath derives the output path for an input file by swapping its
// extension for ObjectExt.
func ObjectPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ObjectExt
	}
	return strings.TrimSuffix(inPath, ext) + ObjectExt
}

// ReadLines returns the lines of a text file without line terminators.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
