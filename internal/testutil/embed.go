package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// TestdataFS holds sample game files shared by the tests of several packages.
// cp1252.txt is encoded in Windows-1252; the others are UTF-8.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Samples returns the names of all embedded test files in lexical order.
func Samples() []string {
	entries, err := fs.ReadDir(TestdataFS, "testdata")
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
