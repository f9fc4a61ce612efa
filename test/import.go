package test

import (
	"bytes"
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoadTestFile loads a test file from the testdata directory
// at the repository root.
func LoadTestFile(t *testing.T, filePath string) *bytes.Buffer {
	_, file, _, _ := runtime.Caller(0)
	data, err := os.ReadFile(path.Join(path.Dir(file), "..", "testdata", filePath))
	require.Nil(t, err, "could not read test file %s", filePath)

	return bytes.NewBuffer(data)
}
