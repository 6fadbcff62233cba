package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestMain builds the achievements binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}

	tmpDir, err := os.MkdirTemp("", "achievements-test-*")
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}
	achievementsBin = filepath.Join(tmpDir, "achievements")

	cmd := exec.Command("go", "build", "-o", achievementsBin, "./cmd/achievements")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}
