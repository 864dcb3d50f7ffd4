package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	runtimeOnce sync.Once
	runtimeErr  error
)

// initRuntime points the onnxruntime binding at a shared library and brings
// the environment up. Idempotent; every model loader calls it.
func initRuntime(searchDir string) error {
	runtimeOnce.Do(func() {
		libPath := sharedLibraryPath(searchDir)
		if libPath == "" {
			runtimeErr = fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if !ort.IsInitialized() {
			if err := ort.InitializeEnvironment(); err != nil {
				runtimeErr = fmt.Errorf("initialize onnxruntime: %w", err)
			}
		}
	})
	return runtimeErr
}

// sharedLibraryPath locates the platform onnxruntime library. The env var
// wins; otherwise common names and directories are probed, starting with the
// models directory itself.
func sharedLibraryPath(searchDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.so",
		"onnxruntime.so",
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"onnxruntime.dll",
	}
	dirs := []string{
		searchDir,
		filepath.Join(searchDir, "lib"),
		".",
		"/usr/local/lib",
		"/usr/lib",
		"/opt/homebrew/lib",
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
