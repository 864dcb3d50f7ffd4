package bundle

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Ensure downloads any missing model archives into dir and extracts them.
// Files already on disk are left alone, so calling it on every start is safe
// and cheap once the bundle is in place. required lists the file names that
// must exist under dir afterwards.
func Ensure(ctx context.Context, dir string, archives map[string]string, required []string, timeout time.Duration) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("bundle dir is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	if missing := missingFiles(dir, required); len(missing) == 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client := &http.Client{Timeout: timeout}

	// Sorted for a deterministic download order.
	names := make([]string, 0, len(archives))
	for name := range archives {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		zipPath := filepath.Join(dir, name)
		if _, err := os.Stat(zipPath); err == nil {
			continue
		}
		log.Printf("bundle: downloading %s", name)
		if err := download(ctx, client, archives[name], zipPath); err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
	}

	for _, name := range names {
		zipPath := filepath.Join(dir, name)
		if _, err := os.Stat(zipPath); err != nil {
			continue
		}
		if err := extractArchive(zipPath, dir); err != nil {
			return fmt.Errorf("extract %s: %w", name, err)
		}
	}

	if missing := missingFiles(dir, required); len(missing) > 0 {
		return fmt.Errorf("bundle incomplete after download: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func missingFiles(dir string, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// download writes the response body to a temp file first and renames it into
// place, so an interrupted download never leaves a truncated archive behind.
func download(ctx context.Context, client *http.Client, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return os.Rename(tmp.Name(), dest)
}

// extractArchive unpacks entries that are not already present. Entries whose
// resolved path would escape dir are rejected.
func extractArchive(zipPath, dir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	cleanDir := filepath.Clean(dir)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		target := filepath.Join(cleanDir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, cleanDir+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes bundle dir: %s", f.Name)
		}
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
