package completion

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathCompleter lists filesystem paths that begin with a partially typed path.
type PathCompleter interface {
	CompletePath(partial string) ([]string, error)
}

// DirectoryCompleter completes paths relative to Dir, or to the process's
// working directory when Dir is empty.
//
// Candidates keep the directory part exactly as typed, so "src/ma" completes
// to "src/main.go". Directories get a trailing slash. A leading "~/" is
// resolved against the user's home directory but kept in the candidates.
type DirectoryCompleter struct {
	Dir string
}

// CompletePath implements PathCompleter. Entries come back in name order.
// A directory that does not exist yields no candidates rather than an error.
func (c DirectoryCompleter) CompletePath(partial string) ([]string, error) {
	typedDir, base := splitPartialPath(partial)

	dir, err := c.resolve(typedDir)
	if err != nil {
		return nil, &PathCompletionError{Partial: partial, Err: err}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &PathCompletionError{Partial: partial, Err: err}
	}

	completions := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		candidate := typedDir + name
		if isDir(dir, entry) {
			candidate += "/"
		}
		completions = append(completions, candidate)
	}
	return completions, nil
}

// resolve maps the typed directory part onto a directory that can be listed.
func (c DirectoryCompleter) resolve(typedDir string) (string, error) {
	dir := typedDir
	if dir == "~/" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~/"))
	}

	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) && c.Dir != "" {
		dir = filepath.Join(c.Dir, dir)
	}
	return dir, nil
}

// splitPartialPath splits a typed path after its last slash.
func splitPartialPath(partial string) (dir, base string) {
	if partial == "~" {
		return "~/", ""
	}
	i := strings.LastIndex(partial, "/")
	if i < 0 {
		return "", partial
	}
	return partial[:i+1], partial[i+1:]
}

// isDir follows symlinks so that a link to a directory completes like one.
func isDir(dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
