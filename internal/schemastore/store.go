// Package schemastore provisions the directory of schema files that hooks and
// completions read from. The directory is a git checkout of a shared schema
// repository, but any directory of *.yaml files works.
package schemastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/schema"
	"go.uber.org/zap"
)

// DefaultRepository is the community schema repository.
const DefaultRepository = "https://github.com/dob9601/intellicomp-schemas.git"

// ErrSchemaNotFound is returned by Resolve when no schema matches.
var ErrSchemaNotFound = errors.New("schema not found")

// Entry is one schema file in the store.
type Entry struct {
	// Name is the command the schema completes.
	Name string
	Path string
}

// Store manages a local schema directory.
type Store struct {
	Dir        string
	Repository string

	logger *zap.Logger
	git    func(ctx context.Context, dir string, args ...string) error
}

// New creates a Store. An empty repository means DefaultRepository.
func New(dir, repository string, logger *zap.Logger) *Store {
	if repository == "" {
		repository = DefaultRepository
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Dir:        dir,
		Repository: repository,
		logger:     logger,
		git:        runGit,
	}
}

// Ensure clones the repository when the directory is missing or empty. It
// reports whether a clone happened.
func (s *Store) Ensure(ctx context.Context) (bool, error) {
	empty, err := isEmptyDir(s.Dir)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	return true, s.clone(ctx)
}

// Sync brings the directory up to date with the repository. Directories that
// are not git checkouts are left alone.
func (s *Store) Sync(ctx context.Context) error {
	cloned, err := s.Ensure(ctx)
	if err != nil || cloned {
		return err
	}

	if _, err := os.Stat(filepath.Join(s.Dir, ".git")); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("schema directory is not a git checkout, not syncing", zap.String("dir", s.Dir))
			return nil
		}
		return fmt.Errorf("failed to inspect schema directory: %w", err)
	}

	s.logger.Info("pulling schemas", zap.String("dir", s.Dir))
	if err := s.git(ctx, s.Dir, "pull", "--ff-only", "--quiet"); err != nil {
		return fmt.Errorf("failed to update schemas in %s: %w", s.Dir, err)
	}
	return nil
}

func (s *Store) clone(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.Dir), 0755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	s.logger.Info("cloning schemas", zap.String("repository", s.Repository), zap.String("dir", s.Dir))
	if err := s.git(ctx, "", "clone", "--depth", "1", "--quiet", s.Repository, s.Dir); err != nil {
		return fmt.Errorf("failed to clone %s: %w", s.Repository, err)
	}
	return nil
}

// List returns the schemas in the directory sorted by command name. A missing
// directory holds no schemas.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := schema.CommandName(entry.Name())
		if !ok {
			continue
		}
		result = append(result, Entry{Name: name, Path: filepath.Join(s.Dir, entry.Name())})
	}

	slices.SortFunc(result, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// Resolve maps a command name or a schema file path to a schema file.
// Anything that looks like a path is used as is.
func (s *Store) Resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", fmt.Errorf("%w: empty name", ErrSchemaNotFound)
	}

	candidate := nameOrPath
	if !strings.ContainsRune(nameOrPath, filepath.Separator) && filepath.Ext(nameOrPath) == "" {
		candidate = filepath.Join(s.Dir, nameOrPath+schema.FileExtension)
	}

	info, err := os.Stat(candidate)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSchemaNotFound, nameOrPath)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrSchemaNotFound, candidate)
	}
	return candidate, nil
}

func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read schema directory: %w", err)
	}
	return len(entries) == 0, nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}
