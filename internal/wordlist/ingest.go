package wordlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	filePrefix = "words_"
	fileExt    = ".txt"
	keySuffix  = "_dict"
)

// ErrNoDictionaries is returned when a directory holds no dictionary files.
var ErrNoDictionaries = errors.New("no dictionary files found")

// WordsWriter stores a dictionary under an identifier, replacing any
// previous entry.
type WordsWriter interface {
	PutWords(ctx context.Context, id string, words []string) error
}

// Result describes one ingested dictionary file.
type Result struct {
	ID    string
	Path  string
	Words int
}

// DictionaryKey derives the store key from a dictionary file name:
// words_<id>.txt maps to <id>_dict. The extension match is case-insensitive.
func DictionaryKey(filename string) (string, bool) {
	base := filepath.Base(filename)
	if len(base) <= len(fileExt) || !strings.EqualFold(base[len(base)-len(fileExt):], fileExt) {
		return "", false
	}
	stem := base[:len(base)-len(fileExt)]
	if !strings.HasPrefix(stem, filePrefix) {
		return "", false
	}
	id := strings.TrimPrefix(stem, filePrefix)
	if id == "" || strings.ContainsAny(id, ". ") {
		return "", false
	}
	return id + keySuffix, true
}

// FileName is the inverse of DictionaryKey.
func FileName(key string) string {
	return filePrefix + strings.TrimSuffix(key, keySuffix) + fileExt
}

// Ingest loads every dictionary file in dir into dst. Files that do not
// follow the naming convention are skipped. A missing directory is created
// and reported as ErrNoDictionaries.
func Ingest(ctx context.Context, dir string, dst WordsWriter) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create dictionary directory: %w", mkErr)
			}
			return nil, ErrNoDictionaries
		}
		return nil, fmt.Errorf("failed to read dictionary directory: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		key, ok := DictionaryKey(entry.Name())
		if !ok {
			continue
		}
		results = append(results, Result{ID: key, Path: filepath.Join(dir, entry.Name())})
	}
	if len(results) == 0 {
		return nil, ErrNoDictionaries
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	lists := make([][]string, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range results {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			words, err := LoadWords(results[i].Path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", results[i].Path, err)
			}
			lists[i] = Filter(words, Playable)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := dst.PutWords(ctx, results[i].ID, lists[i]); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", results[i].ID, err)
		}
		results[i].Words = len(lists[i])
	}
	return results, nil
}
