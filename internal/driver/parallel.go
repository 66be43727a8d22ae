package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SourceExt is the file extension of ScriptRust sources.
const SourceExt = ".srs"

// DirResult pairs one compiled file with its result. Results come back
// sorted by path, independent of scheduling order.
type DirResult struct {
	Path   string
	Result *CompileResult
}

// readSource reads a source file from disk.
func readSource(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	return os.ReadFile(path)
}

// listSourceFiles returns the sorted list of all *.srs files under dir.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every .srs file under dir concurrently, bounded by
// jobs (GOMAXPROCS when jobs <= 0). The first I/O error cancels the group;
// compile diagnostics do not, they land in each file's bag.
func CompileDir(ctx context.Context, dir string, opts CompileOptions, jobs int) ([]DirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DirResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := readSource(path)
			if err != nil {
				return err
			}
			// per-file options: the timer is not concurrency-safe to share
			fileOpts := opts
			fileOpts.Timer = nil
			results[i] = DirResult{
				Path:   path,
				Result: Compile(path, src, fileOpts),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
