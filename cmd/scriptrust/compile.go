package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scriptrust/internal/diagfmt"
	"scriptrust/internal/driver"
	"scriptrust/internal/observ"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.srs | dir]",
	Short: "Compile ScriptRust sources to Rust",
	Long: `Compile translates .srs sources into Rust. With a directory argument every
.srs file under it compiles concurrently. Without arguments the entry file
comes from scriptrust.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("out", "o", "", "output path (\"-\" for stdout); defaults to the source path with .rs")
	compileCmd.Flags().Bool("cache", false, "reuse cached output for unchanged sources")
	compileCmd.Flags().Int("jobs", 0, "parallel compile jobs for directories (0 = GOMAXPROCS)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	target := ""
	outDir := ""
	if len(args) == 1 {
		target = args[0]
	} else {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok || manifest.Config.Build.Main == "" {
			return fmt.Errorf("no input: pass a file or add [build] main to scriptrust.toml")
		}
		target = filepath.Join(manifest.Root, manifest.Config.Build.Main)
		if manifest.Config.Build.OutDir != "" {
			outDir = filepath.Join(manifest.Root, manifest.Config.Build.OutDir)
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if info.IsDir() {
		return compileDir(cmd, target, outDir)
	}
	return compileFile(cmd, target, outDir)
}

func compileFile(cmd *cobra.Command, path, outDir string) error {
	src, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}

	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	opts := driver.CompileOptions{MaxDiagnostics: maxDiagnostics(cmd)}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	var res *driver.CompileResult
	if cached, _ := cmd.Flags().GetBool("cache"); cached {
		cache, err := driver.OpenDiskCache("scriptrust")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		res, _ = driver.CompileCached(cache, path, src, opts)
	} else {
		res = driver.Compile(path, src, opts)
	}

	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}
	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if !res.Ok() {
		return fmt.Errorf("%s: compile failed", path)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		fmt.Print(res.Code)
		return nil
	}
	if out == "" {
		out = outputPath(path, outDir)
	}
	return writeOutput(out, res.Code)
}

func compileDir(cmd *cobra.Command, dir, outDir string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	opts := driver.CompileOptions{MaxDiagnostics: maxDiagnostics(cmd)}

	results, err := driver.CompileDir(context.Background(), dir, opts, jobs)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no %s files under %q", driver.SourceExt, dir)
	}

	failed := 0
	for _, r := range results {
		if r.Result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, r.Result.Bag, r.Result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		}
		if !r.Result.Ok() {
			failed++
			continue
		}
		if err := writeOutput(outputPath(r.Path, outDir), r.Result.Code); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to compile", failed, len(results))
	}
	return nil
}

// outputPath derives the .rs destination for a source path, optionally
// rerooted into outDir.
func outputPath(srcPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), driver.SourceExt) + ".rs"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(srcPath), base)
}

func writeOutput(path, code string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil { // #nosec G306
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
