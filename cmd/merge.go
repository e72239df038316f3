package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VasenkovAA/codingutils/internal/config"
	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/fileutil"
	"github.com/VasenkovAA/codingutils/internal/logging"
	"github.com/VasenkovAA/codingutils/internal/merge"
	"github.com/VasenkovAA/codingutils/internal/walker"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [file]...",
	Short: "Merge files into a single annotated document",
	Long: `Concatenate files into one output document. Each file is preceded by
a header naming its path relative to the root directory, and the
document opens with a banner recording the file count and merge date.
Files can be listed explicitly or collected from a directory scan.`,
	RunE: runMerge,
}

var (
	mergeDirectory    string
	mergeRecursive    bool
	mergePattern      string
	mergeOutput       string
	mergePreview      bool
	mergeUseIgnore    bool
	mergeIgnoreFile   string
	mergeExcludeDirs  []string
	mergeExcludeNames []string
	mergeExcludePaths []string
	mergeMaxDepth     int
	mergeFollowLinks  bool
)

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeDirectory, "directory", "d", "", "Directory to scan for files to merge")
	mergeCmd.Flags().BoolVarP(&mergeRecursive, "recursive", "r", true, "Search recursively in subdirectories")
	mergeCmd.Flags().StringVarP(&mergePattern, "pattern", "p", "*", "File pattern to merge (e.g. \"*.go\")")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged_files.txt", "Output file path")
	mergeCmd.Flags().BoolVar(&mergePreview, "preview", false, "List the files and sizes without writing the output")
	mergeCmd.Flags().BoolVar(&mergeUseIgnore, "use-ignore-file", false, "Honor .codingutilsignore files discovered up the directory chain")
	mergeCmd.Flags().StringVar(&mergeIgnoreFile, "ignore-file", "", "Explicit ignore file to load")
	mergeCmd.Flags().StringSliceVar(&mergeExcludeDirs, "exclude-dir", nil, "Directory names to skip entirely")
	mergeCmd.Flags().StringSliceVar(&mergeExcludeNames, "exclude-name", nil, "Filename globs to skip")
	mergeCmd.Flags().StringSliceVar(&mergeExcludePaths, "exclude-path", nil, "Path globs to skip")
	mergeCmd.Flags().IntVar(&mergeMaxDepth, "max-depth", -1, "Maximum traversal depth (-1 for unlimited)")
	mergeCmd.Flags().BoolVar(&mergeFollowLinks, "follow-symlinks", false, "Follow symbolic links during traversal")
}

func runMerge(cmd *cobra.Command, args []string) error {
	overrides := baseOverrides(cmd)
	override(overrides, cmd, "recursive", "filter.recursive", mergeRecursive)
	override(overrides, cmd, "pattern", "filter.include_pattern", mergePattern)
	override(overrides, cmd, "exclude-dir", "filter.exclude_dirs", mergeExcludeDirs)
	override(overrides, cmd, "exclude-name", "filter.exclude_names", mergeExcludeNames)
	override(overrides, cmd, "exclude-path", "filter.exclude_patterns", mergeExcludePaths)
	override(overrides, cmd, "max-depth", "filter.max_depth", mergeMaxDepth)
	override(overrides, cmd, "follow-symlinks", "filter.follow_symlinks", mergeFollowLinks)
	override(overrides, cmd, "use-ignore-file", "filter.use_ignore_file", mergeUseIgnore)
	override(overrides, cmd, "ignore-file", "filter.custom_ignore_file", mergeIgnoreFile)
	override(overrides, cmd, "directory", "directory", mergeDirectory)
	override(overrides, cmd, "output", "output", mergeOutput)
	override(overrides, cmd, "preview", "preview", mergePreview)

	v, err := config.NewLoader().Load(".", overrides)
	if err != nil {
		return err
	}
	cfg := &config.MergeConfig{}
	if err := config.Decode(v, cfg); err != nil {
		return err
	}
	if cfg.Output == "" {
		cfg.Output = "merged_files.txt"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(args) == 0 && cfg.Directory == "" {
		return errors.NewValidationError("provide files to merge or a directory with --directory")
	}

	log, err := initLogger(cfg.BaseConfig)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	root := cfg.Directory
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.NewIOError("resolving root directory", err)
	}

	rules, err := buildRuleSet(&cfg.Filter, absRoot, log)
	if err != nil {
		return err
	}

	m, err := merge.New(absRoot, log)
	if err != nil {
		return err
	}

	var files []string
	if cfg.Directory != "" {
		w := walker.New(&cfg.Filter, rules, log)
		files = w.FindFiles([]string{cfg.Directory})
	}
	if len(args) > 0 {
		files = append(files, m.ResolveFiles(args)...)
	}
	// The output must never merge into itself.
	if absOut, err := filepath.Abs(cfg.Output); err == nil {
		files = dropPath(files, absOut)
	}
	if len(files) == 0 {
		warnColor.Println("No files found to merge")
		return nil
	}

	if cfg.Preview {
		m.Preview(os.Stdout, files, cfg.Output)
		return nil
	}

	headerColor.Printf("Merging %d files\n", len(files))

	var buf bytes.Buffer
	errored, err := m.Merge(&buf, files)
	if err != nil {
		return err
	}
	if err := fileutil.SafeWrite(cfg.Output, buf.Bytes(), false); err != nil {
		return errors.NewIOError(fmt.Sprintf("writing %s", cfg.Output), err)
	}

	successColor.Printf("Merged %d files into %s (%s)\n",
		len(files), cfg.Output, fileutil.FormatSize(int64(buf.Len())))

	if errored > 0 {
		log.Warn("some files could not be read", logging.Int("errored", errored))
		return errors.NewError(
			fmt.Sprintf("%d of %d files could not be read", errored, len(files)),
			errors.ExitPartialSuccess)
	}
	return nil
}

func dropPath(files []string, skip string) []string {
	out := files[:0]
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil && abs == skip {
			continue
		}
		out = append(out, f)
	}
	return out
}
