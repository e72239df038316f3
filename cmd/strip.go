package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VasenkovAA/codingutils/internal/config"
	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/logging"
	"github.com/VasenkovAA/codingutils/internal/strip"
	"github.com/VasenkovAA/codingutils/internal/walker"
)

var stripCmd = &cobra.Command{
	Use:   "strip <path>...",
	Short: "Detect and optionally remove code comments",
	Long: `Scan source files for line and block comments, reporting each one.
With --remove, comments are stripped in place; the total line count of
every file is preserved so line numbers stay stable. Without --remove
the command only detects and reports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStrip,
}

var (
	stripRecursive     bool
	stripPattern       string
	stripMarkers       []string
	stripExcludePrefix string
	stripLanguage      string
	stripRemove        bool
	stripNoBackup      bool
	stripUseIgnore     bool
	stripIgnoreFile    string
	stripExcludeDirs   []string
	stripExcludeNames  []string
	stripExcludePaths  []string
	stripMaxDepth      int
	stripFollowLinks   bool
)

func init() {
	rootCmd.AddCommand(stripCmd)

	stripCmd.Flags().BoolVarP(&stripRecursive, "recursive", "r", false, "Search recursively in subdirectories")
	stripCmd.Flags().StringVarP(&stripPattern, "pattern", "p", "*", "File pattern to process (e.g. \"*.py\")")
	stripCmd.Flags().StringSliceVarP(&stripMarkers, "markers", "c", nil, "Comment markers (e.g. \"#\" or \"//\"); auto-detected by extension when unset")
	stripCmd.Flags().StringVarP(&stripExcludePrefix, "exclude-prefix", "e", "", "Suppress comments starting with this prefix (e.g. \"##\")")
	stripCmd.Flags().StringVarP(&stripLanguage, "language", "l", "", "Language code filter for comment text (e.g. \"en\")")
	stripCmd.Flags().BoolVar(&stripRemove, "remove", false, "Actually remove comments instead of only detecting them")
	stripCmd.Flags().BoolVar(&stripNoBackup, "no-backup", false, "Do not keep .bak copies of rewritten files")
	stripCmd.Flags().BoolVar(&stripUseIgnore, "use-ignore-file", false, "Honor .codingutilsignore files discovered up the directory chain")
	stripCmd.Flags().StringVar(&stripIgnoreFile, "ignore-file", "", "Explicit ignore file to load")
	stripCmd.Flags().StringSliceVar(&stripExcludeDirs, "exclude-dir", nil, "Directory names to skip entirely")
	stripCmd.Flags().StringSliceVar(&stripExcludeNames, "exclude-name", nil, "Filename globs to skip")
	stripCmd.Flags().StringSliceVar(&stripExcludePaths, "exclude-path", nil, "Path globs to skip")
	stripCmd.Flags().IntVar(&stripMaxDepth, "max-depth", -1, "Maximum traversal depth (-1 for unlimited)")
	stripCmd.Flags().BoolVar(&stripFollowLinks, "follow-symlinks", false, "Follow symbolic links during traversal")
}

func runStrip(cmd *cobra.Command, args []string) error {
	overrides := baseOverrides(cmd)
	override(overrides, cmd, "recursive", "filter.recursive", stripRecursive)
	override(overrides, cmd, "pattern", "filter.include_pattern", stripPattern)
	override(overrides, cmd, "exclude-dir", "filter.exclude_dirs", stripExcludeDirs)
	override(overrides, cmd, "exclude-name", "filter.exclude_names", stripExcludeNames)
	override(overrides, cmd, "exclude-path", "filter.exclude_patterns", stripExcludePaths)
	override(overrides, cmd, "max-depth", "filter.max_depth", stripMaxDepth)
	override(overrides, cmd, "follow-symlinks", "filter.follow_symlinks", stripFollowLinks)
	override(overrides, cmd, "use-ignore-file", "filter.use_ignore_file", stripUseIgnore)
	override(overrides, cmd, "ignore-file", "filter.custom_ignore_file", stripIgnoreFile)
	override(overrides, cmd, "markers", "markers", stripMarkers)
	override(overrides, cmd, "exclude-prefix", "exclude_prefix", stripExcludePrefix)
	override(overrides, cmd, "language", "language", stripLanguage)
	override(overrides, cmd, "remove", "remove", stripRemove)
	if cmd.Flags().Changed("no-backup") {
		overrides["backup"] = !stripNoBackup
	}

	v, err := config.NewLoader().Load(".", overrides)
	if err != nil {
		return err
	}
	cfg := &config.StripConfig{}
	if err := config.Decode(v, cfg); err != nil {
		return err
	}
	// The strip command defaults to "not recursive": the original
	// behavior is to touch only the named directory unless asked.
	if !cmd.Flags().Changed("recursive") && !v.InConfig("filter.recursive") {
		cfg.Filter.Recursive = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := initLogger(cfg.BaseConfig)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Language != "" {
		log.Warn("language detection is not available; processing all comments",
			logging.String("language", cfg.Language))
	}

	rulesRoot := args[0]
	if info, err := os.Stat(rulesRoot); err == nil && !info.IsDir() {
		rulesRoot = filepath.Dir(rulesRoot)
	}
	rules, err := buildRuleSet(&cfg.Filter, rulesRoot, log)
	if err != nil {
		return err
	}

	w := walker.New(&cfg.Filter, rules, log)
	files := w.FindFiles(args)
	if len(files) == 0 {
		warnColor.Println("No files found matching the criteria")
		return nil
	}

	action := "Scanning"
	if cfg.Remove {
		action = "Stripping"
	}
	headerColor.Printf("%s %d files\n", action, len(files))

	proc := strip.NewProcessor(strip.Options{
		Remove:        cfg.Remove,
		Backup:        cfg.Backup,
		Markers:       cfg.Markers,
		ExcludePrefix: cfg.ExcludePrefix,
	}, log)
	results, totals := proc.ProcessFiles(files)

	for _, res := range results {
		for _, m := range res.Matches {
			fmt.Printf("%s:%d: %s\n", res.Path, m.StartLine, m.Text)
		}
	}

	verb := "Found"
	if cfg.Remove {
		verb = "Removed"
	}
	successColor.Printf("%s %d comments in %d files\n", verb, totalsCount(cfg.Remove, totals), totals.Processed)
	fmt.Printf("Processed: %d  Skipped: %d  Errored: %d\n",
		totals.Processed, totals.Skipped, totals.Errored)

	if totals.Errored > 0 {
		return errors.NewError(
			fmt.Sprintf("%d of %d files could not be processed", totals.Errored, totals.Files),
			errors.ExitPartialSuccess)
	}
	return nil
}

func totalsCount(remove bool, totals strip.Totals) int {
	if remove {
		return totals.Removed
	}
	return totals.Found
}
