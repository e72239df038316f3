package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VasenkovAA/codingutils/internal/config"
	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/fileutil"
	"github.com/VasenkovAA/codingutils/internal/tree"
)

var treeCmd = &cobra.Command{
	Use:   "tree [directory]",
	Short: "Render a project directory tree",
	Long: `Print the directory structure as a tree, honoring ignore files and
exclusion filters. Output can be plain text, JSON, or YAML, and can be
written to a file instead of stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

var (
	treeIgnoreFile   string
	treeNoIgnore     bool
	treePattern      string
	treeOutput       string
	treeFormat       string
	treeExcludeDirs  []string
	treeExcludeNames []string
	treeExcludePaths []string
	treeMaxDepth     int
	treeFollowLinks  bool
)

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().StringVarP(&treeIgnoreFile, "ignore-file", "i", "", "Explicit ignore file to load")
	treeCmd.Flags().BoolVar(&treeNoIgnore, "no-ignore", false, "Do not honor .codingutilsignore files")
	treeCmd.Flags().StringVarP(&treePattern, "pattern", "p", "*", "File pattern to include (e.g. \"*.go\")")
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "", "Write the tree to this file instead of stdout")
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "text", "Output format: text, json or yaml")
	treeCmd.Flags().StringSliceVar(&treeExcludeDirs, "exclude-dir", nil, "Directory names to skip entirely")
	treeCmd.Flags().StringSliceVar(&treeExcludeNames, "exclude-name", nil, "Filename globs to skip")
	treeCmd.Flags().StringSliceVar(&treeExcludePaths, "exclude-path", nil, "Path globs to skip")
	treeCmd.Flags().IntVar(&treeMaxDepth, "max-depth", -1, "Maximum traversal depth (-1 for unlimited)")
	treeCmd.Flags().BoolVar(&treeFollowLinks, "follow-symlinks", false, "Follow symbolic links during traversal")
}

func runTree(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	overrides := baseOverrides(cmd)
	override(overrides, cmd, "pattern", "filter.include_pattern", treePattern)
	override(overrides, cmd, "exclude-dir", "filter.exclude_dirs", treeExcludeDirs)
	override(overrides, cmd, "exclude-name", "filter.exclude_names", treeExcludeNames)
	override(overrides, cmd, "exclude-path", "filter.exclude_patterns", treeExcludePaths)
	override(overrides, cmd, "max-depth", "filter.max_depth", treeMaxDepth)
	override(overrides, cmd, "follow-symlinks", "filter.follow_symlinks", treeFollowLinks)
	override(overrides, cmd, "ignore-file", "filter.custom_ignore_file", treeIgnoreFile)
	override(overrides, cmd, "output", "output", treeOutput)
	override(overrides, cmd, "format", "format", treeFormat)
	if cmd.Flags().Changed("no-ignore") {
		overrides["filter.use_ignore_file"] = !treeNoIgnore
	}

	v, err := config.NewLoader().Load(".", overrides)
	if err != nil {
		return err
	}
	cfg := &config.TreeConfig{}
	if err := config.Decode(v, cfg); err != nil {
		return err
	}
	// Tree honors discovered ignore files unless the flag or a config
	// file says otherwise.
	if !cmd.Flags().Changed("no-ignore") && !v.InConfig("filter.use_ignore_file") {
		cfg.Filter.UseIgnoreFile = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := initLogger(cfg.BaseConfig)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rules, err := buildRuleSet(&cfg.Filter, root, log)
	if err != nil {
		return err
	}

	builder := tree.NewBuilder(&cfg.Filter, rules, log)
	node, stats, err := builder.Build(root)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		var buf bytes.Buffer
		if err := tree.Render(&buf, node, cfg.Format, false); err != nil {
			return err
		}
		if err := fileutil.SafeWrite(cfg.Output, buf.Bytes(), false); err != nil {
			return errors.NewIOError(fmt.Sprintf("writing %s", cfg.Output), err)
		}
		successColor.Printf("Tree written to %s\n", cfg.Output)
	} else {
		if err := tree.Render(os.Stdout, node, cfg.Format, colorsEnabled()); err != nil {
			return err
		}
	}

	if cfg.Format == tree.FormatText && cfg.Output == "" {
		fmt.Printf("\n%d directories, %d files, %s\n",
			stats.Dirs, stats.Files, fileutil.FormatSize(stats.TotalSize))
	}
	return nil
}
