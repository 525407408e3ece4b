package bub

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/bub/internal/version"
	"github.com/arthur-debert/bub/pkg/cobrax/topics"
	"github.com/arthur-debert/bub/pkg/config"
	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/filesystem"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/planner"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/arthur-debert/bub/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the root command's flag values
type options struct {
	verbosity      int
	target         string
	ignore         []string
	include        []string
	linkRoot       bool
	linkType       types.LinkType
	ifTargetExists types.ConflictStrategy
	saveConfig     bool
	saveOSConfig   bool
	dryRun         bool
	color          ui.ColorMode
	format         ui.Format
	noCreateDirs   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "bub [flags] PACKAGE...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgErrNoPackages)
			}
			return run(cmd, opts, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	bindFlags(rootCmd.Flags(), opts)
	_ = rootCmd.MarkFlagDirname("target")

	_ = rootCmd.RegisterFlagCompletionFunc("link-type", fixedCompletion(types.LinkTypeNames()))
	_ = rootCmd.RegisterFlagCompletionFunc("if-target-exists", fixedCompletion(types.ConflictStrategyNames()))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletion([]string{"always", "auto", "never"}))
	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletion([]string{"auto", "term", "text", "json"}))

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicOpts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.Initialize(rootCmd, helpTopics(), topicOpts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// bindFlags registers the unboxing flags on flags
func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.target, "target", "t", "", MsgFlagTarget)
	flags.StringArrayVarP(&opts.ignore, "ignore", "i", nil, MsgFlagIgnore)
	flags.StringArrayVarP(&opts.include, "include", "I", nil, MsgFlagInclude)
	flags.BoolVarP(&opts.linkRoot, "link-root", "r", false, MsgFlagLinkRoot)
	flags.VarP(&opts.linkType, "link-type", "l", MsgFlagLinkType)
	flags.VarP(&opts.ifTargetExists, "if-target-exists", "e", MsgFlagIfTargetExists)
	flags.BoolVarP(&opts.saveConfig, "save-config", "s", false, MsgFlagSaveConfig)
	flags.BoolVarP(&opts.saveOSConfig, "save-os-config", "o", false, MsgFlagSaveOSConfig)
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	flags.Var(&opts.color, "color", MsgFlagColor)
	flags.Var(&opts.format, "format", MsgFlagFormat)
	flags.BoolVar(&opts.noCreateDirs, "no-create-dirs", false, MsgFlagNoCreateDirs)
	_ = flags.MarkHidden("no-create-dirs")
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "bub version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// run unboxes each package in order, stopping at the first failure
func run(cmd *cobra.Command, opts *options, args []string) error {
	logger := logging.GetLogger("cmd")

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	ov, err := buildOverrides(cmd, opts, settings)
	if err != nil {
		return err
	}

	renderer, format, err := newRenderer(cmd, opts, settings)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	for _, arg := range args {
		pkg, err := packagePath(arg)
		if err != nil {
			return err
		}

		logger.Info().
			Str("package", pkg).
			Bool("dry_run", opts.dryRun).
			Str("strategy", ov.ConflictStrategy.String()).
			Msg("Unboxing package")

		if err := unbox(fsys, renderer, pkg, ov, opts); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), MsgErrPackage, paths.ReplaceHomeWithTilde(pkg)).
				WithDetail("package", pkg)
		}
	}

	if opts.dryRun && format != ui.FormatJSON {
		return renderer.RenderMessage(MsgDryRunNotice)
	}
	return nil
}

func unbox(fsys types.FS, renderer ui.Renderer, pkg string, ov config.Overrides, opts *options) error {
	if opts.saveConfig || opts.saveOSConfig {
		if err := saveConfig(fsys, renderer, pkg, ov, opts); err != nil {
			return err
		}
	}

	plan, err := planner.Plan(fsys, pkg, ov)
	if err != nil {
		return err
	}

	if err := renderer.RenderPlan(plan); err != nil {
		return err
	}
	if opts.dryRun {
		return nil
	}

	result, err := executor.New(fsys).Execute(plan)
	if err != nil {
		return err
	}
	return renderer.RenderResult(pkg, result)
}

// saveConfig writes the package's effective root config. The OS specific
// descriptor is written first.
func saveConfig(fsys types.FS, renderer ui.Renderer, pkg string, ov config.Overrides, opts *options) error {
	cfg, err := config.Resolve(fsys, pkg, ov)
	if err != nil {
		return err
	}

	if opts.saveOSConfig {
		path, err := cfg.SaveOS(fsys)
		if err != nil {
			return err
		}
		if err := renderer.RenderMessage(fmt.Sprintf(MsgSavedConfig, paths.ReplaceHomeWithTilde(path))); err != nil {
			return err
		}
	}
	if opts.saveConfig {
		path, err := cfg.Save(fsys)
		if err != nil {
			return err
		}
		if err := renderer.RenderMessage(fmt.Sprintf(MsgSavedConfig, paths.ReplaceHomeWithTilde(path))); err != nil {
			return err
		}
	}
	return nil
}

// buildOverrides turns explicitly given flags into config overrides and
// fills run-wide policy from settings where no flag was given.
func buildOverrides(cmd *cobra.Command, opts *options, settings *config.Settings) (config.Overrides, error) {
	flags := cmd.Flags()
	ov := config.DefaultOverrides()

	if flags.Changed("target") {
		target, err := paths.Expand(opts.target)
		if err != nil {
			return ov, err
		}
		ov.Target = &target
	}
	if flags.Changed("link-root") {
		ov.LinkRoot = &opts.linkRoot
	}
	if flags.Changed("link-type") {
		ov.LinkType = &opts.linkType
	}
	ov.ExcludePatterns = opts.ignore
	ov.IncludePatterns = opts.include

	ov.ConflictStrategy = settings.IfTargetExists
	if flags.Changed("if-target-exists") {
		ov.ConflictStrategy = opts.ifTargetExists
	}
	ov.CreateMissingDirs = settings.CreateDirs && !opts.noCreateDirs

	return ov, nil
}

// newRenderer settles the output format from flags, settings and the
// terminal, in that order.
func newRenderer(cmd *cobra.Command, opts *options, settings *config.Settings) (ui.Renderer, ui.Format, error) {
	flags := cmd.Flags()

	color := opts.color
	if !flags.Changed("color") {
		parsed, err := ui.ParseColorMode(settings.Color)
		if err != nil {
			return nil, ui.FormatAuto, err
		}
		color = parsed
	}

	format := opts.format
	if !flags.Changed("format") {
		parsed, err := ui.ParseFormat(settings.Format)
		if err != nil {
			return nil, ui.FormatAuto, err
		}
		format = parsed
	}

	out := cmd.OutOrStdout()
	detected := ui.FormatText
	if file, ok := out.(*os.File); ok {
		detected = ui.DetectFormat(file)
	}
	format = color.Apply(format, detected)

	renderer, err := ui.NewRenderer(format, out)
	return renderer, format, err
}

// packagePath expands and canonicalizes a package argument. A path that
// cannot be resolved is returned as is and reported by the planner.
func packagePath(arg string) (string, error) {
	pkg, err := paths.Expand(arg)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(pkg); err == nil {
		return resolved, nil
	}
	return pkg, nil
}
