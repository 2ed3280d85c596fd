package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/friday/internal/site"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output string
}

// BuildResult is the JSON payload of a successful build.
type BuildResult struct {
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the standalone widget page",
		Long: `Render the stylesheet, compile the browser script and write a single
HTML page.

Exit codes:
  0 - Page written
  1 - Script failed to compile
  2 - Command error (invalid config, unusable widget, unwritable output)

Examples:
  friday build
  friday build -o public/index.html
  friday build --config berlin.cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", site.DefaultOutput, "output file path")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadSite(f)
	if err != nil {
		return err
	}

	page, err := site.Build(cfg)
	if errors.Is(err, site.ErrWidget) {
		return f.Fail(ExitCommandError, ErrCodeWidget, "check widget", err)
	}
	if errors.Is(err, site.ErrScriptCompile) {
		return f.Fail(ExitFailure, ErrCodeScript, "compile script", err)
	}
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, "render page", err)
	}
	f.VerboseLog("rendered %d rule(s), %d byte(s)", len(cfg.Style), len(page))

	if err := os.WriteFile(opts.Output, page, 0o644); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, "write "+opts.Output, err)
	}

	return f.Success(BuildResult{Output: opts.Output, Bytes: len(page)},
		fmt.Sprintf("✓ Built %s (%d bytes)", opts.Output, len(page)))
}
