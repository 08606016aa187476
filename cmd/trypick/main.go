package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gubarz/trypick/internal/config"
	"github.com/gubarz/trypick/internal/corpus"
	"github.com/gubarz/trypick/internal/logging"
	"github.com/gubarz/trypick/internal/output"
	"github.com/gubarz/trypick/internal/tui"
	"github.com/gubarz/trypick/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print tries ranked for a query",
	Long: `Prints the tries directory ranked the same way the picker ranks it,
one entry per line with its age and score. Useful in scripts and pipes.`,
	RunE: runList,
}

var rootCmd = &cobra.Command{
	Use:   "trypick [query]",
	Short: "Fuzzy picker for experiment directories",
	Long: `Interactive selector for a directory of dated experiments.

Type to filter, pick a directory with Enter, or create a new
dated one from the query. The chosen path is printed, copied
or opened in a shell.`,
	RunE: runPick,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(listCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("path", "", "Tries directory (default ~/src/tries)")
	flags.StringP("output", "o", "", "Output mode: print, copy, exec")
	flags.Bool("print", false, "Print the path (shorthand for -o print)")
	flags.Bool("copy", false, "Copy the path (shorthand for -o copy)")
	flags.Bool("exec", false, "Open a shell in the directory (shorthand for -o exec)")
	flags.Int("width", 0, "Fixed screen width, 0 asks the terminal")
	flags.Int("height", 0, "Fixed screen height, 0 asks the terminal")
	flags.Bool("no-colors", false, "Disable colors")
	flags.String("wide", "", "Width policy for wide characters: emoji, eastasian")
	flags.Int("limit", 0, "Show at most this many matches, 0 for all")
	flags.String("log-file", "", "Write debug logs to this file")

	viper.BindPFlag("path", flags.Lookup("path"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("width", flags.Lookup("width"))
	viper.BindPFlag("height", flags.Lookup("height"))
	viper.BindPFlag("wide", flags.Lookup("wide"))
	viper.BindPFlag("limit", flags.Lookup("limit"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// applyFlags folds the shorthand flags into the config
func applyFlags(cmd *cobra.Command) {
	if p, _ := cmd.Flags().GetBool("print"); p {
		config.SetOutput("print")
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput("copy")
	} else if e, _ := cmd.Flags().GetBool("exec"); e {
		config.SetOutput("exec")
	}

	if nc, _ := cmd.Flags().GetBool("no-colors"); nc {
		config.SetColors(false)
	}
}

func runPick(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	mode, err := output.ParseMode(config.GetOutput())
	if err != nil {
		return err
	}
	policy, err := tui.ParseWidthPolicy(config.GetWide())
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(config.GetLogFile())
	if err != nil {
		return err
	}
	defer closer.Close()

	root := config.GetPath()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create tries directory: %w", err)
	}

	start := time.Now()
	dirs, err := corpus.Scan(root, start)
	if err != nil {
		return err
	}
	logger.Info("scanned tries", "root", root, "dirs", len(dirs), "elapsed", time.Since(start))

	sel, err := ui.Run(dirs, ui.Options{
		Root:   root,
		Query:  strings.Join(args, " "),
		Limit:  config.GetLimit(),
		Width:  config.GetWidth(),
		Height: config.GetHeight(),
		Colors: config.GetColors(),
		Policy: policy,
		Logger: logger,
		Now:    time.Now,
	})
	if err != nil {
		return err
	}
	if sel == nil {
		logger.Info("cancelled")
		return nil
	}

	path := ""
	if sel.NewName != "" {
		path, err = corpus.Create(root, sel.NewName, time.Now())
		if err != nil {
			return err
		}
		logger.Info("created try", "path", path)
	} else {
		path = sel.Dir.Path
	}

	return output.New(os.Stdout, config.GetShell()).
		WithLogger(logger).
		Emit(path, mode)
}

func runList(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	now := time.Now()
	dirs, err := corpus.Scan(config.GetPath(), now)
	if err != nil {
		return err
	}

	styles := ui.PlainStyles()
	if config.GetColors() {
		styles = ui.DefaultStyles(os.Stdout)
	}
	return ui.List(os.Stdout, dirs, strings.Join(args, " "), config.GetLimit(), now, styles)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
