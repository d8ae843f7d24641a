// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, loads configuration and builds the
// services every subcommand shares.

package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/abcu/courseplanner/buildvars"
	"github.com/abcu/courseplanner/internal/config"
	"github.com/abcu/courseplanner/internal/core"
	"github.com/abcu/courseplanner/internal/db"
	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/logging"
	"github.com/abcu/courseplanner/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

const modulePath = "github.com/abcu/courseplanner"

// services are built once per invocation by setupDefaultServices.
type services struct {
	cfg     config.Config
	planner *core.Planner
	audit   *db.Store
}

func (s *services) close() {
	if s != nil && s.audit != nil {
		_ = s.audit.Close()
	}
}

// auditReader returns the audit store as a core.AuditReader, or nil when
// auditing is off.
func (s *services) auditReader() core.AuditReader {
	if s.audit == nil {
		return nil
	}
	return s.audit
}

var app *services

// openAudit is swapped in tests.
var openAudit = db.New

func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	explicit, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// First run: persist the defaults so users have a file to edit.
		if path, writeErr := config.WriteConfigFile(&cfg, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	} else if cfg.Log.Level != "" {
		if err := logging.SetLevel(cfg.Log.Level); err != nil {
			logging.Warnf("%v", err)
		}
	}

	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Catalog.File == "" {
		cfg.Catalog.File = config.DefaultCatalogFile
	}
	i18n.Init(cfg.Language)

	s := &services{cfg: cfg}
	var opts []core.Option
	if cfg.Audit.Enabled {
		store, err := openAudit(cfg.Database.Type, cfg.Database.Dsn)
		if err != nil {
			// Auditing is best effort; the planner works without it.
			logging.Warnf("audit log unavailable: %v", err)
		} else {
			s.audit = store
			opts = append(opts, core.WithAudit(store))
		}
	}
	s.planner = core.NewPlanner(opts...)
	app = s
	return nil
}

// Execute runs the CLI entrypoint. The main packages call this function and
// handle process exit.
func Execute() error {
	err := NewRootCmd().Execute()
	// PersistentPostRun is skipped when a command fails.
	app.close()
	return err
}

func applyDefaultFlags(cmd *cobra.Command) {
	// pflag panics on duplicate definitions, so check first.
	if cmd.PersistentFlags().Lookup("catalog.file") == nil {
		cmd.PersistentFlags().String("catalog.file", config.DefaultCatalogFile, "Course catalog file (plain text or .zst)")
	}
	if cmd.PersistentFlags().Lookup("database.type") == nil {
		cmd.PersistentFlags().String("database.type", "sqlite", "Audit database type (sqlite, postgres, mysql)")
	}
	if cmd.PersistentFlags().Lookup("database.dsn") == nil {
		cmd.PersistentFlags().String("database.dsn", "./"+config.AppName+".db", "Audit database connection string (DSN)")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// isTerminal is swapped in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// NewRootCmd creates and configures a new root cobra command. Each call
// returns an independent command tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Courseplanner lists course catalogs and their prerequisites.",
		Long: `Courseplanner loads a flat-text course catalog (ID,Name[,Prerequisite]*)
and lets you list every course in order or look up a single course and its
prerequisites.

Running without a subcommand starts the interactive menu: the TUI on a
terminal, a numbered line menu otherwise (or with --plain).`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")
			if plain || !isTerminal() {
				return NewMenu(app.planner, cmd.InOrStdin(), cmd.OutOrStdout(), app.cfg.Catalog.File).Run()
			}
			return tui.Run(tui.Options{
				Planner:     app.planner,
				CatalogFile: app.cfg.Catalog.File,
				Audit:       app.auditReader(),
			})
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "de")`)
	cmd.Flags().Bool("plain", false, "Use the numbered line menu even on a terminal")
	applyDefaultFlags(cmd)

	cmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newChainCmd(),
		newAuditCmd(),
		newPackCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our version as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
