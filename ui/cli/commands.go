// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/abcu/courseplanner/internal/catalog"
	"github.com/abcu/courseplanner/internal/config"
	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/source"
	"github.com/abcu/courseplanner/internal/ui"
	"github.com/spf13/cobra"
)

// errAuditDisabled is returned by `audit` when no audit store is open.
var errAuditDisabled = errors.New("audit log is disabled or unavailable")

// loadConfiguredCatalog loads the catalog named by catalog.file.
func loadConfiguredCatalog() error {
	path := app.cfg.Catalog.File
	if _, err := app.planner.LoadFile(path); err != nil {
		return fmt.Errorf("%s (%s): %w", i18n.T("catalog.file_not_found"), path, err)
	}
	return nil
}

func writeLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every course sorted by course number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfiguredCatalog(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			table, _ := cmd.Flags().GetBool("table")
			if !table {
				writeLines(out, ui.CourseListLines(app.planner.ListCourses()))
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPREREQUISITES")
			for _, c := range app.planner.Courses() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.PrerequisiteList())
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("table", false, "Print courses as a table including prerequisites")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <course-id>",
		Short: "Print a course and its prerequisites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfiguredCatalog(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c, err := app.planner.DescribeCourse(args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				fmt.Fprintln(out, ui.NotFoundLine(args[0]))
				return nil
			}
			if err != nil {
				return err
			}
			writeLines(out, ui.CourseDetailLines(c))
			return nil
		},
	}
}

func newChainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain <course-id>",
		Short: "Print every direct and indirect prerequisite of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfiguredCatalog(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			chain, err := app.planner.PrerequisiteChain(args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				fmt.Fprintln(out, ui.NotFoundLine(args[0]))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.ChainLine(args[0], chain))
			return nil
		},
	}
}

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.audit == nil {
				return errAuditDisabled
			}
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := app.audit.RecentActions(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("reading audit log: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, i18n.T("audit.empty"))
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, i18n.T("audit.header"))
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Username, e.Action, e.Details)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	return cmd
}

func newPackCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog file utilities",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "pack <input> <output" + source.CompressedExt + ">",
		Short: "Compress a catalog file with zstd",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst := args[1]
			if !source.IsCompressed(dst) {
				dst += source.CompressedExt
			}
			if err := source.Pack(args[0], dst); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
			return nil
		},
	})
	return catalogCmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetBool("system")
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.GetConfigPath(system)
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(path); statErr == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteConfigFileTo(&app.cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("system", false, "Write the system-wide config file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(initCmd)
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, strings.TrimSpace(cmd.Root().Version))
		},
	}
}
