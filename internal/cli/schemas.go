package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/atinylittleshell/intellicomp/internal/autogenerate"
	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/atinylittleshell/intellicomp/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSyncCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Update the schema directory from the schema repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Sync(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Schemas up to date in %s\n", ui.SymbolOK, ui.Accent.Render(a.cfg.SchemaDir))
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store().List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No schemas in %s. Run %s to fetch them.\n",
					ui.Accent.Render(a.cfg.SchemaDir), ui.Bold.Render("intellicomp sync"))
				return nil
			}

			width := 0
			for _, entry := range entries {
				width = max(width, len(entry.Name))
			}

			for _, entry := range entries {
				name := ui.Column(ui.AccentBold, entry.Name, width+2)
				cmdSchema, err := schema.Load(entry.Path)
				if err != nil {
					a.logger.Warn("invalid schema", zap.String("path", entry.Path), zap.Error(err))
					fmt.Fprintf(out, "%s%s\n", name, ui.Error.Render(ui.SymbolWarning+" invalid: "+err.Error()))
					continue
				}
				counts := ui.Column(ui.Muted,
					strconv.Itoa(len(cmdSchema.KeywordArguments))+" keyword, "+
						strconv.Itoa(len(cmdSchema.PositionalArguments))+" positional", 26)
				fmt.Fprintf(out, "%s%s%s\n", name, counts, cmdSchema.Description)
			}
			return nil
		},
	}
}

func newAutogenerateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "autogenerate <completion-file> <output-dir>",
		Short: "Generate schemas from an existing fish completion script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := autogenerate.GenerateFile(args[0], args[1], a.logger)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.SymbolOK, ui.Accent.Render(path))
			}
			return nil
		},
	}
}

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema describing schema files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schema.JSONSchema())
		},
	}
}
