package cli

import (
	"fmt"
	"strconv"

	"github.com/atinylittleshell/intellicomp/internal/completion"
	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/atinylittleshell/intellicomp/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompleteCommand(a *app) *cobra.Command {
	var (
		line  string
		point int
	)

	cmd := &cobra.Command{
		Use:   "complete <shell> <schema> [-- words...]",
		Short: "Print completion candidates for a command line",
		Long: `Print the completion candidates for the word under the cursor, one per line.

Shells call this from their completion hooks. For bash and zsh the line and
cursor are read from COMP_LINE and COMP_POINT unless --line and --point are
given. The schema is a file path or the name of a command in the schema
directory. Anything after -- is ignored.`,
		Args:               cobra.MinimumNArgs(2),
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := completeRequest{
				shellName:  args[0],
				schema:     args[1],
				line:       line,
				lineGiven:  cmd.Flags().Changed("line"),
				point:      point,
				pointGiven: cmd.Flags().Changed("point"),
			}
			candidates, err := a.complete(req)
			if err != nil {
				a.logger.Error("completion failed",
					zap.String("shell", req.shellName),
					zap.String("schema", req.schema),
					zap.Error(err),
				)
				return fmt.Errorf("%w: %w", errCompletionFailed, err)
			}

			out := cmd.OutOrStdout()
			for _, candidate := range candidates {
				fmt.Fprintln(out, candidate)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "Command line to complete (default $COMP_LINE)")
	cmd.Flags().IntVar(&point, "point", 0, "Cursor offset in bytes (default $COMP_POINT, or the end of the line)")
	return cmd
}

type completeRequest struct {
	shellName string
	schema    string

	line       string
	lineGiven  bool
	point      int
	pointGiven bool
}

func (a *app) complete(req completeRequest) ([]string, error) {
	sh, err := shell.Parse(req.shellName)
	if err != nil {
		return nil, err
	}

	line, point, err := a.cursor(sh, req)
	if err != nil {
		return nil, err
	}

	path, err := a.store().Resolve(req.schema)
	if err != nil {
		return nil, err
	}
	cmd, err := schema.Load(path)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("completing",
		zap.String("shell", string(sh)),
		zap.String("schema", path),
		zap.String("line", line),
		zap.Int("point", point),
	)

	resolver := completion.NewResolver(cmd, completion.WithLogger(a.logger))
	return resolver.GenerateCompletions(line, point)
}

// cursor works out the line and cursor offset, preferring flags over the
// variables bash-style completion sets.
func (a *app) cursor(sh shell.Shell, req completeRequest) (string, int, error) {
	line := req.line
	if !req.lineGiven {
		if sh != shell.Bash && sh != shell.Zsh {
			return "", 0, fmt.Errorf("--line is required for %s", sh)
		}
		line = a.getenv("COMP_LINE")
	}

	if req.pointGiven {
		return line, req.point, nil
	}
	raw := a.getenv("COMP_POINT")
	if req.lineGiven || raw == "" {
		return line, len(line), nil
	}
	point, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("invalid COMP_POINT %q: %w", raw, err)
	}
	return line, point, nil
}
