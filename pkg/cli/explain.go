package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/query"
	"github.com/storyq/storyq/pkg/query/predicate"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <search string>",
		Short: "Print the SQL a search string compiles to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("dialect")

			dialect := predicate.Dialect(name)
			switch dialect {
			case predicate.SQLite, predicate.Postgres, predicate.MySQL, predicate.SQLServer:
			default:
				return fmt.Errorf("unknown dialect %q", name)
			}

			pred, err := query.Compile(searchString(args), identity(cmd, cfg))
			if err != nil {
				return err
			}

			scoped, err := query.Scope(pred)
			if err != nil {
				return err
			}

			sql, vars, err := scoped.SQL(dialect)
			if err != nil {
				return err
			}

			if vars == nil {
				vars = make([]any, 0)
			}

			p := newPrinter(cmd.OutOrStdout())
			if outputFormat(cmd) == "json" {
				return p.json(contract.ExplainQueryResponse{Dialect: name, SQL: sql, Vars: vars})
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- vars: %v\n", vars)

			return nil
		},
	}

	cmd.Flags().StringP("dialect", "d", string(predicate.SQLite), "SQL dialect: sqlite, postgres, mysql or sqlserver")

	return cmd
}
