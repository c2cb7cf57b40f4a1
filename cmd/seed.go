package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DachengChen/askSQL/applog"
	"github.com/DachengChen/askSQL/db"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the STUDENT table and insert sample rows if it is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := db.NewStore(appCfg.DBPath)

		var (
			inserted int
			err      error
		)
		if seedReset {
			inserted, err = store.Reset(cmd.Context())
		} else {
			inserted, err = store.Setup(cmd.Context())
		}
		if err != nil {
			return err
		}
		applog.Info("seed", "db", store.Path(), "inserted", inserted, "reset", seedReset)

		out := cmd.OutOrStdout()
		if inserted > 0 {
			fmt.Fprintf(out, "Database populated with sample data (%d rows) in %s.\n", inserted, store.Path())
			return nil
		}

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s already has %d rows; nothing inserted.\n", db.TableName, n)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "drop the table and seed it again")
	rootCmd.AddCommand(seedCmd)
}
