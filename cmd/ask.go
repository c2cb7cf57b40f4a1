package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/DachengChen/askSQL/ai"
	"github.com/DachengChen/askSQL/assistant"
	"github.com/DachengChen/askSQL/db"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Translate one question into SQL, run it and print the rows",
	Example: `  asksql ask "How many students are there in total?"
  asksql ask --provider ollama "Show me all the students in section A"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	store := db.NewStore(appCfg.DBPath)
	if _, err := store.Setup(ctx); err != nil {
		return fmt.Errorf("setup database: %w", err)
	}

	provider, err := ai.NewProvider(appCfg.AI)
	if err != nil {
		return report(errOut, err)
	}

	a := assistant.New(provider, store, appCfg.Timeout())
	ans, err := a.Ask(ctx, strings.Join(args, " "))
	if ans != nil {
		fmt.Fprintln(out, ans.SQL)
		fmt.Fprintln(out)
	}
	if err != nil {
		return report(errOut, err)
	}

	renderTable(out, ans.Result)
	return nil
}

// report prints the user-facing description of err.
func report(w io.Writer, err error) error {
	title, hint := assistant.Describe(err)
	fmt.Fprintln(w, title)
	if hint != "" {
		fmt.Fprintln(w, hint)
	}
	return fmt.Errorf("%w: %v", errReported, err)
}

// renderTable prints a query result as an ASCII table followed by its status.
func renderTable(w io.Writer, r *db.QueryResult) {
	if r == nil {
		return
	}
	if len(r.Columns) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(true)
		table.SetHeader(r.Columns)
		table.AppendBulk(r.Rows)
		table.Render()
	}
	fmt.Fprintln(w, r.Status)
}
