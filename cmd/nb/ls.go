package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/julien-sobczak/the-notebook/pkg/console"
	"github.com/spf13/cobra"
)

var lsQuery string

func init() {
	lsCmd.Flags().StringVarP(&lsQuery, "jq", "q", "", "filter cells using a jq expression")
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cells",
	Long:  `List the cells of the notebook in document order.`,
	Run: func(cmd *cobra.Command, args []string) {
		nb := core.CurrentNotebook()

		if lsQuery != "" {
			results, err := nb.Query(lsQuery)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			for _, result := range results {
				fmt.Println(formatQueryResult(result))
			}
			return
		}

		infos, err := nb.Describe()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		table := console.NewTable(console.ToWriter(os.Stdout), console.LineLength(120), console.Separator("  "))
		for _, info := range infos {
			table.Append(formatCellRow(info)...)
		}
		table.Flush()
	},
}

func formatCellRow(info core.CellInfo) []string {
	return []string{
		info.ID,
		string(info.Kind),
		info.Range.String(),
		info.Title,
	}
}

func formatQueryResult(result any) string {
	if s, ok := result.(string); ok {
		return s
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprint(result)
	}
	return string(data)
}
