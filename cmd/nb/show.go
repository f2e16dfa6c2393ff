package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/spf13/cobra"
)

var showMasked bool

func init() {
	showCmd.Flags().BoolVarP(&showMasked, "masked", "m", false, "show the whole document with lines of other cells masked")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a cell",
	Long:  `Print the content of a single cell as an editor scoped to this cell would display it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nb := core.CurrentNotebook()
		projection, err := nb.Project(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if !showMasked {
			fmt.Println(projection.VisibleText)
			return
		}
		dim := color.New(color.Faint).SprintFunc()
		lines, err := formatProjection(nb.Snapshot().Document, projection, dim)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

// formatProjection prefixes each document line with its number and applies dim to masked lines.
func formatProjection(doc *core.Document, projection core.Projection, dim func(a ...any) string) ([]string, error) {
	if doc.LineCount() == 0 {
		return nil, nil
	}
	lines, err := doc.Lines(1, doc.LineCount())
	if err != nil {
		return nil, err
	}
	var result []string
	width := len(fmt.Sprint(doc.LineCount()))
	for i, line := range lines {
		number := i + 1
		formatted := strings.TrimRight(fmt.Sprintf("%*d | %s", width, number, line), " ")
		if projection.IsHidden(number) {
			formatted = dim(formatted)
		}
		result = append(result, formatted)
	}
	return result, nil
}
