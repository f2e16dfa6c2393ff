package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/spf13/cobra"
)

var editFile string
var editDryRun bool

func init() {
	editCmd.Flags().StringVarP(&editFile, "file", "f", "-", "file containing the new content of the cell (- for standard input)")
	editCmd.Flags().BoolVarP(&editDryRun, "dry-run", "n", false, "only show the resulting changes")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Replace the content of a cell",
	Long:  `Replace the content of a cell and shift the following cells accordingly.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		content, err := readInput(editFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Editors append a final newline that is not part of the cell
		content = strings.TrimSuffix(content, "\n")

		nb := core.CurrentNotebook()
		diff, err := nb.PreviewEdit(id, content)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if diff == "" {
			fmt.Println("Nothing to change")
			return
		}
		printDiff(diff)
		if editDryRun {
			return
		}

		if _, err := nb.ApplyEdit(id, content); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else {
			println(line)
		}
	}
}
