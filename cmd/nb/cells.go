package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/spf13/cobra"
)

var insertAfter string
var insertKind string
var insertFile string
var rmKeepLines bool

func init() {
	insertCmd.Flags().StringVarP(&insertAfter, "after", "a", "", "id of the cell preceding the new cell (empty to insert at the top)")
	insertCmd.Flags().StringVarP(&insertKind, "kind", "k", "code", "kind of the new cell (code, markdown)")
	insertCmd.Flags().StringVarP(&insertFile, "file", "f", "", "file containing the content of the new cell (- for standard input)")
	rmCmd.Flags().BoolVarP(&rmKeepLines, "keep-lines", "k", false, "give the lines to a neighbor cell instead of deleting them")

	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(convertCmd)
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a new cell",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := core.ParseKind(insertKind)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		var content string
		if insertFile != "" {
			content, err = readInput(insertFile)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			content = strings.TrimSuffix(content, "\n")
		}
		cell, err := core.CurrentNotebook().InsertCell(insertAfter, kind, content)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
		fmt.Println(cell.ID)
	},
}

var splitCmd = &cobra.Command{
	Use:   "split ID LINE",
	Short: "Split a cell in two",
	Long:  `Split a cell before the given line. Lines are numbered from 1 inside the cell. The new cell starts at this line.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		at, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Invalid line %q\n", args[1])
			os.Exit(1)
		}
		nb := core.CurrentNotebook()
		cell, err := nb.Cell(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		newCell, err := nb.SplitCell(cell.ID, at, cell.Kind)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
		fmt.Println(newCell.ID)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge ID",
	Short: "Merge a cell with the next one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cell, err := core.CurrentNotebook().MergeCells(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
		fmt.Printf("%s %s\n", cell.ID, cell.Range)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a cell",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := core.CurrentNotebook().DeleteCell(args[0], rmKeepLines); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert ID KIND",
	Short: "Change the kind of a cell",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := core.ParseKind(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if _, err := core.CurrentNotebook().ConvertCell(args[0], kind); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		save()
	},
}
