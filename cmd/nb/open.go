package main

import (
	"fmt"
	"os"

	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Edit the notebook interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		nb := core.CurrentNotebook()
		revision := nb.Revision()
		if err := EditNotebook(nb, core.CurrentConfig().Strategy()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if nb.Revision() != revision {
			save()
		}
	},
}
