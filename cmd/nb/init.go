package main

import (
	"fmt"
	"os"

	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/spf13/cobra"
)

var initDetect string
var initDocument string

func init() {
	initCmd.Flags().StringVarP(&initDetect, "detect", "d", "markers", "method to find the initial cells (markers, fences, single)")
	initCmd.Flags().StringVarP(&initDocument, "document", "f", "main.lean", "document to edit")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Init a notebook",
	Long:  `Create the .nb directory and the initial layout of the document.`,
	Run: func(cmd *cobra.Command, args []string) {
		detection, err := core.ParseDetection(initDetect)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if _, err := core.InitConfigFromDirectory(cwd, initDocument, detection); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Detect and persist the layout
		save()
		fmt.Printf("Initialized notebook with %d cell(s)\n", len(core.CurrentNotebook().Cells()))
	},
}
