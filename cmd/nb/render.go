package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julien-sobczak/the-notebook/internal/core"
	"github.com/julien-sobczak/the-notebook/pkg/markdown"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var renderOutput string
var renderOpen bool

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "HTML file to write (default: standard output)")
	renderCmd.Flags().BoolVarP(&renderOpen, "open", "", false, "open the rendered file in the browser")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the notebook as HTML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		html, err := core.CurrentNotebook().RenderHTML(core.MarkdownRendererFunc(markdown.RenderToSafeHTML), config.ConfigFile.Core.Language)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if renderOutput == "" && !renderOpen {
			fmt.Print(html)
			return
		}

		output := renderOutput
		if output == "" {
			output = filepath.Join(config.RootDirectory, ".nb", "notebook.html")
		}
		output, err = filepath.Abs(output)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := os.WriteFile(output, []byte(html), 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		core.CurrentLogger().Infof("Rendered %s", output)

		if renderOpen {
			url := "file://" + filepath.ToSlash(output)
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "Unable to browse to %s: %v", url, err)
				os.Exit(1)
			}
		}
	},
}
