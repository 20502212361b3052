package main

import (
	"fmt"
	"strings"

	"github.com/emelianov/fitspipe/internal/pipeline"
	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List available pipeline stage types and their parameters",
	Long: `Prints the catalogue of stage types accepted by --stage
descriptors, along with the parameter keys each one takes.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range pipeline.StageTypes() {
			params := pipeline.Params(name)
			if len(params) == 0 {
				fmt.Println(name)
				continue
			}
			fmt.Printf("%s (%s)\n", name, strings.Join(params, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
