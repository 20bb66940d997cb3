package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lungviz",
	Short: "Smoking lung-health visualizer",
	Long:  "Computes a lung health score from smoking habits, renders the matching lung illustration and serves cessation advice over HTTP.",
	RunE:  runServe,
	// Errors are printed once by main.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
