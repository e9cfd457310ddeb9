// Command crossval evaluates a linear SVM on a dataset
// with hold-out and k-fold cross-validation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crossval",
		Short:         "cross-validate a linear SVM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addPersistentFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(holdoutCMD(), scoreCMD(), foldsCMD())
	return rootCmd
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "config file path")
	flags.StringP("data", "d", "", "CSV dataset, iris if empty")
	flags.Float64("cost", 1, "SVM misclassification cost")
	flags.Int64("seed", 0, "random seed")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
