// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dvrtl/grammar"
	"dvrtl/internal/ast"
	"dvrtl/internal/errors"
	"dvrtl/internal/transform"
)

// Version is filled when building with make, but *not* when installing
// via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "dvrtl",
	Short: "A frontend for the dvrtl hardware description language.",
	Long:  "A parser, checker and debugging toolbox for dvrtl circuit designs.",
	Run: func(cmd *cobra.Command, args []string) {
		version, _ := cmd.Flags().GetBool("version")
		if version {
			fmt.Print("dvrtl ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [file.dv]",
	Short: "Parse and resolve a design, reporting any errors.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		start := time.Now()

		circuit := checkFile(args[0])
		log.Debugf("resolved %d top-level statements", len(circuit.Stmts))

		color.Green("Successfully checked %s in %s", args[0], formatDuration(time.Since(start)))
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file.dv]",
	Short: "Parse and resolve a design, printing its canonical form.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		circuit := checkFile(args[0])
		fmt.Print(circuit.String())
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [file.dv]",
	Short: "Print the labeled parse tree of a design.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		source := readSource(args[0])
		tree, err := grammar.Parse(args[0], source)
		if err != nil {
			grammar.ReportParseError(source, err)
			os.Exit(1)
		}
		fmt.Print(tree.Pretty())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(treeCmd)
}

func configureLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func readSource(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}
	return string(source)
}

// checkFile runs the full frontend on one file and exits with formatted
// errors when it does not resolve.
func checkFile(path string) *ast.Circuit {
	source := readSource(path)

	tree, err := grammar.Parse(path, source)
	if err != nil {
		grammar.ReportParseError(source, err)
		os.Exit(1)
	}

	circuit, err := transform.Transform(tree)
	if err != nil {
		reporter := errors.NewReporter(path, source)
		var terr *errors.TransformError
		if stderrors.As(err, &terr) {
			fmt.Print(reporter.Format(terr))
		} else {
			color.Red("%s", err)
		}
		os.Exit(1)
	}
	return circuit
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
