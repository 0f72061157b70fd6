package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hwfuzz/stimgen/pkg/demoisa"
	"github.com/hwfuzz/stimgen/pkg/gen"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	seed            int64
	count           int
	outputPath      string
	constraintsPath string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stimgen",
		Short: "stimgen generates random assembly programs for processor verification",
		Long: `stimgen generates constraint-directed random assembly programs.
A fixed seed always reproduces the exact same program, so any failing
stimulus can be replayed from its seed alone.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var constraints []gen.Constraint
			if constraintsPath != "" {
				var err error
				constraints, err = loadConstraints(constraintsPath)
				if err != nil {
					fmt.Fprintf(errOut, "stimgen: %v\n", err)
					return err
				}
			}

			g := gen.New(demoisa.New(), constraints...)
			prog, err := g.Generate(count, seed)
			if err != nil {
				fmt.Fprintf(errOut, "stimgen: %v\n", err)
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(prog.Render()), 0644); err != nil {
					fmt.Fprintf(errOut, "stimgen: %v\n", err)
					return err
				}
				fmt.Fprintf(errOut, "stimgen: wrote %d instructions to %s (seed %d)\n",
					len(prog.Instructions), outputPath, seed)
				return nil
			}
			fmt.Fprint(out, prog.Render())
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed; equal seeds reproduce equal programs")
	rootCmd.Flags().IntVar(&count, "count", 100, "Number of catalog draws to generate")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the program to a file instead of stdout")
	rootCmd.Flags().StringVarP(&constraintsPath, "constraints", "c", "", "YAML constraints file")

	return rootCmd
}
