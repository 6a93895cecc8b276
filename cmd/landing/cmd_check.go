package main

import (
	"fmt"
	"text/tabwriter"

	"atc-landing/internal/scenario"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [scenario-file]",
	Short: "Check scenarios against their expected decisions",
	Long: `Runs every scenario in a YAML file through the landing engine and compares
the outcome, and the message when one is given, with the expectation.

Exits non-zero when any scenario fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var coverageCmd = &cobra.Command{
	Use:   "coverage [scenario-file]",
	Short: "Report condition coverage of a scenario file",
	Long: `Reports, for every input, derived condition and approval predicate, how many
scenarios drive it true and how many drive it false, plus any decision path
the file never reaches.

Exits non-zero when coverage is incomplete.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoverage,
}

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	report := f.Run(newEngine())
	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		if res.Passed {
			fmt.Fprintf(out, "PASS  %s\n", res.Scenario.Name)
			continue
		}
		fmt.Fprintf(out, "FAIL  %s: %s\n", res.Scenario.Name, res.Mismatch)
	}

	failed := report.Failed()
	fmt.Fprintf(out, "%d scenarios, %d failed\n", len(report.Results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(report.Results))
	}
	return nil
}

func runCoverage(cmd *cobra.Command, args []string) error {
	f, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	cov := f.Coverage()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTRUE\tFALSE\tCOVERED")
	for _, row := range cov.Report() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", row.Name, row.TrueSeen, row.FalseSeen, row.Covered())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	missing := cov.Missing()
	if len(missing) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d scenarios, coverage complete\n", cov.Total())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d scenarios, %d gaps:\n", cov.Total(), len(missing))
	for _, m := range missing {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", m)
	}
	return fmt.Errorf("coverage incomplete: %d gaps", len(missing))
}
