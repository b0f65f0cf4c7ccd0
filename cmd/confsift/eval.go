package main

import (
	"fmt"
	"os"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/eval"
)

// Run executes the eval command.
func (c *EvalCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	samples, skipped, err := eval.LoadSamples(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(deps.Stderr, "Skipped %d lines without valid annotation and prediction\n", skipped)
	}

	m, err := eval.Evaluate(samples)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}

	printMetrics(deps, m)

	if c.Mispredictions != "" {
		mispredictions := eval.Mispredictions(samples)
		out, err := os.Create(c.Mispredictions)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer out.Close()
		if err := eval.WriteMispredictions(out, mispredictions); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nSaved %d mispredictions to %s\n", len(mispredictions), c.Mispredictions)
	}

	return nil
}

func printMetrics(deps *Dependencies, m *eval.Metrics) {
	out := deps.Stdout

	fmt.Fprintf(out, "Samples: %d (%d gibberish, %d useful)\n", m.TotalSamples, m.GibberishTrue, m.UsefulTrue)
	fmt.Fprintf(out, "Accuracy: %.4f\n", m.Accuracy)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-18s %-10s %-10s %-10s %s\n", "Class", "Precision", "Recall", "F1", "Support")
	fmt.Fprintf(out, "%-18s %-10.4f %-10.4f %-10.4f %d\n", "Gibberish (yes)",
		m.Gibberish.Precision, m.Gibberish.Recall, m.Gibberish.F1, m.Gibberish.Support)
	fmt.Fprintf(out, "%-18s %-10.4f %-10.4f %-10.4f %d\n", "Useful (no)",
		m.Useful.Precision, m.Useful.Recall, m.Useful.F1, m.Useful.Support)
	fmt.Fprintf(out, "%-18s %-10.4f %-10.4f %-10.4f %d\n", "Macro avg",
		m.Macro.Precision, m.Macro.Recall, m.Macro.F1, m.Macro.Support)
	fmt.Fprintf(out, "%-18s %-10.4f %-10.4f %-10.4f %d\n", "Weighted avg",
		m.Weighted.Precision, m.Weighted.Recall, m.Weighted.F1, m.Weighted.Support)
	fmt.Fprintln(out)

	cm := m.Confusion
	fmt.Fprintln(out, "Confusion matrix (rows actual, cols predicted):")
	fmt.Fprintf(out, "%-18s %-14s %s\n", "", "Useful (no)", "Gibberish (yes)")
	fmt.Fprintf(out, "%-18s %-14d %d\n", "Useful (no)", cm.TrueNegatives, cm.FalsePositives)
	fmt.Fprintf(out, "%-18s %-14d %d\n", "Gibberish (yes)", cm.FalseNegatives, cm.TruePositives)
}
