// Package classify implements the one-shot classification command.
package classify

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/fluwatch/fluwatch-go/internal/conf"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/errors"
	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// Command returns the classify command. Readings are passed as flags; an
// omitted flag means the reading is unavailable.
func Command(settings *conf.Settings) *cobra.Command {
	var head, bodyMean, bodyMin, bodyMax, leg, confidence float64

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single set of thermal readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := thermal.ReadingSet{
				Head:       flagValue(cmd, "head", head),
				BodyMean:   flagValue(cmd, "body-mean", bodyMean),
				BodyMin:    flagValue(cmd, "body-min", bodyMin),
				BodyMax:    flagValue(cmd, "body-max", bodyMax),
				Leg:        flagValue(cmd, "leg", leg),
				Confidence: flagValue(cmd, "confidence", confidence),
			}
			return runClassify(cmd, settings, rs)
		},
	}

	cmd.Flags().Float64Var(&head, "head", math.NaN(), "Head temperature in °C")
	cmd.Flags().Float64Var(&bodyMean, "body-mean", math.NaN(), "Mean body temperature in °C")
	cmd.Flags().Float64Var(&bodyMin, "body-min", math.NaN(), "Minimum body temperature in °C")
	cmd.Flags().Float64Var(&bodyMax, "body-max", math.NaN(), "Maximum body temperature in °C")
	cmd.Flags().Float64Var(&leg, "leg", math.NaN(), "Leg temperature in °C")
	cmd.Flags().Float64Var(&confidence, "confidence", math.NaN(), "Detector confidence in [0,1]")
	return cmd
}

// flagValue converts a set flag into a reading pointer, nil when unset.
func flagValue(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) || math.IsNaN(v) {
		return nil
	}
	return thermal.Float(v)
}

func runClassify(cmd *cobra.Command, settings *conf.Settings, rs thermal.ReadingSet) error {
	if err := rs.Validate(); err != nil {
		return err
	}

	engine := diagnosis.NewEngine(diagnosis.ThresholdsFromSettings(settings.Detection))
	verdict := engine.Classify(rs)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Verdict: %s\n", verdict)

	if verdict == diagnosis.DetectionFailed {
		return errors.Newf("analysis failed, no usable readings").
			Component("classify").
			Category(errors.CategoryClassification).
			Build()
	}

	explanation := engine.Explain(verdict, rs)
	fmt.Fprintln(out, "\nObserved signs:")
	for _, sign := range explanation.ObservedSigns {
		fmt.Fprintf(out, "  - %s\n", sign)
	}
	fmt.Fprintf(out, "\nInterpretation:\n  %s\n", explanation.Interpretation)
	fmt.Fprintln(out, "\nRecommended actions:")
	for _, action := range explanation.RecommendedActions {
		fmt.Fprintf(out, "  - %s\n", action)
	}
	return nil
}
