package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brixmarket/brix/internal/normalize"
)

// newGradeCmd creates and returns the grade command
func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <imagefile>",
		Short: "Submit a fruit photo for AI grade measurement",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrade,
	}
}

func runGrade(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("unable to read image: %w", err)
	}

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.UploadGradeImage(ctx, args[0], data)
	if err != nil {
		return err
	}
	saveSession(cl)

	if !resp.OK() {
		return fmt.Errorf("grade measurement failed with status %d", resp.StatusCode)
	}

	result := normalize.NormalizeGradeResult(normalize.ParseEnvelope(resp.Body))
	if jsonOutput {
		printJSON(result)
		return nil
	}
	okLabel.Println("✓ Measurement complete")
	fmt.Printf("  fruit:      %s\n", dash(result.FruitName.String()))
	fmt.Printf("  grade:      %s\n", dash(result.Grade.String()))
	if !result.Sweetness.IsNil() {
		fmt.Printf("  sweetness:  %.1f brix\n", result.Sweetness.Value)
	}
	if !result.Confidence.IsNil() {
		fmt.Printf("  confidence: %.0f%%\n", result.Confidence.Value*100)
	}
	return nil
}
