package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardiod/internal/predictor"
	"cardiod/pkg/types"
)

func newPredictCmd() *cobra.Command {
	var clinicalPath, imagePath string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one prediction offline and print the API response",
		Example: "  cardiod predict --clinical patient.json\n" +
			"  cardiod predict --image ecg.png\n" +
			"  cardiod predict --clinical patient.json --image ecg.png",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clinicalPath == "" && imagePath == "" {
				return errors.New("predict requires --clinical, --image or both")
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			svc, err := predictor.New(predictorConfig(cfg, log, nil))
			if err != nil {
				return err
			}
			defer svc.Close()
			applyImageLimit(cfg)

			var data types.ClinicalData
			if clinicalPath != "" {
				b, err := os.ReadFile(clinicalPath)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(b, &data); err != nil {
					return fmt.Errorf("%s: %w", clinicalPath, err)
				}
			}
			var img []byte
			if imagePath != "" {
				if img, err = os.ReadFile(imagePath); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			var out any
			switch {
			case img == nil:
				out, err = svc.PredictClinical(ctx, data)
			case clinicalPath == "":
				out, err = svc.PredictECG(ctx, img)
			default:
				out, err = svc.PredictCombined(ctx, data, img)
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&clinicalPath, "clinical", "", "JSON file with clinical data")
	cmd.Flags().StringVar(&imagePath, "image", "", "ECG image file")
	return cmd
}
