package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cardiod/internal/predictor"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   "Load the artifacts and report whether every endpoint can be served",
		Example: "  cardiod check --artifacts-dir ./artifacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			svc, err := predictor.New(predictorConfig(cfg, log.Level(zerolog.WarnLevel), nil))
			if err != nil {
				return err
			}
			defer svc.Close()

			rep := svc.SanityCheck()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
			if !rep.OK {
				return fmt.Errorf("artifacts not fully usable: state=%s", rep.State)
			}
			return nil
		},
	}
}
