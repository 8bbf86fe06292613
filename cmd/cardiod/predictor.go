package main

import (
	"github.com/rs/zerolog"

	"cardiod/internal/config"
	"cardiod/internal/ecg"
	"cardiod/internal/predictor"
)

// applyImageLimit installs the decoded-image pixel limit.
func applyImageLimit(cfg config.Config) {
	ecg.SetMaxPixels(cfg.MaxImagePixels)
}

// predictorConfig maps the resolved configuration onto the predictor.
func predictorConfig(cfg config.Config, log zerolog.Logger, rec predictor.Recorder) predictor.Config {
	return predictor.Config{
		ArtifactsDir: cfg.ArtifactsDir,
		Files:        cfg.Files,
		ECG: ecg.RuntimeConfig{
			SharedLibraryPath: cfg.ONNXRuntimeLib,
			InputName:         cfg.ECGInputName,
			OutputName:        cfg.ECGOutputName,
			Threads:           cfg.ECGThreads,
		},
		ECGCacheSize: cfg.ECGCacheSize,
		History:      rec,
		Logger:       log,
	}
}
