package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardiod/internal/config"
)

// envKey maps a flag name to its environment variable, e.g. artifacts-dir ->
// CARDIOD_ARTIFACTS_DIR.
func envKey(flag string) string {
	return "CARDIOD_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func envString(flag, def string) string {
	if v := os.Getenv(envKey(flag)); v != "" {
		return v
	}
	return def
}

func envInt(flag string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(envKey(flag))); err == nil {
		return n
	}
	return def
}

func envBool(flag string) bool {
	b, _ := strconv.ParseBool(os.Getenv(envKey(flag)))
	return b
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardiod",
		Short:         "Heart disease prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", envString("config", ""), "Config file (.yaml, .yml, .json, .toml)")
	pf.String("artifacts-dir", envString("artifacts-dir", ""), "Directory holding model artifacts (default .)")
	pf.String("mlp-file", envString("mlp-file", ""), "Clinical network weights, relative to the artifacts dir")
	pf.String("scaler-file", envString("scaler-file", ""), "Fitted scaler, relative to the artifacts dir")
	pf.String("ecg-file", envString("ecg-file", ""), "ECG graph, relative to the artifacts dir")
	pf.String("onnxruntime-lib", envString("onnxruntime-lib", ""), "Path to libonnxruntime")
	pf.Int("ecg-threads", envInt("ecg-threads", 0), "Intra-op threads for the ECG runtime (0=default)")
	pf.Int64("max-image-pixels", int64(envInt("max-image-pixels", 0)), "Largest accepted image width*height (0=default ~179M)")
	pf.String("log-level", envString("log-level", ""), "Log level: debug|info|warn|error")
	pf.String("log-format", envString("log-format", ""), "Log format: console|json")
	pf.String("log-file", envString("log-file", ""), "Also write logs to this rotated file")

	root.AddCommand(newServeCmd(), newCheckCmd(), newPredictCmd())
	return root
}

// resolveConfig layers defaults, the config file, then environment variables
// and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	fs := cmd.Flags()
	var cfg config.Config
	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	set := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && (f.Changed || os.Getenv(envKey(name)) != "")
	}
	str := func(name string, dst *string) {
		if set(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if set(name) {
			*dst, _ = fs.GetInt(name)
		}
	}
	num64 := func(name string, dst *int64) {
		if set(name) {
			*dst, _ = fs.GetInt64(name)
		}
	}
	flag := func(name string, dst *bool) {
		if set(name) {
			*dst, _ = fs.GetBool(name)
		}
	}

	str("addr", &cfg.Addr)
	str("artifacts-dir", &cfg.ArtifactsDir)
	str("mlp-file", &cfg.Files.MLP)
	str("scaler-file", &cfg.Files.Scaler)
	str("ecg-file", &cfg.Files.ECG)
	str("onnxruntime-lib", &cfg.ONNXRuntimeLib)
	num("ecg-threads", &cfg.ECGThreads)
	num("ecg-cache-size", &cfg.ECGCacheSize)
	num64("max-image-pixels", &cfg.MaxImagePixels)
	str("history-db", &cfg.HistoryDB)
	flag("watch", &cfg.Watch)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("log-file", &cfg.LogFile)
	str("request-log", &cfg.RequestLog)
	flag("cors-disabled", &cfg.CORSDisabled)
	if set("cors-origins") {
		v, _ := fs.GetString("cors-origins")
		cfg.CORSOrigins = splitCSV(v)
	}
	num64("max-body-bytes", &cfg.MaxBodyBytes)
	num64("max-upload-bytes", &cfg.MaxUploadBytes)
	num("predict-timeout-seconds", &cfg.PredictTimeoutSeconds)

	cfg = cfg.WithDefaults()
	return cfg, cfg.Validate()
}
