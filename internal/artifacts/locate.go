// Package artifacts resolves and fingerprints the model files the service
// loads: the clinical network weights, the fitted scaler and the ECG graph.
package artifacts

import (
	"fmt"
	"os"

	"cardiod/internal/common/fsutil"
)

// Names of the artifacts in a Set.
const (
	MLP    = "mlp"
	Scaler = "scaler"
	ECG    = "ecg"
)

// Files holds artifact file names; relative names resolve against the
// artifacts directory.
type Files struct {
	MLP    string `json:"mlp" yaml:"mlp" toml:"mlp"`
	Scaler string `json:"scaler" yaml:"scaler" toml:"scaler"`
	ECG    string `json:"ecg" yaml:"ecg" toml:"ecg"`
}

// DefaultFiles are the names the export scripts write.
var DefaultFiles = Files{
	MLP:    "global_model.json",
	Scaler: "scaler.json",
	ECG:    "global_model_round_10.onnx",
}

// withDefaults fills empty names from DefaultFiles.
func (f Files) withDefaults() Files {
	if f.MLP == "" {
		f.MLP = DefaultFiles.MLP
	}
	if f.Scaler == "" {
		f.Scaler = DefaultFiles.Scaler
	}
	if f.ECG == "" {
		f.ECG = DefaultFiles.ECG
	}
	return f
}

// Artifact is one resolved file. Err is set when the file is missing or
// unreadable; a Set with missing artifacts is still usable in degraded form.
type Artifact struct {
	Name   string
	Path   string
	Size   int64
	SHA256 string
	Err    error
}

// Present reports whether the file was found and fingerprinted.
func (a Artifact) Present() bool { return a.Err == nil }

// Set is the resolved trio of artifacts.
type Set struct {
	Dir    string
	MLP    Artifact
	Scaler Artifact
	ECG    Artifact
}

// All returns the artifacts in a fixed order.
func (s Set) All() []Artifact { return []Artifact{s.MLP, s.Scaler, s.ECG} }

// Locate resolves files against dir and fingerprints each one. It fails only
// when dir itself cannot be resolved or is not a directory.
func Locate(dir string, files Files) (Set, error) {
	abs, err := fsutil.Resolve("", dir)
	if err != nil {
		return Set{}, err
	}
	if fi, err := os.Stat(abs); err != nil {
		return Set{}, fmt.Errorf("artifacts dir: %w", err)
	} else if !fi.IsDir() {
		return Set{}, fmt.Errorf("artifacts dir: %s is not a directory", abs)
	}
	files = files.withDefaults()
	return Set{
		Dir:    abs,
		MLP:    locateOne(abs, MLP, files.MLP),
		Scaler: locateOne(abs, Scaler, files.Scaler),
		ECG:    locateOne(abs, ECG, files.ECG),
	}, nil
}

func locateOne(dir, name, file string) Artifact {
	a := Artifact{Name: name}
	p, err := fsutil.Resolve(dir, file)
	if err != nil {
		a.Err = err
		return a
	}
	a.Path = p
	fi, err := os.Stat(p)
	if err != nil {
		a.Err = err
		return a
	}
	if fi.IsDir() {
		a.Err = fmt.Errorf("%s is a directory", p)
		return a
	}
	a.Size = fi.Size()
	if a.SHA256, err = fsutil.FileSHA256(p); err != nil {
		a.Err = err
	}
	return a
}
