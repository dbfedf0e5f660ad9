package adaptive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestModelFile_RoundTrip(t *testing.T) {
	res := Train(DefaultTrainerConfig())
	path := filepath.Join(t.TempDir(), "model.json")

	if err := SaveModel(path, res.Model, res.Scaler); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}

	model, scaler, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	// Bit-exact round trip: weights and biases must survive serialization.
	if model != res.Model {
		t.Error("model parameters changed across save/load")
	}
	if scaler != res.Scaler {
		t.Error("scaling parameters changed across save/load")
	}
}

func TestSaveModel_CreatesParentDir(t *testing.T) {
	res := Train(DefaultTrainerConfig())
	path := filepath.Join(t.TempDir(), "mathventure", "nested", "model.json")

	if err := SaveModel(path, res.Model, res.Scaler); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	if _, _, err := LoadModel(path); err != nil {
		t.Fatalf("LoadModel after save: %v", err)
	}
}

func TestLoadModel_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadModel(path)
	if !errors.Is(err, ErrInvalidModelFile) {
		t.Fatalf("LoadModel = %v, want ErrInvalidModelFile", err)
	}
}

func TestLoadModel_RejectsWrongShape(t *testing.T) {
	// Bias vector too short.
	const body = `{
		"version": 1,
		"feature_order": ["accuracy_pct","avg_time_seconds","correct_streak","incorrect_streak","trend","difficulty"],
		"model": {"weights": [[0,0,0,0,0,0],[0,0,0,0,0,0],[0,0,0,0,0,0]], "bias": [0,0]},
		"scaler": {"mean": [0,0,0,0,0,0], "std": [1,1,1,1,1,1]}
	}`
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadModel(path)
	if !errors.Is(err, ErrInvalidModelFile) {
		t.Fatalf("LoadModel = %v, want ErrInvalidModelFile", err)
	}
}

func TestLoadModel_RejectsReorderedFeatures(t *testing.T) {
	const body = `{
		"version": 1,
		"feature_order": ["avg_time_seconds","accuracy_pct","correct_streak","incorrect_streak","trend","difficulty"],
		"model": {"weights": [[0,0,0,0,0,0],[0,0,0,0,0,0],[0,0,0,0,0,0]], "bias": [0,0,0]},
		"scaler": {"mean": [0,0,0,0,0,0], "std": [1,1,1,1,1,1]}
	}`
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadModel(path)
	if !errors.Is(err, ErrInvalidModelFile) {
		t.Fatalf("LoadModel = %v, want ErrInvalidModelFile", err)
	}
}
