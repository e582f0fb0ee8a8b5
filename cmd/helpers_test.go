package cmd

import (
	"testing"
)

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"title": "Hello", "empty": ""}
	if got := StringParam(params, "title", "def"); got != "Hello" {
		t.Errorf("expected Hello, got %s", got)
	}
	if got := StringParam(params, "empty", "def"); got != "def" {
		t.Errorf("expected default for empty string, got %s", got)
	}
	if got := StringParam(params, "missing", "def"); got != "def" {
		t.Errorf("expected default for missing key, got %s", got)
	}
}

func TestIntParam(t *testing.T) {
	// JSON decoding yields float64 for all numbers.
	params := map[string]interface{}{"id": float64(42), "raw": 7, "bad": "x"}
	if got := IntParam(params, "id", 0); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := IntParam(params, "raw", 0); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := IntParam(params, "bad", 3); got != 3 {
		t.Errorf("expected default for non-numeric, got %d", got)
	}
	if got := IntParam(params, "missing", 5); got != 5 {
		t.Errorf("expected default for missing key, got %d", got)
	}
}

func TestFloatParam(t *testing.T) {
	params := map[string]interface{}{"threshold": 0.7}
	if got := FloatParam(params, "threshold", 0.8); got != 0.7 {
		t.Errorf("expected 0.7, got %f", got)
	}
	if got := FloatParam(params, "missing", 0.8); got != 0.8 {
		t.Errorf("expected default, got %f", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"visible": true}
	if !BoolParam(params, "visible", false) {
		t.Error("expected true")
	}
	if BoolParam(params, "missing", false) {
		t.Error("expected default false")
	}
}
