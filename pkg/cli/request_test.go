package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type sampleRequest struct {
	FirstName string  `json:"first_name" yaml:"first_name"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

func writeRequest(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRequestYAML(t *testing.T) {
	path := writeRequest(t, "req.yaml", "first_name: Ada\nthreshold: 0.85\n")
	var req sampleRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatal(err)
	}
	if req.FirstName != "Ada" || req.Threshold != 0.85 {
		t.Errorf("req = %+v", req)
	}
}

func TestLoadRequestJSON(t *testing.T) {
	path := writeRequest(t, "req.json", `{"first_name": "Ada", "threshold": 0.85}`)
	var req sampleRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatal(err)
	}
	if req.FirstName != "Ada" || req.Threshold != 0.85 {
		t.Errorf("req = %+v", req)
	}
}

func TestLoadRequestUnknownExtensionFallsBack(t *testing.T) {
	path := writeRequest(t, "req.txt", "first_name: Ada\n")
	var req sampleRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatal(err)
	}
	if req.FirstName != "Ada" {
		t.Errorf("req = %+v", req)
	}
}

func TestLoadRequestMissingFile(t *testing.T) {
	var req sampleRequest
	if err := LoadRequest(filepath.Join(t.TempDir(), "absent.yaml"), &req); err == nil {
		t.Fatal("LoadRequest of missing file succeeded")
	}
}
