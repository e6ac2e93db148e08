package commands

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/voiceguard/voiceguard/pkg/audio"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	verbose = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var outBuf, errBuf bytes.Buffer
	outBuf.ReadFrom(rOut)
	errBuf.ReadFrom(rErr)

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		stderr += err.Error()
	}
	return stdout, stderr, exitCode
}

// extractorScript writes a helper that prints a constant embedding.
func extractorScript(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell helper scripts are not portable to windows")
	}
	path := filepath.Join(t.TempDir(), "extract.sh")
	script := "#!/bin/sh\necho '[0.5, 0.5, 0.5, 0.5]'\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleWAV(t *testing.T) string {
	t.Helper()
	rate := audio.TargetRate
	samples := make([]int16, rate/2)
	for i := range samples {
		samples[i] = int16(0.5 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	path := filepath.Join(t.TempDir(), "voice.wav")
	if err := audio.WriteWAV(path, &audio.Clip{SampleRate: rate, Channels: 1, Samples: samples}); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCmd(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "voiceguard") {
		t.Fatalf("expected 'voiceguard', got: %s", stdout)
	}
}

func TestConfigShowCreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runCmd(t, "config", "show", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "0.8") {
		t.Fatalf("expected default threshold in output, got: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, policyFile)); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}

func TestConfigSetThreshold(t *testing.T) {
	dir := t.TempDir()

	_, stderr, code := runCmd(t, "config", "set", "threshold", "0.85", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	stdout, _, code := runCmd(t, "config", "show", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "0.85") {
		t.Fatalf("expected updated threshold, got: %s", stdout)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	if _, _, code := runCmd(t, "config", "set", "threshold", "1.5", "--data-dir", dir); code == 0 {
		t.Error("out-of-range threshold accepted")
	}
	if _, _, code := runCmd(t, "config", "set", "nonsense", "x", "--data-dir", dir); code == 0 {
		t.Error("unknown key accepted")
	}
}

func TestListEmpty(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runCmd(t, "list", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "no identities") {
		t.Fatalf("expected empty notice, got: %s", stdout)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runCmd(t, "delete", "42", "--yes", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "no identity") {
		t.Fatalf("expected not-found notice, got: %s", stdout)
	}
}

func TestEnrollVerifyDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	script := extractorScript(t)
	wav := sampleWAV(t)

	stdout, stderr, code := runCmd(t, "enroll",
		"--first-name", "Ada", "--last-name", "Lovelace", "--dob", "1815-12-10",
		"--wav", wav,
		"--data-dir", dir, "--extractor", script, "--dim", "4")
	if code != 0 {
		t.Fatalf("enroll exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Ada Lovelace") || !strings.Contains(stdout, "id 1") {
		t.Fatalf("enroll output: %s", stdout)
	}

	stdout, stderr, code = runCmd(t, "verify", wav,
		"--data-dir", dir, "--extractor", script, "--dim", "4")
	if code != 0 {
		t.Fatalf("verify exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "MATCHED") || !strings.Contains(stdout, "Ada Lovelace") {
		t.Fatalf("verify output: %s", stdout)
	}

	stdout, _, code = runCmd(t, "list", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("list exit %d", code)
	}
	if !strings.Contains(stdout, "Ada Lovelace") {
		t.Fatalf("list output: %s", stdout)
	}

	stdout, _, code = runCmd(t, "attempts", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("attempts exit %d", code)
	}
	if !strings.Contains(stdout, "enroll") || !strings.Contains(stdout, "verify") {
		t.Fatalf("attempts output: %s", stdout)
	}

	stdout, _, code = runCmd(t, "delete", "1", "--yes", "--data-dir", dir)
	if code != 0 {
		t.Fatalf("delete exit %d", code)
	}
	if !strings.Contains(stdout, "deleted identity 1") {
		t.Fatalf("delete output: %s", stdout)
	}
}

func TestVerifyWithoutEnrollments(t *testing.T) {
	dir := t.TempDir()
	script := extractorScript(t)
	wav := sampleWAV(t)

	stdout, stderr, code := runCmd(t, "verify", wav,
		"--data-dir", dir, "--extractor", script, "--dim", "4")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "NO ENROLLMENTS") {
		t.Fatalf("verify output: %s", stdout)
	}
}

func TestEnrollRequiresExtractor(t *testing.T) {
	dir := t.TempDir()
	wav := sampleWAV(t)

	_, stderr, code := runCmd(t, "enroll",
		"--first-name", "Ada", "--last-name", "Lovelace", "--dob", "1815-12-10",
		"--wav", wav,
		"--data-dir", dir, "--extractor", "")
	if code == 0 {
		t.Fatal("enroll without extractor succeeded")
	}
	if !strings.Contains(stderr, "extractor") {
		t.Fatalf("stderr: %s", stderr)
	}
}

func TestEnrollFromRequestFile(t *testing.T) {
	dir := t.TempDir()
	script := extractorScript(t)
	wav := sampleWAV(t)

	reqPath := filepath.Join(t.TempDir(), "enroll.yaml")
	req := "first_name: Grace\nlast_name: Hopper\ndate_of_birth: 1906-12-09\nwav: " + wav + "\n"
	if err := os.WriteFile(reqPath, []byte(req), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCmd(t, "enroll", "-f", reqPath,
		"--data-dir", dir, "--extractor", script, "--dim", "4")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Grace Hopper") {
		t.Fatalf("enroll output: %s", stdout)
	}
}
