package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
dataset_dir = %q
work_dir = %q
log_dir = %q
`,
		filepath.Join(base, "dataset"),
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output does not mention target path: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample config missing [paths] section")
	}
}

func TestQueueListEmptyQueue(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", cfgPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "queue is empty") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", cfgPath, "queue", "list", "--status", "exploded")
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("error = %v, want unknown status", err)
	}
}

func TestConfigShowRendersSettings(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"dataset_dir", "sample_rate", "22050"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestVerifyAcceptsDatasetDirectoryArgument(t *testing.T) {
	cfgPath := writeTestConfig(t)

	dir := t.TempDir()
	testsupport.WriteClip(t, filepath.Join(dir, "vid00000001_000001.wav"), 22050, 1, 3000)
	metadata := "vid00000001_000001|নমস্কার|নমস্কার\n"
	if err := os.WriteFile(filepath.Join(dir, "metadata.csv"), []byte(metadata), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "verify", dir)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "consistent") {
		t.Fatalf("expected consistent dataset report for %s:\n%s", dir, out)
	}
}

func TestCleanBatchOverInputDirectory(t *testing.T) {
	cfgPath := writeTestConfig(t)

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "cleaned")
	testsupport.WriteClip(t, filepath.Join(inDir, "clip_000001.wav"), 22050, 1, 3000)

	out, err := runCommand(t, "--config", cfgPath, "clean", "--input", inDir, "--output", outDir)
	if err != nil {
		t.Fatalf("clean --input: %v", err)
	}
	if !strings.Contains(out, "cleaned 1 clips") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "clip_000001.wav")); err != nil {
		t.Fatalf("expected cleaned clip in output dir: %v", err)
	}
}

func TestVerifyOnEmptyDataset(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", cfgPath, "verify")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "Clips on disk") {
		t.Fatalf("verify output missing summary table:\n%s", out)
	}
}
