package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunEndToEndWritesCSV(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTemp(t, dir, "dict.txt", "fg\nefg\nafg\ncdefg\nabcdefg\n")
	streamPath := writeTemp(t, dir, "stream.txt", "xabcdefg")
	outPath := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", dictPath, "-s", streamPath, "-o", outPath}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run: exit %d, stderr=%s", code, stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile output: %v", err)
	}
	if !strings.Contains(string(data), "stream,algorithm") {
		t.Fatalf("missing CSV header in output: %q", data)
	}
}

func TestRunMissingDictFlagIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-s", "x", "-o", "y"}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("got exit %d, want exitUsage", code)
	}
}

func TestRunMissingOutputFlagIsUsageError(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTemp(t, dir, "dict.txt", "a\n")
	streamPath := writeTemp(t, dir, "stream.txt", "a")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", dictPath, "-s", streamPath}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("got exit %d, want exitUsage", code)
	}
}

func TestRunDuplicateOutputFlagIsUsageError(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTemp(t, dir, "dict.txt", "a\n")
	streamPath := writeTemp(t, dir, "stream.txt", "a")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-d", dictPath, "-s", streamPath,
		"-o", filepath.Join(dir, "first.csv"),
		"-o", filepath.Join(dir, "second.csv"),
	}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("got exit %d, want exitUsage", code)
	}
}

func TestRunUnreadableDictIsFatal(t *testing.T) {
	dir := t.TempDir()
	streamPath := writeTemp(t, dir, "stream.txt", "a")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", filepath.Join(dir, "missing.txt"), "-s", streamPath, "-o", filepath.Join(dir, "out.csv")}, &stdout, &stderr)
	if code != exitFatalWork {
		t.Fatalf("got exit %d, want exitFatalWork", code)
	}
}
