package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSegment(buf *bytes.Buffer, name string, payload []byte) {
	buf.WriteString(name)
	_ = binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)
}

// writeCity saves a city holding a name followed by extra, which must be
// framed segments.
func writeCity(t *testing.T, dir, name string, extra ...byte) string {
	t.Helper()
	var body bytes.Buffer
	writeSegment(&body, "CNAM", append([]byte{byte(len(name))}, name...))
	body.Write(extra)

	var buf bytes.Buffer
	buf.WriteString("FORM")
	_ = binary.Write(&buf, binary.BigEndian, uint32(4+body.Len()))
	buf.WriteString("SCDH")
	buf.Write(body.Bytes())

	path := filepath.Join(dir, name+".sc2")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeSummaries(t *testing.T, out []byte) []summary {
	t.Helper()
	var summaries []summary
	dec := json.NewDecoder(bytes.NewReader(out))
	for dec.More() {
		var s summary
		if err := dec.Decode(&s); err != nil {
			t.Fatalf("bad output %q: %v", out, err)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func TestRunSummaries(t *testing.T) {
	dir := t.TempDir()
	a := writeCity(t, dir, "Alpha")
	b := writeCity(t, dir, "Beta")

	for _, args := range [][]string{
		{a, b, a},
		{"--cache-size=0", a, b, a},
		{"--workers=1", a, b, a},
	} {
		var out bytes.Buffer
		if err := run(args, &out); err != nil {
			t.Fatalf("%v: run failed: %v", args, err)
		}
		summaries := decodeSummaries(t, out.Bytes())
		if len(summaries) != 3 {
			t.Fatalf("%v: expected 3 summaries, got %d", args, len(summaries))
		}
		for i, want := range []string{"Alpha", "Beta", "Alpha"} {
			if summaries[i].Name != want {
				t.Errorf("%v: summary %d: expected %q, got %q", args, i, want, summaries[i].Name)
			}
		}
		if got := summaries[0].Zones["none"]; got != 128*128 {
			t.Errorf("%v: expected every tile unzoned, got %d", args, got)
		}
	}
}

func TestRunQuick(t *testing.T) {
	path := writeCity(t, t.TempDir(), "Alpha")

	var out bytes.Buffer
	if err := run([]string{"--quick", path}, &out); err != nil {
		t.Fatal(err)
	}
	summaries := decodeSummaries(t, out.Bytes())
	if len(summaries) != 1 || summaries[0].Name != "Alpha" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if summaries[0].Zones != nil {
		t.Errorf("quick summaries carry no zones, got %v", summaries[0].Zones)
	}
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeCity(t, dir, "Alpha")
	bad := filepath.Join(dir, "bad.sc2")
	if err := os.WriteFile(bad, []byte("nothing to see here"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run([]string{"--validate", good, bad}, &out)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("expected one invalid file, got %v", err)
	}
	if !strings.Contains(out.String(), good+": ok") {
		t.Errorf("missing ok line for %s in %q", good, out.String())
	}
	if !strings.Contains(out.String(), bad+": invalid container") {
		t.Errorf("missing failure line for %s in %q", bad, out.String())
	}
}

func TestRunErrors(t *testing.T) {
	path := writeCity(t, t.TempDir(), "Alpha")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", nil, "usage"},
		{"bad charset", []string{"--charset=ebcdic", path}, "unknown charset"},
		{"bad log level", []string{"--log-level=loud", path}, "not a valid logrus Level"},
		{"missing config", []string{"--config=/nonexistent/sc2dump.yaml", path}, "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCity(t, dir, "Alpha")
	config := filepath.Join(dir, "sc2dump.yaml")
	if err := os.WriteFile(config, []byte("quick: true\ncharset: macintosh\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"--config", config, path}, &out); err != nil {
		t.Fatal(err)
	}
	summaries := decodeSummaries(t, out.Bytes())
	if len(summaries) != 1 || summaries[0].Zones != nil {
		t.Errorf("config file should enable quick mode, got %q", out.String())
	}
}

func TestRunCoarseMaps(t *testing.T) {
	// A 64x64 crime map of zeros: 32 repeat runs of 128.
	var seg bytes.Buffer
	writeSegment(&seg, "XCRM", bytes.Repeat([]byte{255, 0}, 32))
	path := writeCity(t, t.TempDir(), "Alpha", seg.Bytes()...)

	if err := run([]string{"--cache-size=0", path}, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "malformed segment") {
		t.Errorf("expected a malformed segment without --coarse-maps, got %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"--coarse-maps", path}, &out); err != nil {
		t.Fatalf("--coarse-maps: %v", err)
	}
	if summaries := decodeSummaries(t, out.Bytes()); len(summaries) != 1 || summaries[0].Name != "Alpha" {
		t.Errorf("unexpected output %q", out.String())
	}
}
