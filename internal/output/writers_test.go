// internal/output/writers_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pcrsim/pkg/api"
)

func sampleAmplicon() api.AmpliconV1 {
	return api.AmpliconV1{
		TemplateID: "tpl1",
		FwdPrimer:  "f1",
		RevPrimer:  "r1",
		Start:      10,
		End:        110,
		Length:     100,
		FwdQuality: 0.91,
		RevQuality: 0.88,
		Quality:    0.88,
		SourceFile: "in.fa",
	}
}

func TestWriteAmpliconTSV(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteAmpliconTSV(buf, []api.AmpliconV1{sampleAmplicon()}, true); err != nil {
		t.Fatalf("tsv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != AmpliconTSVHeader {
		t.Errorf("header: %q", lines[0])
	}
	want := "in.fa\ttpl1\tf1\tr1\t10\t110\t100\t0.9100\t0.8800\t0.8800"
	if lines[1] != want {
		t.Errorf("row:\n got:  %q\n want: %q", lines[1], want)
	}

	buf.Reset()
	if err := WriteAmpliconTSV(buf, []api.AmpliconV1{sampleAmplicon()}, false); err != nil {
		t.Fatalf("tsv no header: %v", err)
	}
	if strings.Contains(buf.String(), "template_id") {
		t.Errorf("header printed despite header=false: %q", buf.String())
	}
}

func TestWriteOriginTSV(t *testing.T) {
	buf := &bytes.Buffer{}
	list := []api.OriginV1{{
		TemplateID: "tpl1", PrimerID: "p1",
		Start: 42, Strand: "-", Length: 20,
		Primability: 0.9923605805958747,
		Stability:   0.9118497898586322,
		Quality:     0.8802629630681338,
		SourceFile:  "in.fa",
	}}
	if err := WriteOriginTSV(buf, list, true); err != nil {
		t.Fatalf("tsv: %v", err)
	}
	want := "in.fa\ttpl1\tp1\t42\t-\t20\t0.9924\t0.9118\t0.8803"
	rows := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if rows[1] != want {
		t.Errorf("row:\n got:  %q\n want: %q", rows[1], want)
	}
}

func TestWriteAmpliconText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteAmpliconText(buf, []api.AmpliconV1{sampleAmplicon()}); err != nil {
		t.Fatalf("text: %v", err)
	}
	got := strings.TrimRight(buf.String(), "\n")
	if got != "tpl1\tf1\tr1\t10\t110\t100\t0.8800" {
		t.Errorf("text row: %q", got)
	}
}

func TestWriteFASTA(t *testing.T) {
	buf := &bytes.Buffer{}
	withSeq := sampleAmplicon()
	withSeq.Seq = "ACGTACGT"
	noSeq := sampleAmplicon()
	again := withSeq
	if err := WriteFASTA(buf, []api.AmpliconV1{withSeq, noSeq, again}); err != nil {
		t.Fatalf("fasta: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ">f1_r1_1 template=tpl1 start=10 end=110 len=100") {
		t.Fatalf("unexpected FASTA output: %s", out)
	}
	if !strings.Contains(out, ">f1_r1_2 ") {
		t.Errorf("repeat pair not renumbered: %s", out)
	}
	if strings.Count(out, "ACGTACGT") != 2 {
		t.Errorf("sequence-less record not skipped: %s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteJSON(buf, []api.AmpliconV1{sampleAmplicon()}); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("output not indented: %q", buf.String())
	}
	var back []api.AmpliconV1
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(back) != 1 || back[0] != sampleAmplicon() {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestWriteDimerTSV(t *testing.T) {
	buf := &bytes.Buffer{}
	list := []api.DimerV1{{
		ShortPrimer: "p2", LongPrimer: "p1",
		Score: 80, Overlap: 4, Offset: 0, Serious: true,
	}}
	if err := WriteDimerTSV(buf, list, true); err != nil {
		t.Fatalf("tsv: %v", err)
	}
	rows := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if rows[1] != "p2\tp1\t80\t4\t0\ttrue" {
		t.Errorf("row: %q", rows[1])
	}
}

func TestWriteTmTSV(t *testing.T) {
	buf := &bytes.Buffer{}
	list := []api.TmV1{{PrimerID: "p1", Seq: "ACGTACGT", TmC: 51.2345}}
	if err := WriteTmTSV(buf, list, true); err != nil {
		t.Fatalf("tsv: %v", err)
	}
	rows := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if rows[1] != "p1\tACGTACGT\t51.23" {
		t.Errorf("row: %q", rows[1])
	}
}
