package sans

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteAndReadSplitsTSVRoundTrip(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	splits := []*Split{
		splitOf(t, 4, 5.5, 0, 1),
		splitOf(t, 4, 2.0, 2),
	}
	splits[0].Weight0, splits[0].Weight1 = 3, 4
	splits[1].Weight0, splits[1].Weight1 = 1, 9

	var buf bytes.Buffer
	if err := WriteSplitsTSV(&buf, splits, names); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSplitsTSV(&buf, names)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("round-tripped %d splits, want 2", len(got))
	}
	for i, s := range got {
		if !s.Colors.Equal(splits[i].Colors) {
			t.Errorf("split %d: colors = %v, want %v", i, s.Colors, splits[i].Colors)
		}
		if s.Score != splits[i].Score {
			t.Errorf("split %d: score = %v, want %v", i, s.Score, splits[i].Score)
		}
	}
}

func TestReadSplitsTSVSkipsBlankAndCommentLines(t *testing.T) {
	names := []string{"a", "b"}
	input := "# header\n\n1\t2\t3\ta,b\n"
	splits, err := ReadSplitsTSV(strings.NewReader(input), names)
	if err != nil {
		t.Fatal(err)
	}
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1", len(splits))
	}
}

func TestReadSplitsTSVRejectsUnknownName(t *testing.T) {
	names := []string{"a", "b"}
	input := "1\t2\t3\tz\n"
	if _, err := ReadSplitsTSV(strings.NewReader(input), names); err == nil {
		t.Fatal("expected an error for an unknown genome name")
	}
}

func TestReadSplitsTSVRejectsWrongFieldCount(t *testing.T) {
	names := []string{"a", "b"}
	input := "1\t2\ta\n"
	if _, err := ReadSplitsTSV(strings.NewReader(input), names); err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestWriteSplitsFASTAUsesRepresentative(t *testing.T) {
	names := []string{"a", "b"}
	splits := []*Split{splitOf(t, 2, 1.0, 0)}
	var buf bytes.Buffer
	err := WriteSplitsFASTA(&buf, splits, names, func(c ColorSet) (string, bool) {
		return "ACGT", true
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, ">split_0") || !strings.Contains(out, "ACGT") {
		t.Errorf("unexpected FASTA output: %q", out)
	}
}

func TestWriteSplitsFASTAHandlesMissingRepresentative(t *testing.T) {
	names := []string{"a", "b"}
	splits := []*Split{splitOf(t, 2, 1.0, 0)}
	var buf bytes.Buffer
	err := WriteSplitsFASTA(&buf, splits, names, func(c ColorSet) (string, bool) {
		return "", false
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "" {
		t.Errorf("expected an empty sequence line when no representative is recorded, got %q", buf.String())
	}
}

func TestWriteCoreKmersFASTASortsKeys(t *testing.T) {
	records := map[string]string{"b": "CCCC", "a": "AAAA"}
	var buf bytes.Buffer
	if err := WriteCoreKmersFASTA(&buf, records); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, ">a") > strings.Index(out, ">b") {
		t.Errorf("expected sorted key order, got: %q", out)
	}
}

func TestWriteNewickAppendsNewline(t *testing.T) {
	root := &Node{Name: "x", Weight: 0}
	var buf bytes.Buffer
	if err := WriteNewick(&buf, root, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), ";\n") {
		t.Errorf("WriteNewick output = %q, want trailing ';\\n'", buf.String())
	}
}
