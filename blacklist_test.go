package sans

import (
	"bytes"
	"io"
	"testing"
)

func TestBlacklistRoundTrip(t *testing.T) {
	keys := []wordKey{
		{1, 0, 0, 0},
		{0xffffffffffffffff, 0, 0, 0},
		{1, 2, 3, 4},
	}

	var buf bytes.Buffer
	bw, err := NewBlacklistWriter(&buf, 21, 4)
	if err != nil {
		t.Fatalf("NewBlacklistWriter: %v", err)
	}
	for _, k := range keys {
		if err := bw.Write(k); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	br, err := NewBlacklistReader(&buf)
	if err != nil {
		t.Fatalf("NewBlacklistReader: %v", err)
	}
	if br.K != 21 || br.Words != 4 {
		t.Fatalf("header mismatch: K=%d Words=%d", br.K, br.Words)
	}

	for i, want := range keys {
		got, err := br.Read()
		if err != nil {
			t.Fatalf("Read #%d: %v", i, err)
		}
		if got != want {
			t.Errorf("Read #%d: got %v, want %v", i, got, want)
		}
	}
	if _, err := br.Read(); err != io.EOF {
		t.Fatalf("expected io.EOF after last key, got %v", err)
	}
}

func TestReadAllAndWriteBlacklist(t *testing.T) {
	set := map[wordKey]struct{}{
		{1, 0, 0, 0}: {},
		{2, 0, 0, 0}: {},
		{3, 0, 0, 0}: {},
	}

	var buf bytes.Buffer
	if err := WriteBlacklist(&buf, 15, 1, set); err != nil {
		t.Fatalf("WriteBlacklist: %v", err)
	}

	br, err := NewBlacklistReader(&buf)
	if err != nil {
		t.Fatalf("NewBlacklistReader: %v", err)
	}
	got, err := ReadAll(br)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(set) {
		t.Fatalf("got %d keys, want %d", len(got), len(set))
	}
	for k := range set {
		if _, ok := got[k]; !ok {
			t.Errorf("missing key %v", k)
		}
	}
}

func TestBlacklistReaderRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a blacklist file at all")
	if _, err := NewBlacklistReader(buf); err != ErrInvalidBlacklistFormat {
		t.Fatalf("expected ErrInvalidBlacklistFormat, got %v", err)
	}
}
