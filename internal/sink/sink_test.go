package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndFlushAppendsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := s.WriteAndFlush("line one\n", "0xdead"); err != nil {
		t.Fatalf("WriteAndFlush: %v", err)
	}
	s.Unlock()

	if err := s.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := s.WriteAndFlush("line two\n", "0xbeef"); err != nil {
		t.Fatalf("WriteAndFlush: %v", err)
	}
	s.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "line one\nline two\n" {
		t.Errorf("log contents = %q, want both lines in order", data)
	}
}

func TestWriteAndFlushMirrorsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Lock(); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteAndFlush("line\n", "0x0123456789abcdef"); err != nil {
		t.Fatal(err)
	}
	s.Unlock()

	data, err := os.ReadFile(path + ".state")
	if err != nil {
		t.Fatalf("reading state sidecar: %v", err)
	}
	if string(data) != "0x0123456789abcdef\n" {
		t.Errorf("state sidecar = %q, want the last logged state", data)
	}
}
