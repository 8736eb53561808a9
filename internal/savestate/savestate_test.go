package savestate

import (
	"bytes"
	"encoding/gob"
	"errors"
	"testing"

	"github.com/rng999/gones/internal/cpu"
)

func sampleRecord() Record {
	return Record{
		Region: 1,
		CPU:    cpu.State{A: 0x12, X: 0x34, Y: 0x56, PC: 0xC000},
		WorkRAM: []byte{1, 2, 3, 4},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	rec := sampleRecord()
	data, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", got.Version, CurrentVersion)
	}
	if got.CPU.A != 0x12 || got.CPU.X != 0x34 || got.CPU.Y != 0x56 || got.CPU.PC != 0xC000 {
		t.Errorf("CPU state not round-tripped: %+v", got.CPU)
	}
	if !bytes.Equal(got.WorkRAM, rec.WorkRAM) {
		t.Errorf("WorkRAM = %v, want %v", got.WorkRAM, rec.WorkRAM)
	}
}

func TestEncodeStampsCurrentVersion(t *testing.T) {
	rec := sampleRecord()
	rec.Version = 999 // caller-supplied version must be overwritten

	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", got.Version, CurrentVersion)
	}
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	var buf bytes.Buffer
	// Hand-craft a record with a stale version by encoding with gob directly,
	// bypassing Encode's version stamp.
	rec := sampleRecord()
	rec.Version = CurrentVersion + 1
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err := Decode(&buf)
	if err == nil {
		t.Fatal("expected error for mismatched version")
	}
	if !errors.Is(err, ErrVersion) {
		t.Errorf("error = %v, want wrapping ErrVersion", err)
	}
}
