package sqlite

import (
	"database/sql"
	"math"
	"testing"
)

func TestDriverRegistersCosine(t *testing.T) {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	a, err := EncodeVector([]float32{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeVector([]float32{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	c, err := EncodeVector([]float32{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}

	var same, orthogonal float64
	if err := db.QueryRow("SELECT vec_cosine(?, ?)", a, b).Scan(&same); err != nil {
		t.Fatalf("vec_cosine failed: %v", err)
	}
	if err := db.QueryRow("SELECT vec_cosine(?, ?)", a, c).Scan(&orthogonal); err != nil {
		t.Fatalf("vec_cosine failed: %v", err)
	}

	if math.Abs(same-1) > 1e-6 {
		t.Errorf("expected similarity 1, got %f", same)
	}
	if math.Abs(orthogonal) > 1e-6 {
		t.Errorf("expected similarity 0, got %f", orthogonal)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0.5, -1.25, 3}
	blob, err := EncodeVector(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeVector(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d values, got %d", len(in), len(out))
	}
	for i := range in {
		if float32(out[i]) != in[i] {
			t.Errorf("value %d: expected %f, got %f", i, in[i], out[i])
		}
	}

	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated blob")
	}
}

func TestCosine_Degenerate(t *testing.T) {
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("empty vectors: got %f", got)
	}
	if got := Cosine([]float64{1, 2}, []float64{1}); got != 0 {
		t.Errorf("length mismatch: got %f", got)
	}
	if got := Cosine([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Errorf("zero vector: got %f", got)
	}
}
