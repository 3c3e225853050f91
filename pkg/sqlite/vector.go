package sqlite

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EncodeVector converts a float32 slice to a LittleEndian blob.
func EncodeVector(vec []float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("failed to serialize vector: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeVector reads a blob written by EncodeVector into float64 values.
func DecodeVector(blob []byte) ([]float64, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(blob))
	}
	out := make([]float64, len(blob)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out, nil
}

// Cosine returns the cosine similarity of a and b, or 0 when undefined.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// CosineBlob is registered as the SQL function vec_cosine(a, b).
func CosineBlob(a, b []byte) float64 {
	va, err := DecodeVector(a)
	if err != nil {
		return 0
	}
	vb, err := DecodeVector(b)
	if err != nil {
		return 0
	}
	return Cosine(va, vb)
}
