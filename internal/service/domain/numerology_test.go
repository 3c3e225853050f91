package domain

import (
	"context"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumerology_Handle(t *testing.T) {
	f := newFixture()
	lp := facts.LifePathNumber(29, 11, 1999)
	f.knowledge.sheets[knowledge.CategoryNumerology+"/"+knowledge.NumerologyEntity(lp)] = core.Attributes{"tong-quan": "Nhà lãnh đạo"}
	h := NewNumerology(f.deps)

	resp, err := h.Handle(context.Background(), &core.Request{
		Domain:      "numerology",
		UserContext: &core.SubjectContext{BirthDate: "29/11/1999", Gender: "nam"},
	})
	require.NoError(t, err)
	assert.Equal(t, "lời giải", resp.Answer)

	require.Len(t, f.gen.calls, 1)
	assert.Contains(t, f.gen.calls[0].User, "Nhà lãnh đạo")
	assert.Contains(t, f.gen.calls[0].System, "Anh")
	assert.Contains(t, f.knowledge.lookups, knowledge.CategoryNumerology+"/Số "+lp)

	// Second call is served from the cache.
	_, err = h.Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "1999-11-29", Gender: "male"},
	})
	require.NoError(t, err)
	assert.Len(t, f.gen.calls, 1)
}

func TestNumerology_InvalidDate(t *testing.T) {
	f := newFixture()
	_, err := NewNumerology(f.deps).Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "not a date"},
	})
	assert.True(t, core.IsInputError(err))
}
