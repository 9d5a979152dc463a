package value_test

import (
	"testing"

	"abstractobject/internal/objectlabel"
	"abstractobject/internal/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeNoneIsBottom(t *testing.T) {
	v := value.MakeNone()
	assert.True(t, v.IsNone())
	assert.False(t, v.IsMaybePresent())
	assert.False(t, v.IsMaybeAbsent())
	assert.False(t, v.IsMaybeModified())
}

func TestMakeUnknownIsTopAndModified(t *testing.T) {
	v := value.MakeUnknown()
	assert.True(t, v.IsUnknown())
	assert.True(t, v.IsMaybePresent())
	assert.True(t, v.IsMaybeAbsent())
	assert.True(t, v.IsMaybePresentOrUnknown())
	assert.True(t, v.IsMaybeModified())
	assert.Equal(t, objectlabel.Empty, v.GetObjectLabels())
}

func TestMakeAbsentModified(t *testing.T) {
	v := value.MakeAbsentModified()
	assert.False(t, v.IsMaybePresent())
	assert.True(t, v.IsMaybeAbsent())
	assert.True(t, v.IsMaybeModified())
}

func TestMakePresentCarriesLabelsAndPrimitive(t *testing.T) {
	l := objectlabel.New("site", "ctx")
	v := value.MakePresent("number", l)
	assert.True(t, v.IsMaybePresent())
	assert.False(t, v.IsMaybeAbsent())
	assert.False(t, v.IsMaybeModified())
	require.Equal(t, 1, v.GetObjectLabels().Len())
	assert.True(t, v.GetObjectLabels().Contains(l))
}

func TestMakeModifiedSetsBitOnly(t *testing.T) {
	base := value.MakePresent("x")
	m := value.MakeModified(base)
	assert.True(t, m.IsMaybeModified())
	assert.True(t, m.RestrictToNotModified().Equal(base))
}

func TestRestrictToNotModifiedIdempotent(t *testing.T) {
	v := value.MakeUnknown()
	once := v.RestrictToNotModified()
	twice := once.RestrictToNotModified()
	assert.True(t, once.Equal(twice))
	assert.False(t, once.IsMaybeModified())
}

func TestSummarizeRewritesLabels(t *testing.T) {
	l := objectlabel.New("site", "")
	v := value.MakePresent("x", l)
	w := objectlabel.PromoteSet{l: struct{}{}}
	out := v.Summarize(w)
	assert.True(t, out.GetObjectLabels().Contains(l.AsSummary()))
	assert.False(t, out.GetObjectLabels().Contains(l))
}

func TestSummarizeIsNoopOnUnknownAndNone(t *testing.T) {
	w := objectlabel.PromoteSet{}
	assert.True(t, value.MakeUnknown().Summarize(w).Equal(value.MakeUnknown()))
	assert.True(t, value.MakeNone().Summarize(w).Equal(value.MakeNone()))
}

func TestReplaceObjectLabelAndReplaceObjectLabels(t *testing.T) {
	old := objectlabel.New("old", "")
	replacement := objectlabel.New("new", "")
	v := value.MakePresent("x", old)

	single := v.ReplaceObjectLabel(old, replacement)
	assert.True(t, single.GetObjectLabels().Contains(replacement))

	bulk := v.ReplaceObjectLabels(map[objectlabel.Label]objectlabel.Label{old: replacement})
	assert.True(t, bulk.Equal(single))
}

func TestTrimAgainstUnknownKeepsModifiedBit(t *testing.T) {
	v := value.MakeModified(value.MakePresent("x"))
	trimmed := v.Trim(value.MakeUnknown())
	assert.True(t, trimmed.IsMaybeModified())
	assert.False(t, trimmed.IsMaybePresent())
	assert.False(t, trimmed.IsMaybeAbsent())
}

func TestTrimRemovesSharedLabelsAndFacets(t *testing.T) {
	shared := objectlabel.New("shared", "")
	unique := objectlabel.New("unique", "")
	v := value.MakePresent("x", shared, unique)
	other := value.MakePresent("x", shared)

	trimmed := v.Trim(other)
	assert.False(t, trimmed.IsMaybePresent())
	assert.True(t, trimmed.GetObjectLabels().Contains(unique))
	assert.False(t, trimmed.GetObjectLabels().Contains(shared))
}

func TestTrimOnNoneIsIdentity(t *testing.T) {
	v := value.MakePresent("x")
	assert.True(t, v.Trim(value.MakeNone()).Equal(v))
	assert.True(t, value.MakeNone().Trim(v).Equal(value.MakeNone()))
}

func TestRemoveSubtractsSharedLabelsAndFacets(t *testing.T) {
	shared := objectlabel.New("shared", "")
	v := value.MakePresent("x", shared)
	other := value.MakePresent("x", shared)

	removed := v.Remove(other)
	assert.False(t, removed.IsMaybePresent())
	assert.False(t, removed.GetObjectLabels().Contains(shared))
}

func TestEqualAndHashConsistency(t *testing.T) {
	l := objectlabel.New("a", "")
	a := value.MakePresent("x", l)
	b := value.MakePresent("x", l)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := value.MakePresent("y", l)
	assert.False(t, a.Equal(c))
}

func TestDiffEmptyWhenEqual(t *testing.T) {
	v := value.MakePresent("x")
	assert.Equal(t, "", v.Diff(v))
}

func TestDiffNonEmptyWhenDifferent(t *testing.T) {
	a := value.MakePresent("x")
	b := value.MakeModified(a)
	assert.NotEqual(t, "", b.Diff(a))
}

func TestStringRendersSentinelsAndFlags(t *testing.T) {
	assert.Equal(t, "NONE", value.MakeNone().String())
	assert.Equal(t, "UNKNOWN", value.MakeUnknown().String())
	assert.Contains(t, value.MakeAbsentModified().String(), "absent")
	assert.Contains(t, value.MakeAbsentModified().String(), "modified")
}
