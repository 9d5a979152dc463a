package script_test

import (
	"strings"
	"testing"

	"abstractobject/grammar"
	"abstractobject/internal/options"
	"abstractobject/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (*script.Interpreter, string, error) {
	t.Helper()
	prog, err := grammar.ParseString("test.aotrace", source)
	require.NoError(t, err)

	var out strings.Builder
	in := script.NewInterpreter(&out, options.Default())
	runErr := in.Run(prog)
	return in, out.String(), runErr
}

func TestSetPropertyThenPrintRoundTrips(t *testing.T) {
	_, out, err := run(t, `
object main = absentModified
set main.x = present "number" labels a1
print main
`)
	require.NoError(t, err)
	assert.Contains(t, out, `"x"`)
	assert.Contains(t, out, "a1")
}

func TestCopyIsolatesWrites(t *testing.T) {
	in, _, err := run(t, `
object main = absentModified
object snap = copy main
set main.x = present "fromMain"
set snap.y = present "fromSnap"
`)
	require.NoError(t, err)

	main, ok := in.Object("main")
	require.True(t, ok)
	snap, ok := in.Object("snap")
	require.True(t, ok)

	assert.True(t, main.GetProperty("y").IsMaybeAbsent())
	assert.False(t, main.GetProperty("y").IsMaybePresent())
	assert.True(t, snap.GetProperty("x").IsMaybeAbsent())
	assert.False(t, snap.GetProperty("x").IsMaybePresent())
}

func TestSetDefaultInvariantViolationPropagates(t *testing.T) {
	_, _, err := run(t, `
object main = absentModified
setdefault main array = present "oops"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setDefaultArrayProperty")
}

func TestSummarizeAndLabelsStatement(t *testing.T) {
	_, out, err := run(t, `
object main = absentModified
set main.x = present "n" labels a1
summarize main promote a1
labels main
`)
	require.NoError(t, err)
	assert.Contains(t, out, "a1*")
}

func TestRelabelRewritesLabel(t *testing.T) {
	_, out, err := run(t, `
object main = absentModified
set main.x = present "n" labels a1
relabel main a1 -> a2
labels main
`)
	require.NoError(t, err)
	assert.Contains(t, out, "a2")
	assert.NotContains(t, out, "a1")
}

func TestTrimAgainstRefDropsSharedPresence(t *testing.T) {
	in, _, err := run(t, `
object main = absentModified
object ref = absentModified
set main.x = present "n"
set ref.x = present "n"
trim main ref ref
`)
	require.NoError(t, err)
	main, ok := in.Object("main")
	require.True(t, ok)
	assert.False(t, main.GetProperty("x").IsMaybePresent())
}

func TestReplaceNonModifiedPartsPullsInUnmodifiedDefault(t *testing.T) {
	in, _, err := run(t, `
object main = absentModified
setdefault main nonarray = absent
object other = absentModified
set other.fresh = present "new"
replacenonmodified main other other
`)
	require.NoError(t, err)
	main, ok := in.Object("main")
	require.True(t, ok)
	assert.True(t, main.GetProperty("fresh").IsMaybePresent())
}

func TestClearModifiedThenPrintShowsNoModifiedSlots(t *testing.T) {
	_, out, err := run(t, `
object main = absentModified
set main.kept = present "mine" modified
clearmodified main
printmodified main
`)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestDiffStatementReportsChange(t *testing.T) {
	_, out, err := run(t, `
object before = absentModified
set before.x = present "1"
object after = copy before
set after.x = present "2"
diff after old before
`)
	require.NoError(t, err)
	assert.Contains(t, out, `"x"`)
}

func TestUndeclaredObjectReferenceErrors(t *testing.T) {
	_, _, err := run(t, `
print nonexistent
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}
