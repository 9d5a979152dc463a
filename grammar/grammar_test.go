package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectDeclVariants(t *testing.T) {
	source := `
object main = absentModified
object snap = copy main
object top = unknown
object bottom = none
`
	prog, err := ParseString("test.aotrace", source)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 4)

	assert.Equal(t, "main", prog.Statements[0].ObjectDecl.Name.Value)
	assert.Equal(t, "absentModified", prog.Statements[0].ObjectDecl.Expr.AbsentModified)

	require.NotNil(t, prog.Statements[1].ObjectDecl.Expr.CopyOf)
	assert.Equal(t, "main", prog.Statements[1].ObjectDecl.Expr.CopyOf.Value)

	assert.Equal(t, "unknown", prog.Statements[2].ObjectDecl.Expr.Unknown)
	assert.Equal(t, "none", prog.Statements[3].ObjectDecl.Expr.None)
}

func TestParseSetPropertyWithLabelsAndModified(t *testing.T) {
	source := `object main = absentModified
set main.x = present "number" labels a1, a2 modified
`
	prog, err := ParseString("test.aotrace", source)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	stmt := prog.Statements[1].SetProperty
	require.NotNil(t, stmt)
	assert.Equal(t, "main", stmt.Object.Value)
	assert.Equal(t, "x", stmt.Property)
	require.NotNil(t, stmt.Value.Present)
	assert.Equal(t, `"number"`, stmt.Value.Present.Primitive)
	assert.Equal(t, []string{"a1", "a2"}, stmt.Value.Present.Labels)
	assert.True(t, stmt.Value.Present.Modified)
}

func TestParseSetDefaultArrayAndNonArray(t *testing.T) {
	source := `object main = absentModified
setdefault main array = unknown
setdefault main nonarray = absent modified
`
	prog, err := ParseString("test.aotrace", source)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	array := prog.Statements[1].SetDefault
	require.NotNil(t, array)
	assert.Equal(t, "array", array.Kind)
	assert.Equal(t, "unknown", array.Value.Unknown)

	nonArray := prog.Statements[2].SetDefault
	require.NotNil(t, nonArray)
	assert.Equal(t, "nonarray", nonArray.Kind)
	require.NotNil(t, nonArray.Value.Absent)
	assert.True(t, nonArray.Value.Absent.Modified)
}

func TestParseOperationStatements(t *testing.T) {
	source := `object main = absentModified
object other = absentModified
summarize main promote a1, a2
trim main ref other
remove main ref other
replacenonmodified main other other
clearmodified main
relabel main a1 -> a1summary
print main
printmodified main
diff main old other
labels main
`
	prog, err := ParseString("test.aotrace", source)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 12)

	assert.Equal(t, []string{"a1", "a2"}, prog.Statements[2].Summarize.Labels)
	assert.Equal(t, "other", prog.Statements[3].Trim.Ref.Value)
	assert.Equal(t, "other", prog.Statements[4].Remove.Ref.Value)
	assert.Equal(t, "other", prog.Statements[5].ReplaceNonModified.Other.Value)
	assert.Equal(t, "main", prog.Statements[6].ClearModified.Object.Value)
	assert.Equal(t, "a1", prog.Statements[7].Relabel.Old)
	assert.Equal(t, "a1summary", prog.Statements[7].Relabel.New)
	assert.Equal(t, "main", prog.Statements[8].Print.Object.Value)
	assert.Equal(t, "main", prog.Statements[9].PrintModified.Object.Value)
	assert.Equal(t, "other", prog.Statements[10].Diff.Old.Value)
	assert.Equal(t, "main", prog.Statements[11].Labels.Object.Value)
}

func TestParseIgnoresCommentsAndWhitespace(t *testing.T) {
	source := `// a leading comment
object main = absentModified // trailing comment

print main
`
	prog, err := ParseString("test.aotrace", source)
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 2)
}

func TestParseErrorOnUnknownStatement(t *testing.T) {
	_, err := ParseString("test.aotrace", "frobnicate main\n")
	require.Error(t, err)
}
