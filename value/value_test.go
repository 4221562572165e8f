package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langcore/value"
)

func TestCoercions(t *testing.T) {
	i, err := value.Int(5).ToInt()
	require.NoError(t, err)
	assert.Equal(t, int64(5), i)

	_, err = value.Int(5).ToString()
	assert.ErrorIs(t, err, value.ErrTypeMismatch)

	s, err := value.String("hi").ToString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestTruthy(t *testing.T) {
	ok, err := value.Int(0).Truthy()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = value.Int(3).Truthy()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = value.String("x").Truthy()
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestArrayElemAndLen(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(10), value.Int(20), value.Int(30)})

	n, err := arr.Len()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	e, err := arr.Elem(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), mustInt(t, e))

	_, err = arr.Elem(3)
	assert.ErrorIs(t, err, value.ErrIndexOutOfRange)
}

func TestArrayCopyOnConstruct(t *testing.T) {
	backing := []value.Value{value.Int(1), value.Int(2)}
	arr := value.Array(backing)
	backing[0] = value.Int(99)

	got, err := arr.Elem(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mustInt(t, got), "Array must copy its backing slice, not alias it")
}

func TestWithArrayElemDoesNotAlias(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1), value.Int(2)})
	updated, err := arr.WithArrayElem(0, value.Int(99))
	require.NoError(t, err)

	orig, err := arr.Elem(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mustInt(t, orig), "original array must be unchanged")

	got, err := updated.Elem(0)
	require.NoError(t, err)
	assert.Equal(t, int64(99), mustInt(t, got))
}

func TestWithStringByte(t *testing.T) {
	s := value.String("abc")
	updated, err := s.WithStringByte(1, 'X')
	require.NoError(t, err)
	str, err := updated.ToString()
	require.NoError(t, err)
	assert.Equal(t, "aXc", str)

	_, err = s.WithStringByte(10, 'X')
	assert.ErrorIs(t, err, value.ErrIndexOutOfRange)
}

func TestSexpTagAndChildren(t *testing.T) {
	nil_ := value.Sexp("Nil", nil)
	pair := value.Sexp("Pair", []value.Value{value.Int(1), nil_})

	tag, err := pair.Tag()
	require.NoError(t, err)
	assert.Equal(t, "Pair", tag)

	children, err := pair.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, int64(1), mustInt(t, children[0]))
}

func TestSubstitutePathNested(t *testing.T) {
	inner := value.Array([]value.Value{value.Int(1), value.Int(2)})
	outer := value.Array([]value.Value{inner, value.Int(99)})

	updated, err := value.SubstitutePath(outer, []value.Value{value.Int(0), value.Int(1)}, value.Int(42))
	require.NoError(t, err)

	innerAfter, err := updated.Elem(0)
	require.NoError(t, err)
	got, err := innerAfter.Elem(1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), mustInt(t, got))

	// The original must be untouched (value-typed composites, spec §9).
	origInner, err := outer.Elem(0)
	require.NoError(t, err)
	origGot, err := origInner.Elem(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mustInt(t, origGot))
}

func TestSubstitutePathSingleStepString(t *testing.T) {
	updated, err := value.SubstitutePath(value.String("abc"), []value.Value{value.Int(0)}, value.Int('Z'))
	require.NoError(t, err)
	s, err := updated.ToString()
	require.NoError(t, err)
	assert.Equal(t, "Zbc", s)
}

func TestSubstitutePathIntermediateNonComposite(t *testing.T) {
	_, err := value.SubstitutePath(value.Int(5), []value.Value{value.Int(0), value.Int(1)}, value.Int(1))
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestEqual(t *testing.T) {
	a := value.Sexp("Pair", []value.Value{value.Int(1), value.Sexp("Nil", nil)})
	b := value.Sexp("Pair", []value.Value{value.Int(1), value.Sexp("Nil", nil)})
	c := value.Sexp("Pair", []value.Value{value.Int(2), value.Sexp("Nil", nil)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(value.Int(1)))
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, err := v.ToInt()
	require.NoError(t, err)
	return i
}
