package connurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturoid/driverproxy/connurl"
)

func TestProperties_Order(t *testing.T) {
	props := connurl.NewProperties("b", "1", "a", "2")
	props.Set("c", "3")
	props.Set("b", "4")

	assert.Equal(t, []string{"b", "a", "c"}, props.Keys())
	assert.Equal(t, "4", props.Get("b"))
	assert.Equal(t, 3, props.Len())

	props.Delete("a")
	props.Delete("missing")
	assert.Equal(t, []string{"b", "c"}, props.Keys())

	_, ok := props.Lookup("a")
	assert.False(t, ok)
}

func TestProperties_Nil(t *testing.T) {
	var props *connurl.Properties

	assert.Equal(t, 0, props.Len())
	assert.Empty(t, props.Get("x"))
	assert.Nil(t, props.Keys())
	props.Delete("x")
	props.Range(func(string, string) bool {
		t.Fatal("nil bag has no properties")
		return false
	})

	clone := props.Clone()
	require.NotNil(t, clone)
	clone.Set("x", "1")
	assert.Equal(t, "1", clone.Get("x"))
}

func TestProperties_CloneIsIndependent(t *testing.T) {
	props := connurl.NewProperties("a", "1", "b", "2")
	clone := props.Clone()

	clone.Delete("a")
	clone.Set("b", "3")
	clone.Set("c", "4")

	assert.Equal(t, []string{"a", "b"}, props.Keys())
	assert.Equal(t, "2", props.Get("b"))
	assert.Equal(t, []string{"b", "c"}, clone.Keys())
}

func TestProperties_Merge(t *testing.T) {
	props := connurl.NewProperties("sslmode", "disable", "application_name", "svc")
	props.Merge(connurl.NewProperties("connect_timeout", "5", "sslmode", "require"))
	props.Merge(nil)

	assert.Equal(t, []string{"sslmode", "application_name", "connect_timeout"}, props.Keys())
	assert.Equal(t, "require", props.Get("sslmode"))
}

func TestProperties_RangeStops(t *testing.T) {
	props := connurl.NewProperties("a", "1", "b", "2", "c", "3")

	var seen []string
	props.Range(func(key, _ string) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestNewProperties_OddArguments(t *testing.T) {
	assert.Panics(t, func() { connurl.NewProperties("a") })
}

func TestParseProperties(t *testing.T) {
	testCases := []struct {
		TestName string

		items        []string
		ExpectedKeys []string
		ExpectedErr  bool
	}{
		{
			TestName:     "ordered pairs",
			items:        []string{"sslmode=disable", "options=-c search_path=app", "empty="},
			ExpectedKeys: []string{"sslmode", "options", "empty"},
		},
		{
			TestName:    "missing separator",
			items:       []string{"sslmode"},
			ExpectedErr: true,
		},
		{
			TestName:    "empty key",
			items:       []string{" =value"},
			ExpectedErr: true,
		},
		{
			TestName:     "no items",
			ExpectedKeys: nil,
		},
	}

	for _, c := range testCases {
		t.Run(c.TestName, func(t *testing.T) {
			props, err := connurl.ParseProperties(c.items)
			if c.ExpectedErr {
				require.ErrorIs(t, err, connurl.ErrInvalidArgument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, c.ExpectedKeys, props.Keys())
		})
	}

	props, err := connurl.ParseProperties([]string{"options=-c search_path=app"})
	require.NoError(t, err)
	assert.Equal(t, "-c search_path=app", props.Get("options"))
}
