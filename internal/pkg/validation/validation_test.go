package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ano333333/llm-time-manager/internal/app/models"
)

type sample struct {
	Name  *string `json:"name" validate:"required,max=3,notblank"`
	Count *int    `json:"count" validate:"required,min=1"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct(t *testing.T) {
	cases := []struct {
		name   string
		in     sample
		target string
	}{
		{name: "valid", in: sample{Name: ptr("abc"), Count: ptr(1)}},
		{name: "missing name", in: sample{Count: ptr(1)}, target: "name"},
		{name: "blank name", in: sample{Name: ptr("  "), Count: ptr(1)}, target: "name"},
		{name: "too long counts runes", in: sample{Name: ptr("あいうえ"), Count: ptr(1)}, target: "name"},
		{name: "three runes is fine", in: sample{Name: ptr("あいう"), Count: ptr(1)}},
		{name: "count below min", in: sample{Name: ptr("a"), Count: ptr(0)}, target: "count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if tc.target == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.target, fe.Target)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("wrong type leaves the field unset", func(t *testing.T) {
		var s sample
		err := DecodeJSON([]byte(`{"name": 5, "count": 2}`), &s)
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "name", fe.Target)
		assert.Nil(t, s.Name)
		require.NotNil(t, s.Count)
		assert.Equal(t, 2, *s.Count)
	})

	t.Run("first type error in field order", func(t *testing.T) {
		var s sample
		err := DecodeJSON([]byte(`{"count": 1.5, "name": 5}`), &s)
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "name", fe.Target)
	})

	t.Run("null and missing keys stay nil", func(t *testing.T) {
		var s sample
		require.NoError(t, DecodeJSON([]byte(`{"name": null}`), &s))
		assert.Nil(t, s.Name)
		assert.Nil(t, s.Count)
	})

	t.Run("keys match case-insensitively", func(t *testing.T) {
		var s sample
		require.NoError(t, DecodeJSON([]byte(`{"Name": "ab"}`), &s))
		require.NotNil(t, s.Name)
		assert.Equal(t, "ab", *s.Name)
	})

	for _, body := range []string{`{"name": `, ``, `[1]`, `"x"`} {
		t.Run("malformed "+body, func(t *testing.T) {
			var s sample
			assert.True(t, errors.Is(DecodeJSON([]byte(body), &s), ErrMalformedJSON))
		})
	}
}

func TestFirst(t *testing.T) {
	var none *FieldError

	assert.NoError(t, First[error](sample{}))
	assert.NoError(t, First(sample{}, none))

	err := First(&sample{}, Invalid("count", "min"), Invalid("name", "required"))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name", fe.Target)

	err = First(sample{}, Invalid("count", "type"), Invalid("count", "required"))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "type", fe.Rule, "ties keep the earlier error")

	internal := errors.New("boom")
	assert.ErrorIs(t, First(sample{}, error(Invalid("name", "required")), internal), internal)
}
