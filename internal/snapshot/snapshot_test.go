package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]domain.Entry{{
		ID:              42,
		Label:           "Read book",
		Price:           "0",
		Category:        domain.CategoryEducation,
		BookingRequired: false,
		Accessibility:   0.3,
	}})
	require.NoError(t, err)
	require.JSONEq(t,
		`[{"id":42,"label":"Read book","price":"0","category":"education","bookingRequired":false,"accessibility":0.3}]`,
		string(data))
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestDecodePreservesOrder(t *testing.T) {
	in := []domain.Entry{
		{ID: 3, Label: "c", Price: "1", Category: domain.CategoryMusic, Accessibility: 1},
		{ID: 1, Label: "a", Price: "2", Category: domain.CategoryDIY, BookingRequired: true},
		{ID: 2, Label: "b", Price: "3", Category: domain.CategorySocial, Accessibility: 0.5},
	}
	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n"} {
		out, err := Decode([]byte(in))
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, in := range []string{"{", `{"id":1}`, `[{"id":"nope"}]`, "not json"} {
		_, err := Decode([]byte(in))
		require.Error(t, err, "input %q", in)
	}
}
