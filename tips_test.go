package places

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTips(t *testing.T) {

	texts, err := Tips([]byte(`[{"text":"Great stay"},{"text":"Clean room"}]`))
	require.NoError(t, err)

	require.Equal(t, []string{"Great stay", "Clean room"}, texts)
	require.Equal(t, "Great stay, Clean room", JoinTips(texts))

	texts, err = Tips([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, texts)
	require.Equal(t, "", JoinTips(texts))
}

func TestTipsErrors(t *testing.T) {

	_, err := Tips([]byte(`[{"text":"Great stay"},{"created_at":"2024-01-01"}]`))
	require.ErrorIs(t, err, ErrMissingText)

	var shape_err *ShapeError
	require.ErrorAs(t, err, &shape_err)
	require.Equal(t, 1, shape_err.Index)

	_, err = Tips([]byte(`{"message": "Not found"}`))
	require.ErrorIs(t, err, ErrUnexpectedPayload)

	_, err = Tips([]byte(``))
	require.ErrorIs(t, err, ErrUnexpectedPayload)

	_, err = Tips([]byte(`[`))
	require.ErrorIs(t, err, ErrInvalidJSON)
}
