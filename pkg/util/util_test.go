package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("open ./data/shelters.geojson: no such file or directory")
	err := WrapErrorf(orig, ErrMissingInput, "missing required input %q", "shelters")

	assert.True(t, errors.Is(err, ErrMissingInput))
	assert.True(t, errors.Is(err, orig))
	assert.False(t, errors.Is(err, ErrMalformedInput))
	assert.Equal(t, ErrMissingInput, ErrorCode(err))
	assert.Contains(t, err.Error(), "shelters")

	wrapped := errors.Join(errors.New("stage load inputs"), err)
	assert.Equal(t, ErrMissingInput, ErrorCode(wrapped))
	assert.Nil(t, ErrorCode(orig))
}

func TestJoinIDs(t *testing.T) {
	testCases := []struct {
		name string
		ids  []int64
		want string
	}{
		{name: "empty", ids: nil, want: ""},
		{name: "single", ids: []int64{42}, want: "42"},
		{name: "many", ids: []int64{3, 7, 9}, want: "3;7;9"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinIDs(tt.ids, ";"))
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "True", "t", "yes"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "F", "", " no "} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}

type stubCloser struct{ err error }

func (c stubCloser) Close() error { return c.err }

func TestCloseFile(t *testing.T) {
	closeErr := errors.New("short write on close")
	writeErr := errors.New("encode failed")
	tests := []struct {
		name     string
		closeErr error
		prior    error
		want     error
	}{
		{"close error surfaces", closeErr, nil, closeErr},
		{"earlier error kept", closeErr, writeErr, writeErr},
		{"clean close", nil, nil, nil},
		{"clean close keeps earlier error", nil, writeErr, writeErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prior
			CloseFile(stubCloser{err: tt.closeErr}, &err)
			assert.Equal(t, tt.want, err)
		})
	}
}
