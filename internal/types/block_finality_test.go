package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockFinality(t *testing.T) {
	tests := []struct {
		input   string
		want    BlockFinality
		wantErr bool
	}{
		{input: "finalized", want: FinalityFinalized},
		{input: "safe", want: FinalitySafe},
		{input: "latest", want: FinalityLatest},
		{input: " Finalized ", want: FinalityFinalized},
		{input: "SAFE", want: FinalitySafe},
		{input: "", wantErr: true},
		{input: "pending", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBlockFinality(tt.input)
			if tt.wantErr {
				require.ErrorContains(t, err, "invalid block finality")
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBlockFinality_Tag(t *testing.T) {
	tag, ok := FinalityFinalized.Tag()
	require.True(t, ok)
	require.Equal(t, "finalized", tag)

	tag, ok = FinalitySafe.Tag()
	require.True(t, ok)
	require.Equal(t, "safe", tag)

	_, ok = FinalityLatest.Tag()
	require.False(t, ok)
}

func TestHeadBehind(t *testing.T) {
	require.Equal(t, uint64(90), HeadBehind(100, 10))
	require.Equal(t, uint64(100), HeadBehind(100, 0))
	require.Zero(t, HeadBehind(5, 10))
}
