package common

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "17000000", want: 17_000_000},
		{input: " 42 ", want: 42},
		{input: "0x1a2b", want: 0x1a2b},
		{input: "0X1A2B", want: 0x1a2b},
		{input: "0xffffffffffffffff", want: 1<<64 - 1},
		{input: "", wantErr: true},
		{input: "0x", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "12abc", wantErr: true},
		{input: "0xzz", wantErr: true},
		{input: "18446744073709551616", wantErr: true},
		{input: "0x10000000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.input), func(t *testing.T) {
			got, err := ParseBlockNumber(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBlockNumber)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsBlockHash(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)

	require.True(t, IsBlockHash(hash))
	require.False(t, IsBlockHash(hash[2:]))
	require.False(t, IsBlockHash(hash[:64]))
	require.False(t, IsBlockHash("0x"+strings.Repeat("zz", 32)))
	require.False(t, IsBlockHash("0x1234"))
}

func TestSizeConversions(t *testing.T) {
	require.Equal(t, uint64(3*1024*1024), MBToBytes(3))
	require.Equal(t, uint64(2), BytesToMB(MBToBytes(2)+1023))
	require.Zero(t, BytesToMB(1024))
}

func TestToLowerWithTrim(t *testing.T) {
	require.Equal(t, "debug", ToLowerWithTrim("  DEBUG\t"))
}
