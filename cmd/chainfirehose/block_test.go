package main

import (
	"context"
	"errors"
	"testing"

	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

const testHash = "0x00000000000000000000000000000000000000000000000000000000000000a7"

func TestBlockRequest(t *testing.T) {
	hashOf := func(_ context.Context, hash string) (uint64, error) {
		if hash == testHash {
			return 167, nil
		}
		return 0, errors.New("block not archived")
	}

	tests := []struct {
		name    string
		ref     string
		hashOf  func(context.Context, string) (uint64, error)
		want    *pbfirehose.SingleBlockRequest
		wantErr bool
	}{
		{
			name: "decimal",
			ref:  "167",
			want: firehose.NumberRequest(167),
		},
		{
			name: "hex",
			ref:  "0xa7",
			want: firehose.NumberRequest(167),
		},
		{
			name:   "hash",
			ref:    testHash,
			hashOf: hashOf,
			want:   firehose.HashAndNumberRequest(167, testHash),
		},
		{name: "hash without archive", ref: testHash, wantErr: true},
		{name: "unknown hash", ref: "0x" + testHash[4:] + "ff", hashOf: hashOf, wantErr: true},
		{name: "garbage", ref: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := blockRequest(context.Background(), tt.ref, tt.hashOf)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.True(t, proto.Equal(tt.want, req), "got %v", req)
		})
	}
}
