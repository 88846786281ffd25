package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the Stream and Fetch services of a firehose server.
type Client struct {
	conn   *grpc.ClientConn
	stream pbfirehose.StreamClient
	fetch  pbfirehose.FetchClient
}

// Dial connects to a firehose server over plaintext. Extra options are appended to the defaults.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	return &Client{
		conn:   conn,
		stream: pbfirehose.NewStreamClient(conn),
		fetch:  pbfirehose.NewFetchClient(conn),
	}, nil
}

// Conn exposes the underlying connection, e.g. for the health service.
func (c *Client) Conn() *grpc.ClientConn {
	return c.conn
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Blocks opens a block stream. Ranging stops at the end of the stream, at the first error
// or when the consumer breaks out, which cancels the call.
func (c *Client) Blocks(ctx context.Context, req *pbfirehose.Request) iter.Seq2[*pbfirehose.Response, error] {
	return func(yield func(*pbfirehose.Response, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := c.stream.Blocks(ctx, req)
		if err != nil {
			yield(nil, err)
			return
		}

		for {
			resp, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}
				return
			}

			if !yield(resp, nil) {
				return
			}
		}
	}
}

// Block fetches a single block.
func (c *Client) Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error) {
	return c.fetch.Block(ctx, req)
}
