package binfile

import (
	"context"
	"fmt"
	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// OpenStreams opens the input and output archive streams concurrently
// (via golang.org/x/sync/errgroup) before the streaming rewrite begins.
// This is pre-stream setup concurrency only: once both streams are open,
// Rewriter.Run owns them exclusively and sequentially.
func OpenStreams(ctx context.Context, inputURL, outputURL string) (io.ReadCloser, io.WriteCloser, error) {
	var in io.ReadCloser
	var out io.WriteCloser

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := OpenInput(gctx, inputURL)
		if err != nil {
			return err
		}
		in = r
		return nil
	})
	g.Go(func() error {
		w, err := OpenOutput(gctx, outputURL)
		if err != nil {
			return err
		}
		out = w
		return nil
	})
	if err := g.Wait(); err != nil {
		if in != nil {
			in.Close()
		}
		if out != nil {
			out.Close()
		}
		return nil, nil, err
	}
	return in, out, nil
}

// OpenInput opens the archive input stream named by rawURL. An empty
// rawURL wraps os.Stdin. file:// URLs and bare local paths use os.Open;
// http(s):// URLs are streamed via a GET request; everything else (s3://,
// gs://, azblob://, ...) is opened through gocloud.dev/blob.
func OpenInput(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if rawURL == "" {
		return io.NopCloser(os.Stdin), nil
	}
	scheme := urlScheme(rawURL)
	switch scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("opening input %q: %w", rawURL, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("opening input %q: %w", rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("opening input %q: unexpected status %s", rawURL, resp.Status)
		}
		return resp.Body, nil
	case "", "file":
		f, err := os.Open(strings.TrimPrefix(rawURL, "file://"))
		if err != nil {
			return nil, fmt.Errorf("opening input %q: %w", rawURL, err)
		}
		return f, nil
	default:
		bucketURL, key, err := splitBucketKey(rawURL)
		if err != nil {
			return nil, fmt.Errorf("opening input %q: %w", rawURL, err)
		}
		bucket, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return nil, fmt.Errorf("opening input bucket %q: %w", bucketURL, err)
		}
		r, err := bucket.NewReader(ctx, key, nil)
		if err != nil {
			bucket.Close()
			return nil, fmt.Errorf("opening input %q: %w", rawURL, err)
		}
		return &bucketReader{Reader: r, bucket: bucket}, nil
	}
}

// OpenOutput opens the archive output stream named by rawURL, mirroring
// OpenInput's URL handling. An empty rawURL wraps os.Stdout.
func OpenOutput(ctx context.Context, rawURL string) (io.WriteCloser, error) {
	if rawURL == "" {
		return nopSyncWriteCloser{os.Stdout}, nil
	}
	scheme := urlScheme(rawURL)
	switch scheme {
	case "", "file":
		f, err := os.Create(strings.TrimPrefix(rawURL, "file://"))
		if err != nil {
			return nil, fmt.Errorf("opening output %q: %w", rawURL, err)
		}
		return f, nil
	case "http", "https":
		return nil, fmt.Errorf("opening output %q: http(s) output is not supported", rawURL)
	default:
		bucketURL, key, err := splitBucketKey(rawURL)
		if err != nil {
			return nil, fmt.Errorf("opening output %q: %w", rawURL, err)
		}
		bucket, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return nil, fmt.Errorf("opening output bucket %q: %w", bucketURL, err)
		}
		w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{
			BufferSize:     8 * 1000 * 1000,
			MaxConcurrency: 5,
		})
		if err != nil {
			bucket.Close()
			return nil, fmt.Errorf("opening output %q: %w", rawURL, err)
		}
		return &bucketWriter{Writer: w, bucket: bucket}, nil
	}
}

func urlScheme(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme
}

// splitBucketKey divides a cloud object URL into the bucket URL
// gocloud.dev/blob.OpenBucket expects and the key within it, the way the
// object's directory and basename normally separate a bucket root from a
// file inside it.
func splitBucketKey(rawURL string) (bucketURL, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	dir, file := path.Split(u.Path)
	dir = strings.TrimSuffix(dir, "/")
	u.Path = dir
	return u.String(), strings.TrimPrefix(file, "/"), nil
}

type bucketReader struct {
	*blob.Reader
	bucket *blob.Bucket
}

func (r *bucketReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.bucket.Close(); err == nil {
		err = cerr
	}
	return err
}

type bucketWriter struct {
	*blob.Writer
	bucket *blob.Bucket
}

func (w *bucketWriter) Close() error {
	err := w.Writer.Close()
	if cerr := w.bucket.Close(); err == nil {
		err = cerr
	}
	return err
}

// nopSyncWriteCloser wraps os.Stdout so closing it at the end of a run
// (symmetrical with every other OpenOutput branch) doesn't close the
// process's actual stdout descriptor.
type nopSyncWriteCloser struct {
	io.Writer
}

func (nopSyncWriteCloser) Close() error { return nil }
