package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hupe1980/jdx"
	"github.com/hupe1980/jdx/blobstore"
	"github.com/hupe1980/jdx/blobstore/minio"
	"github.com/hupe1980/jdx/blobstore/s3"
	"github.com/hupe1980/jdx/resource"
)

// openStore builds the blob store selected by the global flags.
func openStore(ctx context.Context) (blobstore.Store, error) {
	switch strings.ToLower(storeKind) {
	case "", "local":
		return blobstore.NewLocalStore(storeRoot), nil
	case "s3":
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 store")
		}
		var opts []s3.Option
		if prefix != "" {
			opts = append(opts, s3.WithPrefix(prefix))
		}
		if region != "" {
			opts = append(opts, s3.WithRegion(region))
		}
		if endpoint != "" {
			opts = append(opts, s3.WithEndpoint(endpoint))
		}
		return s3.New(ctx, bucket, opts...)
	case "minio":
		if bucket == "" || endpoint == "" {
			return nil, fmt.Errorf("--bucket and --endpoint are required for the minio store")
		}
		access, secret := minioCredentials()
		client, err := minio.Dial(endpoint, access, secret, secure)
		if err != nil {
			return nil, err
		}
		return minio.NewStore(client, bucket, prefix), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want local, s3 or minio)", storeKind)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", s)
	}
	return level, nil
}

func newLogger() (*jdx.Logger, error) {
	level, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(logFormat) {
	case "", "text":
		return jdx.NewTextLogger(level), nil
	case "json":
		return jdx.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", logFormat)
	}
}

// libOptions turns the global flags into options for the jdx package.
func libOptions() ([]jdx.Option, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	opts := []jdx.Option{jdx.WithLogger(logger), jdx.WithWorkers(workers)}

	if ioLimit > 0 {
		n := workers
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		rc := resource.NewController(resource.Config{
			MaxWorkers:         int64(n),
			IOLimitBytesPerSec: ioLimit,
		})
		opts = append(opts, jdx.WithResourceController(rc))
	}
	return opts, nil
}

// session bundles what every data command needs.
type session struct {
	store blobstore.Store
	opts  []jdx.Option
}

func newSession(ctx context.Context) (*session, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := libOptions()
	if err != nil {
		return nil, err
	}
	return &session{store: store, opts: opts}, nil
}

func (s *session) read(ctx context.Context, name string) (*jdx.Dataset, error) {
	return jdx.ReadFromStore(ctx, s.store, name, s.opts...)
}

func (s *session) write(ctx context.Context, d *jdx.Dataset, name string, extra ...jdx.Option) error {
	opts := append(append([]jdx.Option(nil), s.opts...), extra...)
	return d.WriteToStore(ctx, s.store, name, opts...)
}
