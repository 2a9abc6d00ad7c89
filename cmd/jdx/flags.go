package main

import "github.com/urfave/cli/v3"

var (
	storeKind string
	storeRoot string
	bucket    string
	prefix    string
	endpoint  string
	region    string
	secure    bool

	workers int
	ioLimit int64

	logLevel  string
	logFormat string
)

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "blob store backend (local, s3, minio)",
			Value:       "local",
			Destination: &storeKind,
		},
		&cli.StringFlag{
			Name:        "root",
			Usage:       "root directory of the local store",
			Value:       ".",
			Destination: &storeRoot,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "bucket of the s3 or minio store",
			Sources:     cli.EnvVars("JDX_BUCKET"),
			Destination: &bucket,
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "key prefix inside the bucket",
			Destination: &prefix,
		},
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "custom S3 endpoint or minio host:port",
			Sources:     cli.EnvVars("JDX_ENDPOINT"),
			Destination: &endpoint,
		},
		&cli.StringFlag{
			Name:        "region",
			Usage:       "override the AWS region",
			Destination: &region,
		},
		&cli.BoolFlag{
			Name:        "secure",
			Usage:       "use TLS for minio",
			Value:       true,
			Destination: &secure,
		},
	}
}

func runtimeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"j"},
			Usage:       "inputs decoded concurrently (0 = GOMAXPROCS)",
			Destination: &workers,
		},
		&cli.Int64Flag{
			Name:        "io-limit",
			Usage:       "read and write throughput limit in bytes per second (0 = unlimited)",
			Destination: &ioLimit,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}
