package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"coreselect/internal/shared/storage/object"
	"coreselect/internal/shared/storage/object/local"
	s3store "coreselect/internal/shared/storage/object/s3"
)

const (
	defaultBackend = "http://127.0.0.1:5000"
	defaultTimeout = 90 * time.Second
)

// Options is the resolved CLI configuration.
type Options struct {
	Backend    string
	StateDir   string
	StateStore string
	S3Bucket   string
	S3Prefix   string
	AWSRegion  string
	Timeout    time.Duration
	Verbose    bool
}

func loadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		Backend:    strings.TrimRight(strings.TrimSpace(v.GetString("backend")), "/"),
		StateDir:   strings.TrimSpace(v.GetString("state-dir")),
		StateStore: strings.ToLower(strings.TrimSpace(v.GetString("state-store"))),
		S3Bucket:   strings.TrimSpace(v.GetString("s3-bucket")),
		S3Prefix:   strings.TrimSpace(v.GetString("s3-prefix")),
		AWSRegion:  strings.TrimSpace(v.GetString("aws-region")),
		Timeout:    v.GetDuration("timeout"),
		Verbose:    v.GetBool("verbose"),
	}
	if opts.Backend == "" {
		opts.Backend = defaultBackend
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.StateStore == "" {
		opts.StateStore = "local"
	}
	switch opts.StateStore {
	case "local":
		if opts.StateDir == "" {
			opts.StateDir = defaultStateDir()
		}
	case "s3":
		if opts.S3Bucket == "" {
			return Options{}, fmt.Errorf("state-store s3 requires --s3-bucket")
		}
	default:
		return Options{}, fmt.Errorf("unknown state-store %q (want local or s3)", opts.StateStore)
	}
	return opts, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "coreselect")
	}
	return ".coreselect"
}

// openObjectStore returns the store holding the saved recommendation.
func openObjectStore(ctx context.Context, opts Options) (object.ObjectStore, error) {
	if opts.StateStore == "s3" {
		store, err := s3store.New(ctx, opts.AWSRegion, opts.S3Bucket, opts.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("open s3 state store: %w", err)
		}
		return store, nil
	}
	return local.New(opts.StateDir), nil
}
