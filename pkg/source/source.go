package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3"

// ObjectGetter is the part of the S3 client used to fetch inputs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener opens input locations, local paths or s3://bucket/key objects
type Opener struct {
	region string

	once  sync.Once
	s3    ObjectGetter
	s3Err error
}

// OptionF describes a func that will be called from the New func
type OptionF func(*Opener)

// WithRegion sets the AWS region used for s3:// locations
func WithRegion(region string) OptionF {
	return func(o *Opener) {
		o.region = region
	}
}

// WithObjectGetter sets the S3 client instead of building one from the default chain
func WithObjectGetter(g ObjectGetter) OptionF {
	return func(o *Opener) {
		o.s3 = g
		o.once.Do(func() {})
	}
}

// New creates a new Opener
func New(opts ...OptionF) *Opener {
	o := &Opener{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ParseS3 splits an s3://bucket/key location
func ParseS3(location string) (bucket, key string, ok bool) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != s3Scheme || u.Host == "" {
		return "", "", false
	}

	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", false
	}

	return u.Host, key, true
}

// Open returns a reader over location. The caller closes it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, s3Scheme+"://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("Error during opening %s: %w", location, err)
		}
		return f, nil
	}

	bucket, key, ok := ParseS3(location)
	if !ok {
		return nil, fmt.Errorf("Error during opening %q: want s3://bucket/key", location)
	}

	client, err := o.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("Error during fetching %s: %w", location, err)
	}

	return out.Body, nil
}

func (o *Opener) client(ctx context.Context) (ObjectGetter, error) {
	o.once.Do(func() {
		opts := []func(*awsconfig.LoadOptions) error{}
		if o.region != "" {
			opts = append(opts, awsconfig.WithRegion(o.region))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			o.s3Err = fmt.Errorf("Error during loading AWS config for S3: %w", err)
			return
		}
		o.s3 = s3.NewFromConfig(cfg)
	})

	return o.s3, o.s3Err
}
