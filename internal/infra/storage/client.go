package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	emptySessionToken       = ""
	publicObjectPathFmt     = "%s/storage/v1/object/public/%s/%s"
	errCreateSessionFmt     = "failed to create storage session: %w"
	errPutObjectFmt         = "failed to put object %s/%s: %w"
	errCreateBucketFmt      = "failed to create bucket %s: %w"
	supabaseStoragePathPart = "/storage/v1"
)

// Config aponta o SDK da AWS para o endpoint S3 do Supabase Storage.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// Client é o gateway de object storage. As URLs públicas seguem o formato do
// Supabase: {base}/storage/v1/object/public/{bucket}/{key}.
type Client struct {
	svc           s3iface.S3API
	publicBaseURL string
}

func NewClient(cfg Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptySessionToken,
		),
	})
	if err != nil {
		return nil, fmt.Errorf(errCreateSessionFmt, err)
	}

	return NewClientWithAPI(s3.New(sess), cfg.PublicBaseURL), nil
}

func NewClientWithAPI(svc s3iface.S3API, publicBaseURL string) *Client {
	base := strings.TrimRight(publicBaseURL, "/")
	base = strings.TrimSuffix(base, supabaseStoragePathPart)
	return &Client{svc: svc, publicBaseURL: base}
}

// Put grava o objeto sobrescrevendo se já existir.
func (c *Client) Put(ctx context.Context, bucket, key, contentType string, body []byte) error {
	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(body),
	})
	if err != nil {
		if hasCode(err, s3.ErrCodeNoSuchBucket) {
			return entity.ErrBucketNotFound
		}
		return fmt.Errorf(errPutObjectFmt, bucket, key, err)
	}
	return nil
}

// CreatePublicBucket cria o bucket com leitura pública.
// Bucket existente retorna entity.ErrBucketExists.
func (c *Client) CreatePublicBucket(ctx context.Context, bucket string) error {
	_, err := c.svc.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
		ACL:    aws.String(s3.BucketCannedACLPublicRead),
	})
	if err != nil {
		if hasCode(err, s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou) {
			return entity.ErrBucketExists
		}
		return fmt.Errorf(errCreateBucketFmt, bucket, err)
	}
	return nil
}

func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf(publicObjectPathFmt, c.publicBaseURL, bucket, url.PathEscape(key))
}

func hasCode(err error, codes ...string) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	for _, code := range codes {
		if aerr.Code() == code {
			return true
		}
	}
	return false
}

// ErrNotConfigured é devolvido pelo Unconfigured em todas as operações.
var ErrNotConfigured = errors.New("object storage not configured")

// Unconfigured ocupa o lugar do Client quando faltam as credenciais S3:
// o upload falha com erro de storage e o resto da API segue no ar.
type Unconfigured struct{}

func (Unconfigured) Put(context.Context, string, string, string, []byte) error {
	return ErrNotConfigured
}

func (Unconfigured) CreatePublicBucket(context.Context, string) error {
	return ErrNotConfigured
}

func (Unconfigured) PublicURL(string, string) string { return "" }
