// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client used to
// intermediate image uploads. The application never handles file bytes:
// it hands the browser a short-lived presigned PUT URL and records the
// resulting public URL. Wraps the AWS SDK v2 and is configured for
// path-style access (required by CEPH/Hetzner-style endpoints).
package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// uploadExpiry is how long a presigned PUT URL stays valid. Uploads
	// start immediately after the presign round-trip, so this is short.
	uploadExpiry = 60 * time.Second

	// maxFilenameLen caps sanitized filenames used in object keys.
	maxFilenameLen = 100
)

// unsafeKeyChars matches anything not allowed in a sanitized filename.
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Client wraps an S3 client for presigned upload operations.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	keyPrefix string
	publicURL string // base URL where uploaded objects become readable
}

// PresignedUpload is the result of a presign request: the browser PUTs
// the file to UploadURL, then records PublicURL as the image location.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

// New creates an S3 storage client with static credentials and path-style
// addressing. Returns (nil, nil) if credentials or bucket are empty,
// allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL, keyPrefix string) (*Client, error) {
	if accessKey == "" || secretKey == "" || bucket == "" {
		return nil, nil
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
	}
	s3Client := s3.New(opts)

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// PresignUpload builds an object key for the given filename and returns a
// time-limited write URL plus the eventual public read URL. The key embeds
// a millisecond timestamp so collisions are avoided without a uniqueness
// probe against the bucket.
func (c *Client) PresignUpload(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		name = "upload"
	}

	key := fmt.Sprintf("%s/%d-%s", c.keyPrefix, time.Now().UnixMilli(), name)

	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(NormalizeContentType(contentType)),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("s3 presign put %s/%s: %w", c.bucket, key, err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		PublicURL: c.FileURL(key),
		Key:       key,
	}, nil
}

// Delete removes an object from the bucket. Used for best-effort cleanup
// when an editor discards an uploaded image.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for an object key.
func (c *Client) FileURL(key string) string {
	return c.publicURL + "/" + key
}

// SanitizeFilename reduces a client-supplied filename to a safe object-key
// component: path separators are stripped, anything outside a conservative
// character set becomes a hyphen, and the result is length-capped while
// keeping the extension.
func SanitizeFilename(filename string) string {
	// Drop any directory components, whichever separator the client used.
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "." || filename == "/" {
		return ""
	}

	filename = unsafeKeyChars.ReplaceAllString(filename, "-")
	filename = strings.Trim(filename, "-.")
	if filename == "" {
		return ""
	}

	if len(filename) > maxFilenameLen {
		ext := path.Ext(filename)
		if len(ext) > 10 {
			ext = ""
		}
		filename = filename[:maxFilenameLen-len(ext)] + ext
	}
	return filename
}

// NormalizeContentType restricts upload content types to images. Anything
// outside the image/* allow-list is stored as a generic binary type rather
// than rejected, so the stored object can never masquerade as a served
// document type.
func NormalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}
	return "application/octet-stream"
}
