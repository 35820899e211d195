package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// BucketClient uploads objects to a hosted storage service speaking the
// Supabase storage REST surface:
//
//	POST   {base}/storage/v1/object/{bucket}/{key}
//	public {base}/storage/v1/object/public/{bucket}/{key}
type BucketClient struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

// NewBucketClient creates a client for the given storage endpoint and bucket.
func NewBucketClient(baseURL, serviceKey, bucket string) *BucketClient {
	return &BucketClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BucketClient) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, url.PathEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("uploading %s: storage responded %d: %s", key, resp.StatusCode, detail)
	}

	return c.PublicURL(key), nil
}

// PublicURL derives the public URL for an uploaded object.
func (c *BucketClient) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, url.PathEscape(key))
}
