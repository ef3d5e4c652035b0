// Package netx performs the direct-to-storage leg of an upload: exactly one
// credentialed HTTP write to a presigned URL issued by the broker.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/shareling/internal/common"
)

// Credential is a server-issued, single-use upload authorization: a target
// URL, the HTTP method to use (observed as PUT) and any headers the storage
// backend requires. It must be consumed exactly once and never reused for a
// different upload.
type Credential struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// UploadToPresignedURL writes body to cred.URL in a single request. Any
// non-2xx status is a transfer failure; no retry or chunking is attempted.
func UploadToPresignedURL(ctx context.Context, cred Credential, body []byte) error {
	method := cred.Method
	if method == "" {
		method = http.MethodPut
	}

	req, err := http.NewRequestWithContext(ctx, method, cred.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	for k, v := range cred.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", common.DefaultContentType)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
