package gateway

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"babilonia.local/internal/platform/metrics"
)

// Cloudinary talks to the Cloudinary admin/upload API. Every call is
// bounded by the client timeout; there are no retries, a failed call
// surfaces immediately.
type Cloudinary struct {
	// BaseURL is overridable for tests, default api.cloudinary.com.
	BaseURL string

	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
	now       func() time.Time
}

func NewCloudinary(cloudName, apiKey, apiSecret string, timeout time.Duration) *Cloudinary {
	return &Cloudinary{
		BaseURL:   "https://api.cloudinary.com/v1_1",
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: timeout},
		now:       time.Now,
	}
}

// Configured reports whether credentials are present; the health
// endpoint exposes this.
func (c *Cloudinary) Configured() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

// AccountID returns the cloud name.
func (c *Cloudinary) AccountID() string {
	return c.cloudName
}

type cloudinaryResource struct {
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	SecureURL string `json:"secure_url"`
	CreatedAt string `json:"created_at"`
}

func (r cloudinaryResource) toResource() Resource {
	createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return Resource{
		PublicID:  r.PublicID,
		Format:    r.Format,
		Width:     r.Width,
		Height:    r.Height,
		Bytes:     r.Bytes,
		URL:       r.SecureURL,
		CreatedAt: createdAt,
	}
}

func (c *Cloudinary) ListByPrefix(ctx context.Context, prefix string, maxResults int) ([]Resource, error) {
	q := url.Values{}
	q.Set("type", "upload")
	q.Set("prefix", prefix)
	q.Set("max_results", strconv.Itoa(maxResults))
	endpoint := fmt.Sprintf("%s/%s/resources/image/upload?%s", c.BaseURL, c.cloudName, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.MediaRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	var payload struct {
		Resources []cloudinaryResource `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	out := make([]Resource, 0, len(payload.Resources))
	for _, r := range payload.Resources {
		out = append(out, r.toResource())
	}
	metrics.MediaRequestsTotal.WithLabelValues("list", "ok").Inc()
	return out, nil
}

func (c *Cloudinary) GetByID(ctx context.Context, id string) (Resource, error) {
	// identifiers contain slashes and are used verbatim in the path
	endpoint := fmt.Sprintf("%s/%s/resources/image/upload/%s", c.BaseURL, c.cloudName, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Resource{}, err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("get", "error").Inc()
		return Resource{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.MediaRequestsTotal.WithLabelValues("get", "not_found").Inc()
		return Resource{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.MediaRequestsTotal.WithLabelValues("get", "error").Inc()
		return Resource{}, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	var r cloudinaryResource
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("get", "error").Inc()
		return Resource{}, fmt.Errorf("decode resource response: %w", err)
	}
	metrics.MediaRequestsTotal.WithLabelValues("get", "ok").Inc()
	return r.toResource(), nil
}

// DeleteByID uses the signed destroy endpoint; Cloudinary answers 200
// with result "not found" for unknown identifiers, which maps to
// ErrNotFound here.
func (c *Cloudinary) DeleteByID(ctx context.Context, id string) error {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	form := url.Values{}
	form.Set("public_id", id)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(map[string]string{
		"public_id": id,
		"timestamp": timestamp,
	}))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.BaseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.MediaRequestsTotal.WithLabelValues("delete", "error").Inc()
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	var payload struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("decode destroy response: %w", err)
	}
	if payload.Result != "ok" {
		metrics.MediaRequestsTotal.WithLabelValues("delete", "not_found").Inc()
		return ErrNotFound
	}
	metrics.MediaRequestsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (c *Cloudinary) Upload(ctx context.Context, upReq UploadRequest) (Resource, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := c.sign(map[string]string{
		"public_id": upReq.PublicID,
		"timestamp": timestamp,
	})

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var err error
		defer func() { pw.CloseWithError(err) }()
		if err = mw.WriteField("public_id", upReq.PublicID); err != nil {
			return
		}
		if err = mw.WriteField("timestamp", timestamp); err != nil {
			return
		}
		if err = mw.WriteField("api_key", c.apiKey); err != nil {
			return
		}
		if err = mw.WriteField("signature", signature); err != nil {
			return
		}
		var part io.Writer
		if part, err = mw.CreateFormFile("file", "file"); err != nil {
			return
		}
		if _, err = io.Copy(part, upReq.Body); err != nil {
			return
		}
		err = mw.Close()
	}()

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return Resource{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("upload", "error").Inc()
		return Resource{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		metrics.MediaRequestsTotal.WithLabelValues("upload", "error").Inc()
		return Resource{}, &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
	}

	var r cloudinaryResource
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		metrics.MediaRequestsTotal.WithLabelValues("upload", "error").Inc()
		return Resource{}, fmt.Errorf("decode upload response: %w", err)
	}
	metrics.MediaRequestsTotal.WithLabelValues("upload", "ok").Inc()
	return r.toResource(), nil
}

// sign produces the Cloudinary request signature: parameters sorted by
// name, joined k=v with '&', secret appended, SHA-1 hex.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
