package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
)

// ProgressFunc receives fractional upload progress in [0,1]. Progress is
// advisory only and must never gate correctness; implementations should be
// cheap and non-blocking.
type ProgressFunc func(fraction float64)

// UploadRequest is an ephemeral binary-upload description, consumed exactly
// once by an upload attempt.
type UploadRequest struct {
	FileName  string
	MIMEType  string
	SizeBytes int64
	// Key is the suggested storage key, e.g. "testimonials/1700000_clip.mp4".
	Key string
	// Body yields the file content. It is fully consumed by Upload.
	Body io.Reader
	// Progress, when non-nil, observes fractional progress.
	Progress ProgressFunc
}

// StorageClient uploads binary assets to the storage collaborator.
type StorageClient struct {
	base baseClient
}

func NewStorageClient(baseURL string, timeout time.Duration) *StorageClient {
	return &StorageClient{
		base: newBaseClient(baseURL, &http.Client{Timeout: timeout}, nil),
	}
}

// Upload posts the file as a multipart body, with the suggested storage key
// as a sibling form field, and returns the asset's public URL. There is no
// automatic retry; the caller decides whether to try again.
func (c *StorageClient) Upload(ctx context.Context, req UploadRequest) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, req)
		mw.Close()
		pw.CloseWithError(err)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.baseURL+"/uploads", pr)
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrUploadFailed, err.Error())
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.base.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrUploadFailed, err.Error())
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", common.ErrUploadFailed, responseMessage(resp.Status, data))
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.URL == "" {
		return "", fmt.Errorf("%w: no url in response", common.ErrUploadFailed)
	}
	return out.URL, nil
}

// Remove issues a best-effort delete of a previously uploaded asset. It is
// only used when upload rollback is enabled on a pipeline.
func (c *StorageClient) Remove(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base.baseURL+"/uploads/"+url.PathEscape(key), nil)
	if err != nil {
		return err
	}

	resp, err := c.base.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("remove upload: %s", responseMessage(resp.Status, data))
	}
	return nil
}

func writeMultipart(mw *multipart.Writer, req UploadRequest) error {
	if req.Key != "" {
		if err := mw.WriteField("key", req.Key); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(req.FileName)))
	if req.MIMEType != "" {
		h.Set("Content-Type", req.MIMEType)
	}

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	body := req.Body
	if req.Progress != nil && req.SizeBytes > 0 {
		body = &progressReader{r: req.Body, total: req.SizeBytes, fn: req.Progress}
	}

	_, err = io.Copy(part, body)
	return err
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// progressReader reports fractional read progress as the wrapped reader is
// consumed.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(float64(p.read) / float64(p.total))
	}
	return n, err
}
