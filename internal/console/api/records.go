package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/catalog"
)

// RecordClient talks to the record API. Mutations always carry the bearer
// token; reads carry it only when the caller asks (some collections are
// protected on read as well).
type RecordClient struct {
	base baseClient
}

func NewRecordClient(baseURL string, timeout time.Duration, token TokenSource) *RecordClient {
	return &RecordClient{
		base: newBaseClient(baseURL, &http.Client{Timeout: timeout}, token),
	}
}

// List fetches the full collection. The result fully replaces any cached
// copy held by the caller.
func (c *RecordClient) List(ctx context.Context, collection string, authorized bool) ([]catalog.Record, error) {
	var out []catalog.Record
	if err := c.base.doJSON(ctx, http.MethodGet, "/"+collection, nil, &out, authorized); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrRecordRequestFailed, err.Error())
	}
	return out, nil
}

// Create posts a new record to the collection.
func (c *RecordClient) Create(ctx context.Context, collection string, rec catalog.Record) error {
	if err := c.base.doJSON(ctx, http.MethodPost, "/"+collection, rec, nil, true); err != nil {
		return fmt.Errorf("%w: %s", common.ErrRecordRequestFailed, err.Error())
	}
	return nil
}

// Update replaces the record identified by id.
func (c *RecordClient) Update(ctx context.Context, collection, id string, rec catalog.Record) error {
	path := "/" + collection + "/" + url.PathEscape(id)
	if err := c.base.doJSON(ctx, http.MethodPut, path, rec, nil, true); err != nil {
		return fmt.Errorf("%w: %s", common.ErrRecordRequestFailed, err.Error())
	}
	return nil
}

// Delete removes the record identified by id.
func (c *RecordClient) Delete(ctx context.Context, collection, id string) error {
	path := "/" + collection + "/" + url.PathEscape(id)
	if err := c.base.doJSON(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%w: %s", common.ErrDeleteRequestFailed, err.Error())
	}
	return nil
}
