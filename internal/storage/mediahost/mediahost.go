// Package mediahost implements storage.Storage against an external media
// hosting service over HTTP. Uploads go out as multipart form posts and the
// host answers with the public URL it assigned to the image.
package mediahost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/storage"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/httpclient"
)

// Config holds the media host connection settings.
type Config struct {
	BaseURL string
	APIKey  string
}

// Storage implements storage.Storage by delegating to the media host API.
// All calls go through a circuit breaker so a misbehaving host degrades to
// fast failures instead of piling up blocked uploads.
type Storage struct {
	cfg    Config
	client *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// New creates a media host storage backend.
func New(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Storage {
	return &Storage{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload streams the image to the media host and returns the hosted URL.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("folder", input.Folder); err != nil {
		return nil, fmt.Errorf("write folder field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, input.Filename))
	header.Set("Content-Type", input.ContentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, input.Data); err != nil {
		return nil, fmt.Errorf("copy file data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/images", &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upload to media host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "media-host")
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode media host response: %w", err)
	}

	s.logger.DebugContext(ctx, "image uploaded to media host",
		slog.String("key", result.Key),
		slog.String("folder", input.Folder),
	)

	return &storage.UploadResult{
		Key: result.Key,
		URL: result.URL,
	}, nil
}

// Delete removes a hosted image by its key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	endpoint := s.cfg.BaseURL + "/v1/images/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("delete from media host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "media-host")
	}
	return nil
}
