package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"menuboard-api/config"
	"menuboard-api/pkg/logger"

	"github.com/oklog/ulid/v2"
)

// ImageStore is a client for the external object store. Objects are written
// under ULID keys with a bearer token; a 401 triggers one token refresh and
// one retry, nothing else is ever retried.
type ImageStore struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client
	log          *logger.Logger

	mu    sync.Mutex
	token string
}

func NewImageStore(cfg config.ImageStoreConfig, log *logger.Logger) *ImageStore {
	return &ImageStore{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

// Enabled reports whether an external store is configured. When it is not,
// uploads stay in the local images table only.
func (s *ImageStore) Enabled() bool {
	return s.baseURL != ""
}

// Upload stores the bytes under a fresh key and returns the stable object
// URL.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := ulid.Make().String() + path.Ext(filename)
	objectURL := s.baseURL + "/objects/" + key

	status, err := s.put(ctx, objectURL, contentType, data)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		if err := s.refreshToken(ctx); err != nil {
			return "", err
		}
		status, err = s.put(ctx, objectURL, contentType, data)
		if err != nil {
			return "", err
		}
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("image store returned status %d", status)
	}
	return objectURL, nil
}

func (s *ImageStore) put(ctx context.Context, objectURL, contentType string, data []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// refreshToken exchanges client credentials for a fresh bearer token.
func (s *ImageStore) refreshToken(ctx context.Context) error {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.AccessToken == "" {
		return errors.New("token endpoint returned no access_token")
	}
	s.mu.Lock()
	s.token = body.AccessToken
	s.mu.Unlock()
	return nil
}
