// Package sharepoint pulls resumes from and pushes reports to a SharePoint
// document library through the Microsoft Graph drive API, authenticating
// with OAuth2 client credentials.
package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphURL = "https://graph.microsoft.com/v1.0"
	tokenURL = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	scope    = "https://graph.microsoft.com/.default"
)

// File is one drive item in the watched folder.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Created  string `json:"createdDateTime"`
	Modified string `json:"lastModifiedDateTime"`
}

// CreatedTime parses the Graph timestamp of the item. The zero time is
// returned when the field is absent or malformed.
func (f *File) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, f.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

type listResponse struct {
	Value []File `json:"value"`
}

type Client struct {
	ctx     context.Context
	driveID string
	logger  *zap.Logger

	// APIURL and HTTPClient are exported for test overrides.
	APIURL     string
	HTTPClient *http.Client
}

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	DriveID      string
}

// New builds a Graph drive client. The HTTP client carries the client
// credentials token source, so tokens refresh transparently.
func New(ctx context.Context, logger *zap.Logger, cfg Config) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf(tokenURL, cfg.TenantID),
		Scopes:       []string{scope},
	}

	httpClient := creds.Client(ctx)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		ctx:        ctx,
		driveID:    cfg.DriveID,
		logger:     logger,
		APIURL:     graphURL,
		HTTPClient: httpClient,
	}
}

// ListFiles returns the items in the given drive folder. The folder path is
// relative to the drive root, e.g. "Resumes/Incoming".
func (c *Client) ListFiles(folder string) ([]File, error) {
	endpoint := fmt.Sprintf("%s/drives/%s/root:/%s:/children", c.APIURL, c.driveID, escapePath(folder))

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing folder %q: %w", folder, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response listResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	c.logger.Debug("listed sharepoint folder",
		zap.String("folder", folder),
		zap.Int("files", len(response.Value)),
	)

	return response.Value, nil
}

// Download fetches the raw content of one drive item by ID.
func (c *Client) Download(itemID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/drives/%s/items/%s/content", c.APIURL, c.driveID, url.PathEscape(itemID))

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading item %q: %w", itemID, err)
	}
	defer resp.Body.Close()

	// Graph serves content via a redirect to a pre-signed URL; the default
	// client follows it, so only the final status matters here.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Upload puts content at folder/name, replacing an existing item.
func (c *Client) Upload(folder, name string, content []byte) error {
	endpoint := fmt.Sprintf("%s/drives/%s/root:/%s/%s:/content",
		c.APIURL, c.driveID, escapePath(folder), url.PathEscape(name))

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPut, endpoint, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	c.logger.Debug("uploaded file to sharepoint",
		zap.String("folder", folder),
		zap.String("name", name),
		zap.Int("bytes", len(content)),
	)

	return nil
}

// escapePath escapes each segment of a drive path while keeping the
// separators intact.
func escapePath(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}
