// ABOUTME: Typed operations of the update service API consumed by the engine
// ABOUTME: Paths mirror the server's route layout; responses decode into internal models

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nvdw/otacheck/internal/models"
)

// Devices fetches devices matching filter ("all", "enabled", or "disabled").
func (c *Client) Devices(ctx context.Context, filter string) ([]models.Device, error) {
	var out []models.Device
	if err := c.getJSON(ctx, "/devices/"+url.PathEscape(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateData fetches update metadata for the given selection and reported
// incremental system version.
func (c *Client) UpdateData(ctx context.Context, deviceID, updateMethodID int64, incrementalVersion string) (*models.UpdateData, error) {
	var out models.UpdateData
	path := fmt.Sprintf("/updateData/%d/%d/%s", deviceID, updateMethodID, url.PathEscape(incrementalVersion))
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MostRecentUpdateData fetches the newest known build for the selection,
// without an incremental-version constraint.
func (c *Client) MostRecentUpdateData(ctx context.Context, deviceID, updateMethodID int64) (*models.UpdateData, error) {
	var out models.UpdateData
	path := fmt.Sprintf("/mostRecentUpdateData/%d/%d", deviceID, updateMethodID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServerStatus fetches the current service health.
func (c *Client) ServerStatus(ctx context.Context) (*models.ServerStatus, error) {
	var out models.ServerStatus
	if err := c.getJSON(ctx, "/serverStatus", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServerMessages fetches announcements for the given selection.
func (c *Client) ServerMessages(ctx context.Context, deviceID, updateMethodID int64) ([]models.ServerMessage, error) {
	var out []models.ServerMessage
	path := fmt.Sprintf("/serverMessages/%d/%d", deviceID, updateMethodID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// News fetches the news feed for the given selection.
func (c *Client) News(ctx context.Context, deviceID, updateMethodID int64) ([]models.NewsItem, error) {
	var out []models.NewsItem
	path := fmt.Sprintf("/news/%d/%d", deviceID, updateMethodID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewsItem fetches one news item by id.
func (c *Client) NewsItem(ctx context.Context, id int64) (*models.NewsItem, error) {
	var out models.NewsItem
	if err := c.getJSON(ctx, fmt.Sprintf("/news-item/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNewsRead reports to the server that a news item was opened.
func (c *Client) MarkNewsRead(ctx context.Context, id int64) error {
	return c.postJSON(ctx, "/news-read", map[string]int64{"news_item_id": id}, nil)
}

// UpdateMethods fetches the update methods available for a device.
func (c *Client) UpdateMethods(ctx context.Context, deviceID int64) ([]models.UpdateMethod, error) {
	var out []models.UpdateMethod
	if err := c.getJSON(ctx, fmt.Sprintf("/updateMethods/%d", deviceID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InstallGuidePage fetches one page of the manual install guide.
func (c *Client) InstallGuidePage(ctx context.Context, deviceID, updateMethodID int64, page int) (*models.InstallGuidePage, error) {
	var out models.InstallGuidePage
	path := fmt.Sprintf("/installGuide/%d/%d/%d", deviceID, updateMethodID, page)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FAQ fetches the frequently-asked-questions list.
func (c *Client) FAQ(ctx context.Context) ([]models.FAQEntry, error) {
	var out []models.FAQEntry
	if err := c.getJSON(ctx, "/faq", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitUpdateFile reports an update filename unknown to the server.
func (c *Client) SubmitUpdateFile(ctx context.Context, filename string) error {
	return c.postJSON(ctx, "/update-file", map[string]string{"filename": filename}, nil)
}

// LogDownloadError reports a failed update download.
func (c *Client) LogDownloadError(ctx context.Context, deviceID, updateMethodID int64, versionNumber, reason string) error {
	body := map[string]any{
		"device_id":        deviceID,
		"update_method_id": updateMethodID,
		"version_number":   versionNumber,
		"reason":           reason,
	}
	return c.postJSON(ctx, "/log-download-error", body, nil)
}

// LogRootInstall submits the outcome of an automatic installation attempt.
// A malformed response decodes to ErrMalformedResponse, which the engine
// converts into a structured failure result.
func (c *Client) LogRootInstall(ctx context.Context, install models.RootInstall) (*models.ServerPostResult, error) {
	var out models.ServerPostResult
	if err := c.postJSON(ctx, "/log-update-installed", install, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPurchase asks the server to validate an in-app purchase token.
func (c *Client) VerifyPurchase(ctx context.Context, purchaseToken string) (*models.ServerPostResult, error) {
	var out models.ServerPostResult
	body := map[string]string{"purchase_token": purchaseToken}
	if err := c.postJSON(ctx, "/verify-purchase", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
