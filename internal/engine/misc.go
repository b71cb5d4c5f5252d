// ABOUTME: Remaining engine operations: devices, update methods, guides, and write calls
// ABOUTME: Root-install logging converts JSON malformation into a structured failure result

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/nvdw/otacheck/internal/api"
	"github.com/nvdw/otacheck/internal/models"
)

// FetchDevices lists devices known to the server matching filter.
func (e *Engine) FetchDevices(ctx context.Context, filter string) []models.Device {
	devices, err := e.client.Devices(ctx, filter)
	if err != nil {
		e.logger.Warn("devices fetch failed", "error", err)
		return nil
	}
	return devices
}

// FetchUpdateMethods lists update methods for a device. Without root access,
// methods not marked root-compatible are excluded. The recommended flag of
// every returned method is recomputed from its recommended-for-non-rooted
// source flag, independent of the root filter.
func (e *Engine) FetchUpdateMethods(ctx context.Context, deviceID int64, hasRootAccess bool) []models.UpdateMethod {
	methods, err := e.client.UpdateMethods(ctx, deviceID)
	if err != nil {
		e.logger.Warn("update methods fetch failed", "error", err)
		return nil
	}

	result := make([]models.UpdateMethod, 0, len(methods))
	for _, m := range methods {
		if !hasRootAccess && !m.RootCompatible {
			continue
		}
		m.Recommended = m.RecommendedForNonRooted
		result = append(result, m)
	}
	return result
}

// FetchInstallGuidePage fetches one page of the manual install guide.
func (e *Engine) FetchInstallGuidePage(ctx context.Context, deviceID, updateMethodID int64, page int) *models.InstallGuidePage {
	guide, err := e.client.InstallGuidePage(ctx, deviceID, updateMethodID, page)
	if err != nil {
		e.logger.Warn("install guide fetch failed", "page", page, "error", err)
		return nil
	}
	return guide
}

// FetchFAQ fetches the FAQ list.
func (e *Engine) FetchFAQ(ctx context.Context) []models.FAQEntry {
	entries, err := e.client.FAQ(ctx)
	if err != nil {
		e.logger.Warn("faq fetch failed", "error", err)
		return nil
	}
	return entries
}

// SubmitUpdateFile reports an unrecognized update filename to the server.
func (e *Engine) SubmitUpdateFile(ctx context.Context, filename string) {
	if err := e.client.SubmitUpdateFile(ctx, filename); err != nil {
		e.logger.Warn("update file submission failed", "filename", filename, "error", err)
	}
}

// LogDownloadError reports a failed download to the server.
func (e *Engine) LogDownloadError(ctx context.Context, deviceID, updateMethodID int64, versionNumber, reason string) {
	if err := e.client.LogDownloadError(ctx, deviceID, updateMethodID, versionNumber, reason); err != nil {
		e.logger.Warn("download error report failed", "error", err)
	}
}

// LogRootInstall submits the outcome of an automatic installation attempt.
// This is the one call where payload malformation must not propagate: any
// parse failure is converted into a failed ServerPostResult carrying a
// diagnostic message.
func (e *Engine) LogRootInstall(ctx context.Context, install models.RootInstall) models.ServerPostResult {
	result, err := e.client.LogRootInstall(ctx, install)
	if err != nil {
		if errors.Is(err, api.ErrMalformedResponse) {
			return models.ServerPostResult{
				Success: false,
				Message: fmt.Sprintf("root install log response malformed: %v", err),
			}
		}
		return models.ServerPostResult{
			Success: false,
			Message: fmt.Sprintf("root install log failed: %v", err),
		}
	}
	if result == nil {
		return models.ServerPostResult{Success: false, Message: "root install log returned no result"}
	}
	return *result
}

// VerifyPurchase validates an in-app purchase token with the server.
func (e *Engine) VerifyPurchase(ctx context.Context, purchaseToken string) *models.ServerPostResult {
	result, err := e.client.VerifyPurchase(ctx, purchaseToken)
	if err != nil {
		e.logger.Warn("purchase verification failed", "error", err)
		return nil
	}
	return result
}
