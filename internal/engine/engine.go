// ABOUTME: Fetch-and-fallback engine wrapping the remote update service
// ABOUTME: Adds connectivity-aware fallback, status caching, and response post-processing

package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nvdw/otacheck/internal/connectivity"
	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/storage"
)

// ServerClient is the remote operation surface the engine wraps. Implemented
// by api.Client; tests substitute fakes.
type ServerClient interface {
	Devices(ctx context.Context, filter string) ([]models.Device, error)
	UpdateData(ctx context.Context, deviceID, updateMethodID int64, incrementalVersion string) (*models.UpdateData, error)
	MostRecentUpdateData(ctx context.Context, deviceID, updateMethodID int64) (*models.UpdateData, error)
	ServerStatus(ctx context.Context) (*models.ServerStatus, error)
	ServerMessages(ctx context.Context, deviceID, updateMethodID int64) ([]models.ServerMessage, error)
	News(ctx context.Context, deviceID, updateMethodID int64) ([]models.NewsItem, error)
	NewsItem(ctx context.Context, id int64) (*models.NewsItem, error)
	MarkNewsRead(ctx context.Context, id int64) error
	UpdateMethods(ctx context.Context, deviceID int64) ([]models.UpdateMethod, error)
	InstallGuidePage(ctx context.Context, deviceID, updateMethodID int64, page int) (*models.InstallGuidePage, error)
	FAQ(ctx context.Context) ([]models.FAQEntry, error)
	SubmitUpdateFile(ctx context.Context, filename string) error
	LogDownloadError(ctx context.Context, deviceID, updateMethodID int64, versionNumber, reason string) error
	LogRootInstall(ctx context.Context, install models.RootInstall) (*models.ServerPostResult, error)
	VerifyPurchase(ctx context.Context, purchaseToken string) (*models.ServerPostResult, error)
}

// statusCache is the single shared slot for the server status. Population is
// atomic: readers either see no value or a fully written one.
type statusCache struct {
	mu        sync.Mutex
	status    *models.ServerStatus
	fetchedAt time.Time
}

// Engine wraps ServerClient calls with connectivity-aware fallback and
// response post-processing. Remote failures never escape as errors: callers
// get nil/empty results and must treat them as "unknown".
type Engine struct {
	client     ServerClient
	prefs      prefs.Store
	news       storage.Store
	conn       connectivity.Checker
	appVersion string
	logger     *slog.Logger

	status statusCache
}

// New creates an engine over the given collaborators.
func New(client ServerClient, p prefs.Store, news storage.Store, conn connectivity.Checker, appVersion string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		client:     client,
		prefs:      p,
		news:       news,
		conn:       conn,
		appVersion: appVersion,
		logger:     logger,
	}
}
