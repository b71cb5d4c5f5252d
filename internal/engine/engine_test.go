// ABOUTME: Shared fakes for engine tests: scripted server client and fixed connectivity
// ABOUTME: Builds engines over a real SQLite store and file-backed preferences

package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/storage"
)

var errRemote = errors.New("remote failure")

// fakeClient is a scripted ServerClient that records call counts.
type fakeClient struct {
	update      *models.UpdateData
	updateErr   error
	updateCalls int
	recent      *models.UpdateData
	recentErr   error
	recentCalls int
	status      *models.ServerStatus
	statusErr   error
	statusCalls int
	messages    []models.ServerMessage
	messagesErr error
	news        []models.NewsItem
	newsErr     error
	newsItem    *models.NewsItem
	newsItemErr error
	methods     []models.UpdateMethod
	methodsErr  error
	rootResult  *models.ServerPostResult
	rootErr     error
	readReports []int64
}

func (f *fakeClient) Devices(ctx context.Context, filter string) ([]models.Device, error) {
	return nil, nil
}

func (f *fakeClient) UpdateData(ctx context.Context, deviceID, updateMethodID int64, incrementalVersion string) (*models.UpdateData, error) {
	f.updateCalls++
	return f.update, f.updateErr
}

func (f *fakeClient) MostRecentUpdateData(ctx context.Context, deviceID, updateMethodID int64) (*models.UpdateData, error) {
	f.recentCalls++
	return f.recent, f.recentErr
}

func (f *fakeClient) ServerStatus(ctx context.Context) (*models.ServerStatus, error) {
	f.statusCalls++
	return f.status, f.statusErr
}

func (f *fakeClient) ServerMessages(ctx context.Context, deviceID, updateMethodID int64) ([]models.ServerMessage, error) {
	return f.messages, f.messagesErr
}

func (f *fakeClient) News(ctx context.Context, deviceID, updateMethodID int64) ([]models.NewsItem, error) {
	return f.news, f.newsErr
}

func (f *fakeClient) NewsItem(ctx context.Context, id int64) (*models.NewsItem, error) {
	return f.newsItem, f.newsItemErr
}

func (f *fakeClient) MarkNewsRead(ctx context.Context, id int64) error {
	f.readReports = append(f.readReports, id)
	return nil
}

func (f *fakeClient) UpdateMethods(ctx context.Context, deviceID int64) ([]models.UpdateMethod, error) {
	return f.methods, f.methodsErr
}

func (f *fakeClient) InstallGuidePage(ctx context.Context, deviceID, updateMethodID int64, page int) (*models.InstallGuidePage, error) {
	return nil, nil
}

func (f *fakeClient) FAQ(ctx context.Context) ([]models.FAQEntry, error) { return nil, nil }

func (f *fakeClient) SubmitUpdateFile(ctx context.Context, filename string) error { return nil }

func (f *fakeClient) LogDownloadError(ctx context.Context, deviceID, updateMethodID int64, versionNumber, reason string) error {
	return nil
}

func (f *fakeClient) LogRootInstall(ctx context.Context, install models.RootInstall) (*models.ServerPostResult, error) {
	return f.rootResult, f.rootErr
}

func (f *fakeClient) VerifyPurchase(ctx context.Context, purchaseToken string) (*models.ServerPostResult, error) {
	return nil, nil
}

// fakeConn is a connectivity checker with a fixed verdict.
type fakeConn struct{ online bool }

func (c *fakeConn) Online() bool { return c.online }

type testEnv struct {
	engine *Engine
	client *fakeClient
	conn   *fakeConn
	prefs  *prefs.FileStore
	news   *storage.SQLiteStore
}

func newTestEngine(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	p, err := prefs.NewFileStore(filepath.Join(dir, "prefs.json"))
	if err != nil {
		t.Fatalf("failed to create prefs: %v", err)
	}
	news, err := storage.NewSQLiteStore(filepath.Join(dir, "news.db"))
	if err != nil {
		t.Fatalf("failed to create news store: %v", err)
	}
	t.Cleanup(func() { news.Close() })

	client := &fakeClient{}
	conn := &fakeConn{online: true}
	return &testEnv{
		engine: New(client, p, news, conn, "5.4.0", nil),
		client: client,
		conn:   conn,
		prefs:  p,
		news:   news,
	}
}

func strptr(s string) *string { return &s }
