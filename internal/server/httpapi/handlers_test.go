package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/logging"
	"github.com/dmitrijs2005/shareling/internal/netx"
	"github.com/dmitrijs2005/shareling/internal/server/auth"
	"github.com/dmitrijs2005/shareling/internal/server/models"
	"github.com/dmitrijs2005/shareling/internal/server/services"
)

type fakeUserService struct {
	registerOut *models.User
	registerErr error
	loginOut    string
	loginErr    error
}

func (f *fakeUserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}
func (f *fakeUserService) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginOut, f.loginErr
}

type fakeFileService struct {
	registerFile *models.File
	registerCred *netx.Credential
	registerErr  error
	registerIn   services.RegisterUploadInput
	owner        string

	listOut []*models.File
	listErr error

	deletedID string
	deleteErr error

	publicOut *models.File
	publicErr error

	downloadURL      string
	downloadErr      error
	downloadPassword string

	confirmedKey  string
	confirmedSize int64
	confirmErr    error
}

func (f *fakeFileService) Register(ctx context.Context, ownerID string, in services.RegisterUploadInput) (*models.File, *netx.Credential, error) {
	f.owner = ownerID
	f.registerIn = in
	if f.registerErr != nil {
		return nil, nil, f.registerErr
	}
	return f.registerFile, f.registerCred, nil
}
func (f *fakeFileService) List(ctx context.Context, ownerID string) ([]*models.File, error) {
	f.owner = ownerID
	return f.listOut, f.listErr
}
func (f *fakeFileService) Delete(ctx context.Context, ownerID string, id string) error {
	f.owner = ownerID
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeFileService) PublicInfo(ctx context.Context, id string) (*models.File, error) {
	if f.publicErr != nil {
		return nil, f.publicErr
	}
	return f.publicOut, nil
}
func (f *fakeFileService) DownloadURL(ctx context.Context, id string, password string) (string, error) {
	f.downloadPassword = password
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return f.downloadURL, nil
}
func (f *fakeFileService) ConfirmObjectCreated(ctx context.Context, storageKey string, sizeBytes int64) error {
	f.confirmedKey = storageKey
	f.confirmedSize = sizeBytes
	return f.confirmErr
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, us UserService, fs FileService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	h := NewHandler(us, fs, []byte(testSecret), log)
	return NewRouter(h)
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAccount(t *testing.T) {
	us := &fakeUserService{registerOut: &models.User{ID: "u-1", UserName: "alice"}}
	router := newTestRouter(t, us, &fakeFileService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "u-1", resp["id"])
	require.Equal(t, "alice", resp["username"])
}

func TestRegisterAccount_BadBody(t *testing.T) {
	router := newTestRouter(t, &fakeUserService{}, &fakeFileService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	us := &fakeUserService{loginOut: "token-abc"}
	router := newTestRouter(t, us, &fakeFileService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "pass1234",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "token-abc", resp.AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrorUnauthorized}
	router := newTestRouter(t, us, &fakeFileService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "unauthorized", resp.Code)
}

func TestRegisterUpload(t *testing.T) {
	fs := &fakeFileService{
		registerFile: &models.File{ID: "f-1"},
		registerCred: &netx.Credential{Method: "PUT", URL: "http://signed.example/put", Headers: map[string]string{"Content-Type": "text/plain"}},
	}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodPost, "/api/files", bearerFor(t, "u-1"), map[string]any{
		"originalFileName": "notes.txt",
		"contentType":      "text/plain",
		"sizeBytes":        12,
		"expiresInDays":    3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u-1", fs.owner)
	require.Equal(t, "notes.txt", fs.registerIn.OriginalFileName)
	require.Equal(t, 3, fs.registerIn.ExpiresInDays)

	var resp registerUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "f-1", resp.FileID)
	require.Equal(t, "PUT", resp.Upload.Method)
	require.Equal(t, "http://signed.example/put", resp.Upload.URL)
}

func TestRegisterUpload_ValidationError(t *testing.T) {
	fs := &fakeFileService{registerErr: common.ErrorValidation}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodPost, "/api/files", bearerFor(t, "u-1"), map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t, &fakeUserService{}, &fakeFileService{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/files"},
		{http.MethodGet, "/api/files"},
		{http.MethodDelete, "/api/files/f-1"},
	} {
		w := doJSON(t, router, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	w := doJSON(t, router, http.MethodGet, "/api/files", "Bearer garbage", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFiles(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	expires := created.AddDate(0, 0, 7)
	fs := &fakeFileService{listOut: []*models.File{
		{ID: "f-1", OriginalFileName: "a.txt", ContentType: "text/plain", SizeBytes: 1,
			Status: common.FileStatusReady, CreatedAt: created, ExpiresAt: expires},
		{ID: "f-2", OriginalFileName: "b.txt", Status: common.FileStatusDeleted,
			PasswordHash: "hash", CreatedAt: created, ExpiresAt: expires},
	}}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodGet, "/api/files", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u-1", fs.owner)

	var resp struct {
		Items []fileRecord `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	require.Equal(t, "f-1", resp.Items[0].FileID)
	require.False(t, resp.Items[0].PasswordRequired)
	require.True(t, resp.Items[1].PasswordRequired)
}

func TestDeleteFile(t *testing.T) {
	fs := &fakeFileService{}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodDelete, "/api/files/f-1", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "f-1", fs.deletedID)
	require.Equal(t, "u-1", fs.owner)
}

func TestDeleteFile_NotFound(t *testing.T) {
	fs := &fakeFileService{deleteErr: common.ErrorNotFound}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodDelete, "/api/files/ghost", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "File not found", resp.Message)
	require.Equal(t, "not_found", resp.Code)
}

func TestPublicMetadata(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fs := &fakeFileService{publicOut: &models.File{
		ID: "f-1", OriginalFileName: "a.txt", Status: common.FileStatusReady,
		PasswordHash: "hash", CreatedAt: created, ExpiresAt: created.AddDate(0, 0, 7),
	}}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodGet, "/api/public/f-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp fileRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "f-1", resp.FileID)
	require.True(t, resp.PasswordRequired)
}

func TestPublicMetadata_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{"not found", common.ErrorNotFound, http.StatusNotFound, "File not found", "not_found"},
		{"deleted", common.ErrorFileDeleted, http.StatusGone, "File deleted", "deleted"},
		{"expired", common.ErrorFileExpired, http.StatusGone, "File expired", "expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeFileService{publicErr: tt.err}
			router := newTestRouter(t, &fakeUserService{}, fs)

			w := doJSON(t, router, http.MethodGet, "/api/public/f-1", "", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantMessage, resp.Message)
			require.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestDownload_Redirect(t *testing.T) {
	fs := &fakeFileService{downloadURL: "http://signed.example/get/objects/f-1"}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodGet, "/api/files/f-1/download?password=pw", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "http://signed.example/get/objects/f-1", w.Header().Get("Location"))
	require.Equal(t, "pw", fs.downloadPassword)
}

func TestDownload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not ready", common.ErrorFileNotReady, http.StatusConflict, "not_ready"},
		{"password required", common.ErrorUnauthorized, http.StatusUnauthorized, "password_required"},
		{"expired", common.ErrorFileExpired, http.StatusGone, "expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeFileService{downloadErr: tt.err}
			router := newTestRouter(t, &fakeUserService{}, fs)

			w := doJSON(t, router, http.MethodGet, "/api/files/f-1/download", "", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestConfirmObject(t *testing.T) {
	fs := &fakeFileService{}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodPost, "/api/internal/objects/confirm", "", map[string]any{
		"storageKey": "objects/f-1",
		"sizeBytes":  2048,
	})
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "objects/f-1", fs.confirmedKey)
	require.Equal(t, int64(2048), fs.confirmedSize)
}

func TestConfirmObject_UnknownKey(t *testing.T) {
	fs := &fakeFileService{confirmErr: common.ErrorNotFound}
	router := newTestRouter(t, &fakeUserService{}, fs)

	w := doJSON(t, router, http.MethodPost, "/api/internal/objects/confirm", "", map[string]any{
		"storageKey": "objects/ghost",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
