package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostercli/internal/dataprocessing"
	"rostercli/internal/errors"
	"rostercli/pkg/contracts/domain"
)

// fakeService is an in-memory RosterServiceInterface for handler tests.
type fakeService struct {
	profiles map[string][]domain.Profile
}

func newFakeService() *fakeService {
	return &fakeService{profiles: make(map[string][]domain.Profile)}
}

func (f *fakeService) ImportFile(_ context.Context, ownerID, filename string, _ []byte) ([]domain.Profile, error) {
	if strings.HasSuffix(filename, ".pdf") {
		return nil, errors.NewValidationError("unsupported file type")
	}
	imported := []domain.Profile{{ID: "imported_1", Name: "Alice", Status: domain.StatusPending}}
	f.profiles[ownerID] = append(f.profiles[ownerID], imported...)
	return imported, nil
}

func (f *fakeService) List(_ context.Context, ownerID string) ([]domain.Profile, error) {
	return f.profiles[ownerID], nil
}

func (f *fakeService) Get(_ context.Context, ownerID, id string) (domain.Profile, error) {
	for _, p := range f.profiles[ownerID] {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Profile{}, errors.NewNotFoundError("profile")
}

func (f *fakeService) Create(_ context.Context, ownerID string, p domain.Profile) (domain.Profile, error) {
	if p.ID == "" {
		p.ID = "created_1"
	}
	if p.Status == "" {
		p.Status = domain.StatusPending
	}
	f.profiles[ownerID] = append(f.profiles[ownerID], p)
	return p, nil
}

func (f *fakeService) BulkCreate(_ context.Context, ownerID string, profiles []domain.Profile) error {
	f.profiles[ownerID] = append(f.profiles[ownerID], profiles...)
	return nil
}

func (f *fakeService) Update(ctx context.Context, ownerID string, p domain.Profile) (domain.Profile, error) {
	for i, existing := range f.profiles[ownerID] {
		if existing.ID == p.ID {
			f.profiles[ownerID][i] = p
			return p, nil
		}
	}
	return domain.Profile{}, errors.NewNotFoundError("profile")
}

func (f *fakeService) UpdateStatus(_ context.Context, ownerID, id string, status domain.Status) (domain.Profile, error) {
	if !status.Valid() {
		return domain.Profile{}, errors.NewValidationError("invalid status")
	}
	for i, p := range f.profiles[ownerID] {
		if p.ID == id {
			f.profiles[ownerID][i].Status = status
			return f.profiles[ownerID][i], nil
		}
	}
	return domain.Profile{}, errors.NewNotFoundError("profile")
}

func (f *fakeService) Delete(_ context.Context, ownerID, id string) error {
	for i, p := range f.profiles[ownerID] {
		if p.ID == id {
			f.profiles[ownerID] = append(f.profiles[ownerID][:i], f.profiles[ownerID][i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("profile")
}

func (f *fakeService) DeleteAll(_ context.Context, ownerID string) (int64, error) {
	count := int64(len(f.profiles[ownerID]))
	f.profiles[ownerID] = nil
	return count, nil
}

func (f *fakeService) SelectionStats(_ context.Context, ownerID string, selectedIDs []string) (domain.SelectionStats, error) {
	return dataprocessing.ComputeStats(f.profiles[ownerID], selectedIDs), nil
}

func (f *fakeService) Export(_ context.Context, _, format string, w io.Writer) error {
	if format != "csv" && format != "xlsx" && format != "excel" {
		return errors.NewValidationError("unsupported export format")
	}
	_, err := w.Write([]byte("Name\n"))
	return err
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeService) {
	t.Helper()
	svc := newFakeService()
	server := httptest.NewServer(NewRosterHandler(svc, nil).Routes())
	t.Cleanup(server.Close)
	return server, svc
}

func doRequest(t *testing.T, method, url string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set(OwnerHeader, "owner1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestOwnerHeaderRequired(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProfiles(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{{ID: "p1", Name: "Alice"}}

	resp := doRequest(t, http.MethodGet, server.URL+"/", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profiles []domain.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].Name)
}

func TestGetProfile(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{{ID: "p1", Name: "Alice"}}

	t.Run("found", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, server.URL+"/p1", nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, server.URL+"/ghost", nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateProfile(t *testing.T) {
	server, _ := newTestServer(t)

	body, err := json.Marshal(domain.Profile{Name: "Carol"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPost, server.URL+"/", bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
}

func TestBulkCreateProfiles(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("valid batch", func(t *testing.T) {
		body := `{"profiles":[{"id":"p1","name":"A"},{"id":"p2","name":"B"}]}`
		resp := doRequest(t, http.MethodPost, server.URL+"/bulk", strings.NewReader(body),
			map[string]string{"Content-Type": "application/json"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, server.URL+"/bulk", strings.NewReader(`{"profiles":[]}`),
			map[string]string{"Content-Type": "application/json"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestImportFileUpload(t *testing.T) {
	server, _ := newTestServer(t)

	makeUpload := func(t *testing.T, filename string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("Name\nAlice\n"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		return &buf, writer.FormDataContentType()
	}

	t.Run("successful import", func(t *testing.T) {
		buf, contentType := makeUpload(t, "roster.csv")
		resp := doRequest(t, http.MethodPost, server.URL+"/import", buf,
			map[string]string{"Content-Type": contentType})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var profiles []domain.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))
		assert.Len(t, profiles, 1)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		buf, contentType := makeUpload(t, "roster.pdf")
		resp := doRequest(t, http.MethodPost, server.URL+"/import", buf,
			map[string]string{"Content-Type": contentType})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing file field", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, server.URL+"/import", strings.NewReader("nope"),
			map[string]string{"Content-Type": "multipart/form-data; boundary=x"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSelectionStatsEndpoint(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{
		{ID: "p1", Followers: 5000},
		{ID: "p2", Followers: 15000},
		{ID: "p3", Followers: 2000000},
	}

	body := `{"selected_ids":["p1","p2","p3"]}`
	resp := doRequest(t, http.MethodPost, server.URL+"/stats", strings.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats domain.SelectionStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, float64(2020000), stats.TotalFollowers)
	assert.Equal(t, "2.02M", stats.TotalFollowersDisplay)
	assert.Equal(t, 3, stats.TotalProfiles)
}

func TestUpdateProfile(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{{ID: "p1", Name: "Alice", Status: domain.StatusPending}}

	body := `{"name":"Alice","status":"accepted"}`
	resp := doRequest(t, http.MethodPut, server.URL+"/p1", strings.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
}

func TestUpdateProfileStatus(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{{ID: "p1", Name: "Alice", Status: domain.StatusPending}}

	t.Run("valid transition", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, server.URL+"/p1/status", strings.NewReader(`{"status":"rejected"}`),
			map[string]string{"Content-Type": "application/json"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated domain.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, domain.StatusRejected, updated.Status)
		assert.Equal(t, "Alice", updated.Name)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, server.URL+"/p1/status", strings.NewReader(`{"status":"archived"}`),
			map[string]string{"Content-Type": "application/json"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteEndpoints(t *testing.T) {
	server, svc := newTestServer(t)
	svc.profiles["owner1"] = []domain.Profile{{ID: "p1"}, {ID: "p2"}}

	resp := doRequest(t, http.MethodDelete, server.URL+"/p1", nil, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, server.URL+"/clear/all", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, int64(1), result["deleted"])
}

func TestExportEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("csv default", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, server.URL+"/export", nil, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, server.URL+"/export?format=pdf", nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
