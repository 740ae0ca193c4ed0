package testserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/testserver"
	"github.com/stretchr/testify/require"
)

type created struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func doJSON(t *testing.T, method, url string, body any, auth bool) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.SetBasicAuth(testserver.AdminUser, testserver.AdminPassword)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func upload(t *testing.T, ts *testserver.TestServer, kind, filename, contentType string, content []byte) (*http.Response, []byte) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("type", kind))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL("/upload"), mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestProjectLifecycle(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	var ids []int64
	for _, p := range []map[string]any{
		{"title": "First", "description": "one", "status": "completed"},
		{"title": "Second", "description": "two", "status": "planned"},
		{"title": "Third", "description": "three"},
	} {
		resp, body := doJSON(t, http.MethodPost, ts.URL("/projects"), p, false)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		var c created
		require.NoError(t, json.Unmarshal(body, &c))
		require.Equal(t, "Project created successfully", c.Message)
		ids = append(ids, c.ID)
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL("/projects"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 3)
	require.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{list[0].ID, list[1].ID, list[2].ID})
	require.Equal(t, "completed", list[0].Status)

	resp, body = doJSON(t, http.MethodGet, ts.URL("/projects?status=completed&limit=2"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Third", list[0].Title)

	resp, body = doJSON(t, http.MethodPut, ts.URL("/projects"), map[string]any{"id": ids[0], "title": "Renamed"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodGet, ts.URL("/projects/"+strconv.FormatInt(ids[0], 10)), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "Renamed", got["title"])
	require.Equal(t, "one", got["description"])

	resp, _ = doJSON(t, http.MethodDelete, ts.URL("/projects?id="+strconv.FormatInt(ids[1], 10)), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, ts.URL("/projects?id="+strconv.FormatInt(ids[1], 10)), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL("/projects/"+strconv.FormatInt(ids[1], 10)), nil, false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, ts.URL("/projects"), map[string]any{"id": ids[1], "title": "Ghost"}, false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBeatGenreFilterAndValidation(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	for _, b := range []map[string]any{
		{"title": "Midnight", "audio_url": "/a.mp3", "genre": "hip-hop", "duration": 180},
		{"title": "Dreams", "audio_url": "/b.mp3", "genre": "electronic"},
	} {
		resp, body := doJSON(t, http.MethodPost, ts.URL("/beats"), b, false)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL("/beats?genre=hip-hop"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var beats []map[string]any
	require.NoError(t, json.Unmarshal(body, &beats))
	require.Len(t, beats, 1)
	require.Equal(t, "Midnight", beats[0]["title"])
	require.EqualValues(t, 180, beats[0]["duration"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL("/beats"), map[string]any{"title": "No audio"}, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL("/beats?limit=zero"), nil, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	resp, body := doJSON(t, http.MethodGet, ts.URL("/settings"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{}`, string(body))

	resp, _ = doJSON(t, http.MethodPost, ts.URL("/settings"), map[string]string{"name": "Ada", "email": "ada@example.com"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL("/settings"), map[string]string{"name": "Grace", "shoe_size": "9"}, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL("/settings"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"name":"Ada","email":"ada@example.com"}`, string(body))
}

func TestUploadServesStoredBytes(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})
	content := []byte("\x89PNG fake image bytes")

	resp, body := upload(t, ts, "image", "cover.png", "image/png", content)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Regexp(t, `^\d{13}-[0-9a-f]{12}\.png$`, out.Filename)
	require.Equal(t, ts.URL("/storage/uploads/image/"+out.Filename), out.URL)

	got, err := http.Get(out.URL)
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)
	require.Equal(t, "image/png", got.Header.Get("Content-Type"))
	data, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	require.Equal(t, content, data)

	resp, body = upload(t, ts, "image", "cover.png", "image/png", content)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second struct {
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(body, &second))
	require.NotEqual(t, out.Filename, second.Filename)
}

func TestUploadRejections(t *testing.T) {
	ts := testserver.New(t, testserver.Options{MaxUploadBytes: 16})

	resp, body := upload(t, ts, "image", "big.png", "image/png", bytes.Repeat([]byte("x"), 64))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "file too large")

	resp, body = upload(t, ts, "audio", "song.png", "image/png", []byte("tiny"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "unsupported file type")

	resp, body = upload(t, ts, "video", "clip.mp4", "video/mp4", []byte("tiny"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "invalid upload type")

	missing, err := http.Get(ts.URL("/storage/uploads/image/nothing.png"))
	require.NoError(t, err)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestProtectedWrites(t *testing.T) {
	ts := testserver.New(t, testserver.Options{ProtectWrites: true})
	p := map[string]any{"title": "Secret", "description": "admin only"}

	resp, _ := doJSON(t, http.MethodPost, ts.URL("/projects"), p, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL("/projects"), p, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = doJSON(t, http.MethodGet, ts.URL("/projects"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, ts.URL("/auth/login"), map[string]string{
		"username": testserver.AdminUser,
		"password": testserver.AdminPassword,
	}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Login successful")

	resp, _ = doJSON(t, http.MethodPost, ts.URL("/auth/login"), map[string]string{
		"username": testserver.AdminUser,
		"password": "wrong",
	}, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActivityRecordsChanges(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	resp, _ := doJSON(t, http.MethodPost, ts.URL("/beats"), map[string]any{"title": "Loop", "audio_url": "/loop.mp3"}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, ts.URL("/settings"), map[string]string{"tagline": "hi"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL("/activity?subject=beat"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "created", entries[0]["type"])
}

func TestMCPOverHTTP(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.URL("/mcp")}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"title": "Via MCP", "description": "made by a tool", "status": "in-progress"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	resp, body := doJSON(t, http.MethodGet, ts.URL("/projects?status=in-progress"), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Via MCP")
}
