package http

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"memscan/pkg/proc"
	"memscan/service"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *proc.Image) {
	t.Helper()

	img := proc.NewImage(0x2000, []byte{0x2a, 0x00, 0x2a, 0x00, 0x00, 0x00, 0x2a, 0x00})
	s := service.NewImageSession(img, service.SessionOptions{Order: binary.LittleEndian})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv, err := NewServer(service.Config{}, listener, s)
	require.NoError(t, err)
	require.NoError(t, srv.Run())
	t.Cleanup(func() { srv.Stop() })

	return srv, img
}

func TestClientServerRoundTrip(t *testing.T) {
	srv, img := newTestServer(t)

	c, err := NewClient(srv.Listener.Addr().String())
	require.NoError(t, err)

	out, err := c.SendExpr(service.Memscan, "0 2 42")
	require.NoError(t, err)
	assert.Contains(t, out, "Listed 3 entries")

	require.NoError(t, img.Poke(0x2002, []byte{0x2b}))
	out, err = c.SendExpr(service.Memscan, "0 2 42")
	require.NoError(t, err)
	assert.Contains(t, out, "Listed 2 entries")

	out, err = c.SendExpr(service.SlotList, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Slot 0: Size 2, 2 hits")

	_, err = c.SendExpr(service.Memscan, "0 4 42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear the slot first")

	out, err = c.SendExpr(service.SlotClear, "0")
	require.NoError(t, err)
	assert.Equal(t, "Slot 0 is clear\n", out)
}

func TestNewClientRejectsNonServer(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"status":418}`))
	}))
	defer other.Close()

	_, err := NewClient(other.Listener.Addr().String())
	assert.Error(t, err)
}

func serve(srv *Server, method, path, expr string) (*httptest.ResponseRecorder, *response) {
	body, _ := json.Marshal(newExpression(expr, 1))
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	resp := new(response)
	json.Unmarshal(rec.Body.Bytes(), resp)
	return rec, resp
}

func TestServerRouting(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, resp := serve(srv, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, resp.Status)

	rec, _ = serve(srv, http.MethodGet, "/memscan", "memscan 0 1 42")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = serve(srv, http.MethodPost, "/memscan", "slotls")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Msg, "invalid command")

	rec, _ = serve(srv, http.MethodPost, "/memscan", "memscan 9 1 42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(srv, http.MethodGet, "/read", "read 0x9000")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec, resp = serve(srv, http.MethodGet, "/regions", "regions")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Data, "[image]")
}

func TestServerRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/slotls", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/slotls", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
