package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudscape/core"
)

func newTestServer(t *testing.T, state core.State) (*httptest.Server, chan core.Param) {
	t.Helper()
	params := make(chan core.Param, 16)
	s := New("", params, func() core.State { return state }, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv, params
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Hello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello.Type)
	return conn
}

func receive(t *testing.T, params <-chan core.Param) core.Param {
	t.Helper()
	select {
	case p := <-params:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for parameter")
	}
	return core.Param{}
}

func TestHello(t *testing.T) {
	srv, _ := newTestServer(t, core.StateReady)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello Hello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "ready", hello.State)
	assert.Equal(t, core.ParamNames(), hello.Parameters)
	assert.Contains(t, hello.Parameters, "cameraDistance")
}

func TestForwardsParameters(t *testing.T) {
	srv, params := newTestServer(t, core.StateReady)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"name":"fov","value":2.0}`)))
	p := receive(t, params)
	assert.Equal(t, core.ParamFOV, p.Kind)
	assert.Equal(t, 2.0, p.Value)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`[{"name":"cameraAzimuth","value":90},{"name":"futureKnob","value":1}]`)))
	p = receive(t, params)
	assert.Equal(t, core.ParamCameraAzimuth, p.Kind)
	p = receive(t, params)
	assert.Equal(t, core.ParamUnknown, p.Kind)
	assert.Equal(t, "futureKnob", p.Name)
}

func TestMalformedMessageKeepsConnection(t *testing.T) {
	srv, params := newTestServer(t, core.StateReady)
	conn := dial(t, srv)

	for _, bad := range []string{`not json`, `{"name":"fov"}`, `{"value":1}`, `{"name":"fov","value":"wide"}`, ``} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(bad)))
	}
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"name":"cloudType","value":3}`)))

	p := receive(t, params)
	assert.Equal(t, core.ParamCloudType, p.Kind)
	assert.Equal(t, 3.0, p.Value)
	assert.Empty(t, params)
}

func TestPreservesOrder(t *testing.T) {
	srv, params := newTestServer(t, core.StateReady)
	conn := dial(t, srv)

	for i := 0; i < 10; i++ {
		msg, err := json.Marshal(map[string]any{"name": "noiseScale", "value": float64(i)})
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, float64(i), receive(t, params).Value)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		state core.State
		code  int
	}{
		{core.StateReady, http.StatusOK},
		{core.StateFailed, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.state.String(), func(t *testing.T) {
			srv, _ := newTestServer(t, tc.state)
			resp, err := http.Get(srv.URL + "/healthz")
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.code, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.state.String(), body["state"])
		})
	}
}

func TestDecodeMessages(t *testing.T) {
	msgs, err := DecodeMessages([]byte(`  {"name":"fov","value":1.5}  `))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "fov", msgs[0].Name)
	assert.Equal(t, 1.5, *msgs[0].Value)

	msgs, err = DecodeMessages([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, err = DecodeMessages([]byte(`[{"name":"fov","value":1},{"name":"x"}]`))
	assert.Error(t, err)
}

func TestListenAndServeStops(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := New(addr, make(chan core.Param, 1), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusServiceUnavailable
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
