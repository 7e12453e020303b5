// Package transport exposes the arena and per-robot RPC surfaces over
// JSON-framed websocket connections: one endpoint per process for the
// arena controller, and one per robot. Each connection is
// single-client and strictly request/response.
package transport

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/roboarena/simulator/arenasvc"
	"github.com/roboarena/simulator/robotsvc"
	"github.com/roboarena/simulator/simerr"
)

const (
	writeWait        = 1 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	closeGracePeriod = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Request is one RPC call: an operation name plus its raw JSON
// arguments, which each handler decodes according to its own op.
type Request struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response carries either a successful result or a fault back to the
// caller. Exactly one of Result/Fault is set.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Fault  *Fault          `json:"fault,omitempty"`
}

// Fault is how a simerr.Error crosses the RPC boundary.
type Fault struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func faultResponse(op string, err error) Response {
	kind := "internal"
	if k, ok := simerr.KindOf(err); ok {
		kind = k.String()
	}
	return Response{Fault: &Fault{Kind: kind, Message: fmt.Sprintf("%s: %v", op, err)}}
}

func resultResponse(v any) Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return Response{Fault: &Fault{Kind: "internal", Message: err.Error()}}
	}
	return Response{Result: raw}
}

// serve runs the read/dispatch/write loop for one upgraded connection
// until the client disconnects or handle signals termination.
func serve(ws *websocket.Conn, handle func(Request) (Response, bool)) {
	defer closeConn(ws)

	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		var req Request
		if err := ws.ReadJSON(&req); err != nil {
			return
		}

		resp, done := handle(req)

		ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(resp); err != nil {
			return
		}
		if done {
			return
		}
	}
}

func closeConn(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod / 100) // best-effort flush; the full grace period would stall every connection's shutdown
	ws.Close()
}

// ArenaHandler upgrades and serves the single arena endpoint.
func ArenaHandler(svc *arenasvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("transport: arena upgrade:", err)
			return
		}
		serve(ws, func(req Request) (Response, bool) { return dispatchArena(svc, req) })
	}
}

// RobotHandler upgrades and serves one robot's endpoint.
func RobotHandler(svc *robotsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("transport: robot upgrade:", err)
			return
		}
		serve(ws, func(req Request) (Response, bool) { return dispatchRobot(svc, req) })
	}
}
