package game

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one connected socket. All fields except answered are owned by
// the hub goroutine or a single pump goroutine; answered is shared between
// the write pump (probing) and the hub (pong handling).
type client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan Envelope
	pingInterval time.Duration
	answered     atomic.Bool
}

// probe implements one liveness tick: a connection that never answered
// the previous ping is declared dead; otherwise it goes on the hook to
// answer the next one.
func (c *client) probe() bool {
	if !c.answered.Load() {
		return false
	}
	c.answered.Store(false)
	return true
}

// pong records a liveness reply from the client.
func (c *client) pong() {
	c.answered.Store(true)
}

// readPump forwards raw frames to the hub. Parsing happens there, so the
// send channel is only ever written and closed from the hub goroutine.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.hub.inbound <- inbound{client: c, data: data}
	}
}

// writePump drains the send channel and runs the liveness ticker. The
// hub closes send during teardown, which is what ends the loop; a failed
// probe instead closes the socket so the read pump triggers teardown.
func (c *client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			if !c.probe() {
				return
			}
			if err := c.conn.WriteJSON(Envelope{Type: TypePing}); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades the request and hands the connection to the hub.
func ServeWS(h *Hub, pingInterval time.Duration) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		c := &client{
			hub:          h,
			conn:         conn,
			send:         make(chan Envelope, 16),
			pingInterval: pingInterval,
		}
		c.answered.Store(true)

		h.register <- c

		go c.writePump()
		c.readPump()
	}
}
