package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"community_cards/internal/card"
	"community_cards/internal/domain"
	"community_cards/internal/logger"
	"community_cards/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	maxMessageSize = 4096
	sendBuffer     = 16
)

// CardService is the part of the card workflow the socket drives.
type CardService interface {
	PreviewForm(ctx context.Context, sessionID string, f card.Form) (*service.FormResult, error)
	Claim(ctx context.Context, sessionID string) (*domain.CardData, error)
}

// Client is one live preview socket bound to a session.
type Client struct {
	SessionID string

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	svc  CardService
	hub  *Hub
	log  *slog.Logger
}

func NewClient(sessionID string, conn *websocket.Conn, hub *Hub, svc CardService) *Client {
	return &Client{
		SessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
		svc:       svc,
		hub:       hub,
		log:       logger.With("component", "ws", "session_id", sessionID),
	}
}

// Run serves the socket until the peer disconnects or the hub closes it.
func (c *Client) Run(ctx context.Context) {
	if !c.hub.register(c) {
		_ = c.conn.Close()
		return
	}
	defer c.hub.unregister(c)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	c.queue(MsgReady, nil)
	c.readPump(ctx)

	close(c.done)
	<-writerDone
}

//read
func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read error", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(ctx, raw)
	}
}

func (c *Client) handle(ctx context.Context, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.queue(MsgError, ErrorPayload{Message: "invalid message"})
		return
	}

	switch msg.Type {
	case MsgPing:
		c.queue(MsgPong, nil)
	case MsgForm:
		c.handleForm(ctx, msg.Data)
	case MsgClaim:
		c.handleClaim(ctx)
	default:
		c.queue(MsgError, ErrorPayload{Message: "unknown message type"})
	}
}

// handleForm recomputes the preview from scratch for every form message.
func (c *Client) handleForm(ctx context.Context, data json.RawMessage) {
	var p FormPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.queue(MsgError, ErrorPayload{Message: "invalid form"})
		return
	}
	form := card.Form{
		Username:     p.Username,
		Platform:     domain.Platform(p.Platform),
		Followers:    p.Followers,
		Contribution: p.Contribution,
	}

	res, err := c.svc.PreviewForm(ctx, c.SessionID, form)
	var formErr *service.FormError
	switch {
	case errors.As(err, &formErr):
		c.queue(MsgPreview, PreviewPayload{Threshold: card.EligibilityThreshold, Errors: formErr.FieldMap()})
	case err != nil:
		c.log.Warn("preview failed", "error", err)
		c.queue(MsgError, ErrorPayload{Message: service.UserMessage(err)})
	default:
		c.queue(MsgPreview, PreviewPayload{
			Draft:     res.Draft,
			Eligible:  res.Eligible,
			Shortfall: res.Shortfall,
			Threshold: res.Threshold,
			Message:   res.Message,
		})
	}
}

func (c *Client) handleClaim(ctx context.Context) {
	claimed, err := c.svc.Claim(ctx, c.SessionID)
	if err != nil {
		c.queue(MsgError, ErrorPayload{Message: service.UserMessage(err)})
		return
	}
	c.queue(MsgClaimed, ClaimedPayload{Card: claimed, Message: service.ClaimedMessage(claimed)})
}

// queue encodes and buffers an outgoing message, dropping it if the
// writer has fallen behind.
func (c *Client) queue(typ string, payload any) {
	msg := Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.log.Error("encode ws payload", "type", typ, "error", err)
			return
		}
		msg.Data = data
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case c.send <- b:
	default:
		c.log.Warn("ws send buffer full, dropping message", "type", typ)
	}
}

//write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
