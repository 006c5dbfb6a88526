package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"waveguide/calculator"
	"waveguide/model"
)

// Hub serves one websocket connection: requests are read, handled in order
// and the replies written back by a single writer.
type Hub struct {
	c    calculator.Calculator
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(c calculator.Calculator, conn *websocket.Conn) *Hub {
	return &Hub{
		c:     c,
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
	}
}

// run blocks until the connection fails or ctx ends and returns the first error.
func (h *Hub) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.readRequest(ctx) })
	g.Go(func() error { return h.handleRequest(ctx) })
	g.Go(func() error { return h.handleResponse(ctx) })
	g.Go(func() error {
		// unblocks ReadJSON once any loop gives up
		<-ctx.Done()
		h.conn.Close()
		return nil
	})
	return g.Wait()
}

func (h *Hub) readRequest(ctx context.Context) error {
	for {
		var msg model.Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			return err
		}
		select {
		case h.msg <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-h.msg:
			reply := h.handle(ctx, msg)
			select {
			case h.reply <- reply:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (h *Hub) handleResponse(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				return err
			}
		}
	}
}

// handle turns one request into its reply.
func (h *Hub) handle(ctx context.Context, msg model.Msg) model.Msg {
	switch msg.Type {
	case model.MsgPing:
		return model.Msg{Type: model.MsgPong, ID: msg.ID}
	case model.MsgScan:
		var req calculator.ScanRequest
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			return errorMsg(msg.ID, fmt.Errorf("bad scan request: %w", err))
		}
		res, err := h.c.Scan(ctx, req)
		if err != nil {
			return errorMsg(msg.ID, err)
		}
		data, err := json.Marshal(res)
		if err != nil {
			return errorMsg(msg.ID, err)
		}
		return model.Msg{Type: model.MsgScanned, ID: res.ID, Content: string(data)}
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		return errorMsg(msg.ID, fmt.Errorf("no such type %q", msg.Type))
	}
}

func errorMsg(id string, err error) model.Msg {
	return model.Msg{Type: model.MsgError, ID: id, Content: err.Error()}
}
