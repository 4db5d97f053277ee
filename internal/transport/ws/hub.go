package ws

import (
	"context"
	"encoding/json"

	"github.com/vedran77/liveboard/internal/observability"
	"github.com/vedran77/liveboard/internal/service"
	"go.uber.org/zap"
)

// Router is the board logic the hub drives. It is only ever called from
// the hub goroutine.
type Router interface {
	Connect(connID string) []service.Effect
	Disconnect(connID string) []service.Effect
	Handle(connID string, cmd service.Command) []service.Effect
}

// Hub owns every live client and serialises all board mutations: register
// and inbound messages are handled one at a time by Run. A client's events
// and its departure share the inbound queue, so everything a client sent
// before leaving is applied before its disconnect.
type Hub struct {
	router Router
	log    *zap.Logger

	// clients maps connection id → client.
	clients map[string]*Client

	register chan *Client
	inbound  chan *inboundMsg
	done     chan struct{}
}

// inboundMsg carries either a client event or, when leave is set, the
// client's departure.
type inboundMsg struct {
	client *Client
	event  *Event
	leave  bool
}

func NewHub(router Router, log *zap.Logger) *Hub {
	return &Hub{
		router:   router,
		log:      log,
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		inbound:  make(chan *inboundMsg, 256),
		done:     make(chan struct{}),
	}
}

// Run starts the Hub's main event loop. It returns when ctx is cancelled,
// after closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client.id] = client
			observability.WebSocketConnectionsActive.Inc()
			h.log.Info("client connected", zap.String("conn_id", client.id), zap.Int("total", len(h.clients)))

			h.apply(h.router.Connect(client.id))

		case msg := <-h.inbound:
			if msg.leave {
				h.disconnect(msg.client)
				continue
			}
			h.handle(msg.client, msg.event)

		case <-ctx.Done():
			for id, client := range h.clients {
				delete(h.clients, id)
				client.close()
				observability.WebSocketConnectionsActive.Dec()
			}
			h.log.Info("hub stopped")
			return
		}
	}
}

// Register hands a new client to the hub. It returns false once the hub has
// stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) submit(c *Client, evt *Event) {
	select {
	case h.inbound <- &inboundMsg{client: c, event: evt}:
	case <-h.done:
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.inbound <- &inboundMsg{client: c, leave: true}:
	case <-h.done:
	}
}

// handle applies one received event. Events queued by a client that was
// evicted in the meantime still run, except join: an evicted connection
// must not get a presence entry back.
func (h *Hub) handle(c *Client, evt *Event) {
	cmd, ok := evt.Command()
	if !ok {
		h.log.Debug("ignoring unknown event", zap.String("conn_id", c.id), zap.String("type", evt.Type))
		return
	}
	if _, live := h.clients[c.id]; !live {
		if _, isJoin := cmd.(service.Join); isJoin {
			h.log.Debug("ignoring join from dropped client", zap.String("conn_id", c.id))
			return
		}
	}
	observability.BoardEventsReceived.WithLabelValues(evt.Type).Inc()
	h.apply(h.router.Handle(c.id, cmd))
}

// disconnect removes a client and lets the router clean up after it.
// Unknown clients are ignored, so eviction and a later leave are safe.
func (h *Hub) disconnect(c *Client) {
	if current, ok := h.clients[c.id]; !ok || current != c {
		return
	}
	delete(h.clients, c.id)
	c.close()
	observability.WebSocketConnectionsActive.Dec()
	h.log.Info("client disconnected", zap.String("conn_id", c.id), zap.Int("total", len(h.clients)))

	h.apply(h.router.Disconnect(c.id))
}

// apply delivers effects without blocking. Clients whose queue is full are
// evicted once the effect has gone out to everyone else.
func (h *Hub) apply(effects []service.Effect) {
	for _, eff := range effects {
		evt, err := eventFromEffect(eff)
		if err != nil {
			h.log.Error("marshal event", zap.Error(err))
			continue
		}
		data, err := json.Marshal(evt)
		if err != nil {
			h.log.Error("marshal envelope", zap.Error(err))
			continue
		}
		observability.BoardEventsDelivered.WithLabelValues(evt.Type, eff.Delivery.String()).Inc()

		var evicted []*Client
		switch eff.Delivery {
		case service.Unicast:
			if client, ok := h.clients[eff.ConnID]; ok && !client.enqueue(data) {
				evicted = append(evicted, client)
			}
		case service.Broadcast:
			for _, client := range h.clients {
				if !client.enqueue(data) {
					evicted = append(evicted, client)
				}
			}
		}

		for _, client := range evicted {
			if _, ok := h.clients[client.id]; !ok {
				continue
			}
			h.log.Warn("send buffer full, dropping client", zap.String("conn_id", client.id))
			observability.WebSocketClientsEvicted.Inc()
			h.disconnect(client)
		}
	}
}
