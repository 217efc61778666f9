package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

// Channels carrying table and preference change notifications.
const (
	ChannelMeals          = "meal"
	ChannelProducts       = "product"
	ChannelMeasurements   = "weight_measurement"
	ChannelProductQueries = "product_query"
	ChannelRemoteKeys     = "remote_key"
	ChannelPreferences    = "preference"
)

type Event string

const (
	EventTableChanged      Event = "TableChanged"
	EventPreferenceChanged Event = "PreferenceChanged"
)

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	// Origin identifies the publishing process so bus echoes can be ignored.
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	once     sync.Once
}

// Done is closed when the client has been removed from the hub.
func (c *Client) Done() <-chan struct{} { return c.done }

// Forwarder receives every message published locally, e.g. a cross-process bus.
type Forwarder func(msg Message)

type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	origin        string
	subscriptions map[string]map[*Client]bool
	forward       Forwarder
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "Hub"),
		origin:        uuid.NewString(),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Origin is the id stamped on messages published by this process.
func (h *Hub) Origin() string { return h.origin }

// SetForwarder installs fn to receive locally published messages.
func (h *Hub) SetForwarder(fn Forwarder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forward = fn
}

// NewClient creates a client with an outbound buffer of size buffer (min 1).
func (h *Hub) NewClient(buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan Message, buffer),
		done:     make(chan struct{}),
	}
}

// Subscribe creates a client already listening on channels.
func (h *Hub) Subscribe(buffer int, channels ...string) *Client {
	c := h.NewClient(buffer)
	for _, ch := range channels {
		h.AddChannel(c, ch)
	}
	return c
}

func (h *Hub) AddChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}
	client.Channels[channel] = true

	clients, ok := h.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true
	h.log.Debug("client subscribed", "clientID", client.ID, "channel", channel)
}

func (h *Hub) RemoveChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel = strings.TrimSpace(channel)
	delete(client.Channels, channel)
	if subMap, ok := h.subscriptions[channel]; ok {
		delete(subMap, client)
		if len(subMap) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := h.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(h.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
}

// CloseClient unsubscribes the client and closes its outbound channel. Safe to
// call more than once.
func (h *Hub) CloseClient(client *Client) {
	client.once.Do(func() {
		close(client.done)
		h.RemoveClient(client)
		// Broadcast holds the read lock while sending, so after RemoveClient
		// returns no sender can still reach this channel.
		close(client.Outbound)
	})
}

// Broadcast delivers msg to local subscribers only. A full outbound buffer
// drops the message; the pending one already signals the change.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.Channel == "" {
		return
	}
	for c := range h.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Debug("dropping message; outbound buffer full", "clientID", c.ID, "channel", msg.Channel)
		}
	}
}

// Publish broadcasts locally and hands the message to the forwarder.
func (h *Hub) Publish(msg Message) {
	if msg.Origin == "" {
		msg.Origin = h.origin
	}
	h.Broadcast(msg)

	h.mu.RLock()
	fwd := h.forward
	h.mu.RUnlock()
	if fwd != nil {
		fwd(msg)
	}
}

// Receive handles a message arriving from another process.
func (h *Hub) Receive(msg Message) {
	if msg.Origin == h.origin {
		return
	}
	h.Broadcast(msg)
}

// NotifyTables publishes a change notification for each table.
func (h *Hub) NotifyTables(tables ...string) {
	for _, t := range tables {
		h.Publish(Message{Channel: t, Event: EventTableChanged})
	}
}

// NotifyPreferences publishes a change of the given preference keys.
func (h *Hub) NotifyPreferences(keys ...string) {
	h.Publish(Message{Channel: ChannelPreferences, Event: EventPreferenceChanged, Data: keys})
}
