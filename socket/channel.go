package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"docshelf/pkg/logger"
)

const (
	// RetryBudget caps the automatic reconnect attempts after a close.
	RetryBudget = 5
	// RetryDelay separates a close event from the next attempt.
	RetryDelay = 3 * time.Second
)

// State is the connection lifecycle state of the channel.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosedRetrying
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosedRetrying:
		return "closed-retrying"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Notification is one inbound frame: a document created outside this
// client, announced over the push channel.
type Notification struct {
	Timestamp     string `json:"Timestamp"`
	UserID        string `json:"UserID"`
	UserName      string `json:"UserName"`
	DocumentID    string `json:"DocumentID"`
	DocumentTitle string `json:"DocumentTitle"`
}

// Conn is the subset of *websocket.Conn the manager uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	Close() error
}

// DialFunc opens the underlying channel.
type DialFunc func(url string) (Conn, error)

func defaultDial(url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Manager owns the realtime channel lifecycle: a bounded-retry
// reconnect loop plus decoding of inbound notification frames. The
// retry counter is reset by a successful open or an explicit
// Disconnect, never by Connect.
type Manager struct {
	url   string
	clock Clock
	dial  DialFunc

	mu      sync.Mutex
	state   State
	retries int
	gen     uint64
	conn    Conn
	timer   Timer
	handler func(Notification)
}

func NewManager(url string) *Manager {
	return &Manager{
		url:   url,
		clock: realClock{},
		dial:  defaultDial,
	}
}

// OnNotification registers the handler for decoded inbound frames.
// Set it before Connect; frames are delivered once each, in arrival
// order.
func (m *Manager) OnNotification(fn func(Notification)) {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
}

// Connect opens the channel and returns immediately; progress is
// visible through State. Calls in any state other than Idle or
// Abandoned are ignored.
func (m *Manager) Connect() {
	m.mu.Lock()
	if m.state != StateIdle && m.state != StateAbandoned {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	gen := m.gen
	m.mu.Unlock()
	go m.attempt(gen)
}

// Disconnect cancels any pending reconnect, closes the channel if
// open, resets the retry counter, and returns to Idle. No late timer
// or in-flight dial can change state afterward.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	conn := m.conn
	m.conn = nil
	m.retries = 0
	m.state = StateIdle
	m.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// Send transmits data while the channel is open; in any other state
// the call is a silent no-op, with no queuing.
func (m *Manager) Send(data interface{}) {
	m.mu.Lock()
	conn := m.conn
	open := m.state == StateOpen
	m.mu.Unlock()
	if !open || conn == nil {
		return
	}
	if err := conn.WriteJSON(data); err != nil {
		logger.Sugar.Warnf("Channel send failed: %v", err)
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) attempt(gen uint64) {
	conn, err := m.dial(m.url)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		logger.Sugar.Warnf("Channel connect failed: %v", err)
		m.closedLocked()
		m.mu.Unlock()
		return
	}
	m.state = StateOpen
	m.retries = 0
	m.conn = conn
	m.mu.Unlock()

	go m.readLoop(gen, conn)
}

func (m *Manager) readLoop(gen uint64, conn Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			if gen != m.gen {
				m.mu.Unlock()
				return
			}
			logger.Sugar.Infof("Channel closed: %v", err)
			m.conn = nil
			m.closedLocked()
			m.mu.Unlock()
			return
		}

		var n Notification
		if err := json.Unmarshal(frame, &n); err != nil {
			// A bad frame is dropped; it never touches connection state.
			logger.Sugar.Warnf("Dropping malformed notification frame: %v", err)
			continue
		}

		m.mu.Lock()
		handler := m.handler
		stale := gen != m.gen
		m.mu.Unlock()
		if stale {
			return
		}
		if handler != nil {
			handler(n)
		}
	}
}

// closedLocked applies the close transition: schedule a reconnect
// while the budget allows, otherwise abandon the channel. Caller
// holds mu.
func (m *Manager) closedLocked() {
	m.state = StateClosedRetrying
	if m.retries >= RetryBudget {
		m.state = StateAbandoned
		logger.Sugar.Warn("Channel retry budget exhausted, giving up")
		return
	}
	m.retries++
	gen := m.gen
	logger.Sugar.Infof("Channel reconnect %d/%d in %s", m.retries, RetryBudget, RetryDelay)
	m.timer = m.clock.AfterFunc(RetryDelay, func() { m.retryFired(gen) })
}

func (m *Manager) retryFired(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != StateClosedRetrying {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.state = StateConnecting
	m.mu.Unlock()
	go m.attempt(gen)
}
