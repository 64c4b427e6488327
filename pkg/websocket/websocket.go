package websocketPkg

import (
	"LulaiPlatform/internal/entity"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type IWebsocket interface {
	ProcessAudioChunk(chunk []byte) (*entity.SpeechStreamResult, error)
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type webSocketClient struct {
	speechConn   *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewSpeechStreamClient connects to the realtime speech service used by
// the voice widget. The connection is established in the background and
// re-dialed on demand when a send fails.
func NewSpeechStreamClient() IWebsocket {
	client := &webSocketClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go client.connectInBackground()

	return client
}

func (c *webSocketClient) connectInBackground() {
	err := c.Reconnect()
	if err != nil {
		log.Printf("Initial connection to speech stream service failed: %v. Will retry on demand.", err)
	} else {
		log.Printf("Successfully connected to speech stream service")
	}
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speechConn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.speechConn != nil {
		c.speechConn.Close()
		c.speechConn = nil
	}

	url := getSpeechStreamURL()
	if url == "" {
		return fmt.Errorf("URL for speech stream service not configured")
	}

	log.Printf("Connecting to speech stream service at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.speechConn = conn

	go c.keepAlive()

	return nil
}

func (c *webSocketClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.speechConn != nil {
		c.speechConn.Close()
		c.speechConn = nil
	}
}

func (c *webSocketClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.speechConn

		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)

		if err != nil {
			log.Printf("Ping failed for speech stream, marking connection as dead: %v", err)
			c.speechConn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *webSocketClient) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.speechConn == nil {
		return nil, fmt.Errorf("not connected to speech stream service")
	}

	return c.speechConn, nil
}

// ProcessAudioChunk sends one audio frame from a live voice session and
// waits for the partial transcript for that frame.
func (c *webSocketClient) ProcessAudioChunk(chunk []byte) (*entity.SpeechStreamResult, error) {
	conn, err := c.getConnection()
	if err != nil {
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to speech stream service: %w", err)
		}
		conn, err = c.getConnection()
		if err != nil {
			return nil, err
		}
	}

	c.mu.Lock()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	log.Printf("Sending audio chunk of size: %d bytes", len(chunk))
	if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
		c.speechConn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error sending audio chunk: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))

	c.mu.Unlock()

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.mu.Lock()
		c.speechConn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error reading speech message: %w", err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	var result entity.SpeechStreamResult
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling speech response: %w", err)
	}

	log.Printf("Speech Stream Result: Transcript=%s, Final=%t", result.Transcript, result.IsFinal)

	return &result, nil
}

func getSpeechStreamURL() string {
	url := os.Getenv("SPEECH_STREAM_URL")
	if url == "" {
		url = "ws://localhost:8000/api/v1/speech/ws"
	}
	return url
}
