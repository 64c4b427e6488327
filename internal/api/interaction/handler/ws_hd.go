package interactionHandler

import (
	"LulaiPlatform/internal/api/interaction"
	"LulaiPlatform/pkg/log"
	"context"
	"errors"
	"time"

	fiberWebsocket "github.com/gofiber/websocket/v2"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

const wsWriteWait = 10 * time.Second

type wsErrorMessage struct {
	Error string `json:"error"`
}

type wsTranscriptMessage struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"is_final"`
}

// LiveChat serves the widget's persistent chat channel. Each inbound JSON
// frame is an InteractRequest; the reply frame is the matching
// InteractResponse. The connection is closed on the first malformed frame
// that cannot be answered.
func (h *InteractionHandler) LiveChat(conn *fiberWebsocket.Conn) {
	defer conn.Close()

	apiKey := conn.Query("api_key")
	if apiKey == "" {
		h.writeWSError(conn, "missing api_key")
		return
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary

	// conversation_id and visitor_id from the latest text frame also scope
	// streamed voice turns on this connection.
	var conversationID, visitorID string

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"error": err.Error(),
				}).Warn("Widget websocket closed unexpectedly")
			}
			return
		}

		var req interaction.InteractRequest

		switch messageType {
		case websocket.TextMessage:
			if err := json.Unmarshal(payload, &req); err != nil {
				h.writeWSError(conn, "malformed message")
				continue
			}
			if err := h.validator.Struct(req); err != nil {
				h.writeWSError(conn, "message is required")
				continue
			}
			conversationID = req.ConversationID
			visitorID = req.VisitorID

		case websocket.BinaryMessage:
			transcript, done := h.streamAudioChunk(conn, payload)
			if !done {
				continue
			}
			req = interaction.InteractRequest{
				Message:        transcript,
				ConversationID: conversationID,
				VisitorID:      visitorID,
				Voice:          true,
			}

		default:
			continue
		}

		c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := h.interactionService.Interact(c, apiKey, req)
		cancel()
		if err != nil {
			if errors.Is(err, interaction.ErrInvalidAPIKey) {
				h.writeWSError(conn, "invalid api key")
				return
			}
			h.writeWSError(conn, "failed to process message")
			continue
		}
		conversationID = result.ConversationID

		body, err := json.Marshal(result)
		if err != nil {
			h.writeWSError(conn, "failed to encode reply")
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			h.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Warn("Failed to write widget websocket reply")
			return
		}
	}
}

// streamAudioChunk forwards one binary frame to the realtime speech service.
// Interim transcripts are echoed back to the widget; the final transcript is
// returned to be answered like a typed message.
func (h *InteractionHandler) streamAudioChunk(conn *fiberWebsocket.Conn, chunk []byte) (string, bool) {
	if h.speechStream == nil {
		h.writeWSError(conn, "voice streaming is not available")
		return "", false
	}

	result, err := h.speechStream.ProcessAudioChunk(chunk)
	if err != nil {
		h.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Speech stream chunk failed")
		h.writeWSError(conn, "failed to process audio")
		return "", false
	}
	if result == nil || result.Transcript == "" {
		return "", false
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	body, err := json.Marshal(wsTranscriptMessage{Transcript: result.Transcript, IsFinal: result.IsFinal})
	if err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		_ = conn.WriteMessage(websocket.TextMessage, body)
	}

	return result.Transcript, result.IsFinal
}

func (h *InteractionHandler) writeWSError(conn *fiberWebsocket.Conn, message string) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	body, err := json.Marshal(wsErrorMessage{Error: message})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	_ = conn.WriteMessage(websocket.TextMessage, body)
}
