package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/playroomhq/playroom-backend/internal/apperror"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	sessionID, game, chat, err := that.sessions.Connect(ctx, payloadReq.SessionID)
	if err != nil {
		log.Error("failed to connect session", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to connect")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: sessionID,
		Game:      newGamePayload(game),
		Chat:      chat,
	})
}

func (that *Server) handleState(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleState")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	game, chat, err := that.sessions.State(ctx, payloadReq.SessionID)
	if err != nil {
		log.Error("failed to read state", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to read state")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: payloadReq.SessionID,
		Game:      newGamePayload(game),
		Chat:      chat,
	})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	game, err := that.sessions.ApplyMove(ctx, payloadReq.SessionID, payloadReq.Cell)

	// rejected moves are absorbed: state is untouched, the client just
	// learns why nothing happened
	if apperror.IsRejection(err) {
		log.Info("move rejected", "cell", payloadReq.Cell, "reason", err)
		return that.sendMessage(bufrw, msg.Action, Payload{
			SessionID: payloadReq.SessionID,
			Game:      newGamePayload(game),
			Error:     err.Error(),
		})
	}

	if err != nil {
		log.Error("failed to apply move", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to apply move")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: payloadReq.SessionID,
		Game:      newGamePayload(game),
	})
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	game, chat, err := that.sessions.ResetGame(ctx, payloadReq.SessionID)
	if err != nil {
		log.Error("failed to reset game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to reset game")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: payloadReq.SessionID,
		Game:      newGamePayload(game),
		Chat:      chat,
	})
}

func (that *Server) handleChatMessage(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleChatMessage")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	chat, index, err := that.sessions.SubmitMessage(ctx, payloadReq.SessionID, payloadReq.Text)

	if apperror.IsRejection(err) {
		log.Info("message rejected", "reason", err)
		return that.sendMessage(bufrw, msg.Action, Payload{
			SessionID: payloadReq.SessionID,
			Chat:      chat,
			Error:     err.Error(),
		})
	}

	if err != nil {
		log.Error("failed to submit message", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to submit message")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID:    payloadReq.SessionID,
		MessageIndex: index,
		Chat:         chat,
	})
}

func (that *Server) handleChatReaction(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleChatReaction")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	chat, err := that.sessions.AddReaction(ctx, payloadReq.SessionID, payloadReq.MessageIndex, payloadReq.Symbol)

	if apperror.IsRejection(err) {
		log.Info("reaction rejected", "index", payloadReq.MessageIndex, "symbol", payloadReq.Symbol, "reason", err)
		return that.sendMessage(bufrw, msg.Action, Payload{
			SessionID: payloadReq.SessionID,
			Chat:      chat,
			Error:     err.Error(),
		})
	}

	if err != nil {
		log.Error("failed to add reaction", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to add reaction")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: payloadReq.SessionID,
		Chat:      chat,
	})
}

func (that *Server) handleChatHighlight(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleChatHighlight")

	payloadReq, err := unmarshalPayload(msg)
	if err != nil {
		return err
	}

	chat, err := that.sessions.AddHighlight(ctx, payloadReq.SessionID, payloadReq.MessageIndex)

	if apperror.IsRejection(err) {
		log.Info("highlight rejected", "index", payloadReq.MessageIndex, "reason", err)
		return that.sendMessage(bufrw, msg.Action, Payload{
			SessionID: payloadReq.SessionID,
			Chat:      chat,
			Error:     err.Error(),
		})
	}

	if err != nil {
		log.Error("failed to add highlight", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to add highlight")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		SessionID: payloadReq.SessionID,
		Chat:      chat,
	})
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorText string) error {
	return that.sendMessage(bufrw, action, Payload{Error: errorText})
}

func unmarshalPayload(msg *Message) (*Payload, error) {
	payload := &Payload{}

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
