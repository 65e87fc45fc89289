package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"messagely/internal/auth"
	apperrors "messagely/internal/errors"
	"messagely/internal/model"
	"messagely/internal/service"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents a send-message request.
type SendMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required"`
	Body       string `json:"body" validate:"required"`
}

// MessageDetail is a message with both endpoint profiles joined in.
type MessageDetail struct {
	ID       uuid.UUID     `json:"id"`
	Body     string        `json:"body"`
	SentAt   time.Time     `json:"sent_at"`
	ReadAt   *time.Time    `json:"read_at"`
	FromUser model.Profile `json:"from_user"`
	ToUser   model.Profile `json:"to_user"`
}

// MessageEnvelope wraps a message payload.
type MessageEnvelope struct {
	Message interface{} `json:"message"`
}

// ReadReceipt is the response to marking a message read.
type ReadReceipt struct {
	ID     uuid.UUID  `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// Send godoc
// @Summary Send a message
// @Description Sends a text message from the authenticated user.
// @Tags messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message payload"
// @Success 201 {object} MessageEnvelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	from := usernameFromContext(c)
	if from == "" {
		return domainError(apperrors.ErrUnauthorized)
	}
	message, err := h.messageService.Send(c.Request().Context(), from, req.ToUsername, req.Body)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, MessageEnvelope{Message: message})
}

// Get godoc
// @Summary Get a message
// @Description Returns a message with sender and recipient profiles. Only the sender or recipient may read it.
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} MessageEnvelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	message, err := h.messageService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	if err := auth.EnsureParticipant(usernameFromContext(c), message); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageEnvelope{Message: MessageDetail{
		ID:       message.ID,
		Body:     message.Body,
		SentAt:   message.SentAt,
		ReadAt:   message.ReadAt,
		FromUser: message.FromUser.Profile(),
		ToUser:   message.ToUser.Profile(),
	}})
}

// MarkRead godoc
// @Summary Mark a message read
// @Description Stamps read_at. Only the recipient may mark a message read; re-marking advances the timestamp.
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} MessageEnvelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	message, err := h.messageService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	if err := auth.EnsureRecipient(usernameFromContext(c), message); err != nil {
		return domainError(err)
	}

	read, err := h.messageService.MarkRead(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageEnvelope{Message: ReadReceipt{ID: read.ID, ReadAt: read.ReadAt}})
}
