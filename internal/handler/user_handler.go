package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"messagely/internal/auth"
	"messagely/internal/model"
	"messagely/internal/service"
)

// UserHandler handles user directory endpoints.
type UserHandler struct {
	userService    service.UserService
	messageService service.MessageService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, messageService service.MessageService) *UserHandler {
	return &UserHandler{userService: userService, messageService: messageService}
}

// SentMessage is a sent message with the recipient's profile joined in.
type SentMessage struct {
	ID     uuid.UUID     `json:"id"`
	Body   string        `json:"body"`
	SentAt time.Time     `json:"sent_at"`
	ReadAt *time.Time    `json:"read_at"`
	ToUser model.Profile `json:"to_user"`
}

// ReceivedMessage is a received message with the sender's profile joined in.
type ReceivedMessage struct {
	ID       uuid.UUID     `json:"id"`
	Body     string        `json:"body"`
	SentAt   time.Time     `json:"sent_at"`
	ReadAt   *time.Time    `json:"read_at"`
	FromUser model.Profile `json:"from_user"`
}

// MessagesEnvelope wraps a message list payload.
type MessagesEnvelope struct {
	Messages interface{} `json:"messages"`
}

// List godoc
// @Summary List users
// @Description Returns all users ordered by username.
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.All(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a user
// @Description Returns a user's profile. Users may only fetch their own.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	username := c.Param("username")
	if err := auth.EnsureCorrectUser(usernameFromContext(c), username); err != nil {
		return domainError(err)
	}

	user, err := h.userService.Get(c.Request().Context(), username)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// MessagesTo godoc
// @Summary Messages received by a user
// @Description Returns a user's received messages with sender profiles. Users may only read their own inbox.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} MessagesEnvelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/to [get]
func (h *UserHandler) MessagesTo(c echo.Context) error {
	username := c.Param("username")
	if err := auth.EnsureCorrectUser(usernameFromContext(c), username); err != nil {
		return domainError(err)
	}

	messages, err := h.messageService.ListReceivedBy(c.Request().Context(), username)
	if err != nil {
		return domainError(err)
	}

	payload := make([]ReceivedMessage, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, ReceivedMessage{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: m.FromUser.Profile(),
		})
	}
	return c.JSON(http.StatusOK, MessagesEnvelope{Messages: payload})
}

// MessagesFrom godoc
// @Summary Messages sent by a user
// @Description Returns a user's sent messages with recipient profiles. Users may only read their own outbox.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} MessagesEnvelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/from [get]
func (h *UserHandler) MessagesFrom(c echo.Context) error {
	username := c.Param("username")
	if err := auth.EnsureCorrectUser(usernameFromContext(c), username); err != nil {
		return domainError(err)
	}

	messages, err := h.messageService.ListSentBy(c.Request().Context(), username)
	if err != nil {
		return domainError(err)
	}

	payload := make([]SentMessage, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: m.ToUser.Profile(),
		})
	}
	return c.JSON(http.StatusOK, MessagesEnvelope{Messages: payload})
}
