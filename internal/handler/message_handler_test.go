package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"messagely/internal/auth"
	"messagely/internal/handler"
	"messagely/internal/model"
)

// MockMessageService is a mock implementation of service.MessageService.
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, from, to, body string) (*model.Message, error) {
	args := m.Called(ctx, from, to, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) ListSentBy(ctx context.Context, username string) ([]model.Message, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) ListReceivedBy(ctx context.Context, username string) ([]model.Message, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target, body, identity string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if identity != "" {
		// the same shape echo-jwt leaves on the context
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{Username: identity}))
	}
	return c, rec
}

func sampleMessage(id uuid.UUID) *model.Message {
	return &model.Message{
		ID:           id,
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hi",
		SentAt:       time.Now().UTC(),
		FromUser:     model.User{Username: "alice", FirstName: "Alice"},
		ToUser:       model.User{Username: "bob", FirstName: "Bob"},
	}
}

func TestMessageHandler_Get_Sender(t *testing.T) {
	id := uuid.New()
	svc := new(MockMessageService)
	svc.On("Get", mock.Anything, id).Return(sampleMessage(id), nil)

	c, rec := newTestContext(t, http.MethodGet, "/messages/"+id.String(), "", "alice")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	h := handler.NewMessageHandler(svc)
	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Message handler.MessageDetail `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, id, res.Message.ID)
	assert.Equal(t, "alice", res.Message.FromUser.Username)
	assert.Equal(t, "bob", res.Message.ToUser.Username)
	assert.Nil(t, res.Message.ReadAt)
}

func TestMessageHandler_Get_ThirdPartyForbidden(t *testing.T) {
	id := uuid.New()
	svc := new(MockMessageService)
	svc.On("Get", mock.Anything, id).Return(sampleMessage(id), nil)

	c, _ := newTestContext(t, http.MethodGet, "/messages/"+id.String(), "", "carol")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := handler.NewMessageHandler(svc).Get(c)
	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestMessageHandler_Get_InvalidID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/messages/nope", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := handler.NewMessageHandler(new(MockMessageService)).Get(c)
	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMessageHandler_MarkRead_Recipient(t *testing.T) {
	id := uuid.New()
	readAt := time.Now().UTC()
	svc := new(MockMessageService)
	svc.On("Get", mock.Anything, id).Return(sampleMessage(id), nil)
	svc.On("MarkRead", mock.Anything, id).Return(&model.Message{ID: id, ReadAt: &readAt}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/messages/"+id.String()+"/read", "", "bob")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	h := handler.NewMessageHandler(svc)
	assert.NoError(t, h.MarkRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Message handler.ReadReceipt `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, id, res.Message.ID)
	assert.NotNil(t, res.Message.ReadAt)
	svc.AssertExpectations(t)
}

func TestMessageHandler_MarkRead_SenderForbidden(t *testing.T) {
	id := uuid.New()
	svc := new(MockMessageService)
	svc.On("Get", mock.Anything, id).Return(sampleMessage(id), nil)

	c, _ := newTestContext(t, http.MethodPost, "/messages/"+id.String()+"/read", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := handler.NewMessageHandler(svc).MarkRead(c)
	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	svc.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
}

func TestMessageHandler_Send(t *testing.T) {
	id := uuid.New()
	svc := new(MockMessageService)
	svc.On("Send", mock.Anything, "alice", "bob", "hi").
		Return(&model.Message{ID: id, FromUsername: "alice", ToUsername: "bob", Body: "hi", SentAt: time.Now().UTC()}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/messages", `{"to_username":"bob","body":"hi"}`, "alice")

	h := handler.NewMessageHandler(svc)
	assert.NoError(t, h.Send(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestMessageHandler_Send_MissingFields(t *testing.T) {
	svc := new(MockMessageService)
	c, _ := newTestContext(t, http.MethodPost, "/messages", `{"body":"hi"}`, "alice")

	err := handler.NewMessageHandler(svc).Send(c)
	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	svc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
