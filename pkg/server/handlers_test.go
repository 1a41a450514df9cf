package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
)

// stubProvider scripts completions and records prompts.
type stubProvider struct {
	reply       string
	err         error
	lastSystem  string
	lastUser    string
	completions int
}

func (p *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p.completions++
	p.lastSystem = systemPrompt
	p.lastUser = userPrompt
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type stubExtractor struct {
	text string
	err  error
}

func (e *stubExtractor) Extract(name string, data []byte) (string, error) {
	return e.text, e.err
}

func newTestServer(t *testing.T, provider Provider, opts ...Option) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	opts = append(opts, WithServerLogger(logger))
	return NewServer(Config{Addr: ":0"}, provider, opts...)
}

func postChat(t *testing.T, s *Server, req chat.ExchangeRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decodeExchange(t *testing.T, w *httptest.ResponseRecorder) *chat.ExchangeResponse {
	t.Helper()
	var resp chat.ExchangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestHandleChatHappyPath(t *testing.T) {
	provider := &stubProvider{
		reply: `{"chatResponse": "Here you go.", "graphCommands": [{"command": "setExpression", "params": {"id": "a", "latex": "y=x^2"}}]}`,
	}
	s := newTestServer(t, provider)

	w := postChat(t, s, chat.ExchangeRequest{
		Message:   "plot a parabola",
		SessionID: "session-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeExchange(t, w)
	assert.Equal(t, "Here you go.", resp.ChatResponse)
	require.Len(t, resp.GraphCommands, 1)
	assert.Equal(t, "setExpression", resp.GraphCommands[0].Command)

	// The user prompt carries the pending message; the system prompt is
	// the fixed instruction set.
	assert.Contains(t, provider.lastUser, "plot a parabola")
	assert.Contains(t, provider.lastSystem, "graphing calculator")
}

func TestHandleChatEmptyMessage(t *testing.T) {
	provider := &stubProvider{}
	s := newTestServer(t, provider)

	w := postChat(t, s, chat.ExchangeRequest{SessionID: "session-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeExchange(t, w)
	assert.Equal(t, "Please provide a message.", resp.ChatResponse)
	assert.Zero(t, provider.completions)
}

func TestHandleChatBadBody(t *testing.T) {
	provider := &stubProvider{}
	s := newTestServer(t, provider)

	r := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, provider.completions)
}

func TestHandleChatProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("model unavailable")}
	s := newTestServer(t, provider)

	w := postChat(t, s, chat.ExchangeRequest{Message: "hello", SessionID: "session-1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeExchange(t, w)
	assert.Contains(t, resp.ChatResponse, "error occurred")
	assert.Empty(t, resp.GraphCommands)
}

func TestHandleChatUnparseableReply(t *testing.T) {
	provider := &stubProvider{reply: "plain prose, no JSON anywhere"}
	s := newTestServer(t, provider)

	w := postChat(t, s, chat.ExchangeRequest{Message: "hello", SessionID: "session-1"})

	// Salvage fails soft: the raw text is returned as chat content.
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeExchange(t, w)
	assert.Equal(t, "plain prose, no JSON anywhere", resp.ChatResponse)
}

func postUpload(t *testing.T, s *Server, filename string, data []byte, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("pdf", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, form.WriteField("sessionId", sessionID))
	require.NoError(t, form.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload_pdf", &body)
	r.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decodeUpload(t *testing.T, w *httptest.ResponseRecorder) *chat.UploadResponse {
	t.Helper()
	var resp chat.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestHandleUploadPDFSuccess(t *testing.T) {
	provider := &stubProvider{reply: `{"chatResponse": "ok"}`}
	s := newTestServer(t, provider, WithExtractor(&stubExtractor{text: "extracted notes about parabolas"}))

	w := postUpload(t, s, "notes.pdf", []byte("%PDF-1.4 body"), "session-1")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeUpload(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "notes.pdf")

	// The extracted text is folded into later prompts for the session.
	postChat(t, s, chat.ExchangeRequest{Message: "what do my notes say?", SessionID: "session-1"})
	assert.Contains(t, provider.lastUser, "extracted notes about parabolas")
}

func TestHandleUploadPDFRejectsNonPDF(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	w := postUpload(t, s, "notes.pdf", []byte("plain text masquerading"), "session-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeUpload(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "file is not a PDF", resp.Error)
}

func TestHandleUploadPDFMissingFile(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("sessionId", "session-1"))
	require.NoError(t, form.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload_pdf", &body)
	r.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeUpload(t, w)
	assert.Equal(t, "no PDF file provided", resp.Error)
}

func TestHandleUploadPDFExtractorFailure(t *testing.T) {
	s := newTestServer(t, &stubProvider{}, WithExtractor(&stubExtractor{err: errors.New("corrupt xref table")}))

	w := postUpload(t, s, "notes.pdf", []byte("%PDF-1.4 body"), "session-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeUpload(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "failed to process PDF", resp.Error)
}

func TestHandleUploadPDFDefaultSession(t *testing.T) {
	s := newTestServer(t, &stubProvider{}, WithExtractor(&stubExtractor{text: "doc text"}))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("pdf", "notes.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 body"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload_pdf", &body)
	r.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.store.count("default"))
}

func TestChatMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	r := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
