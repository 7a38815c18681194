package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dira-chat-backend/internal/bot"
	"dira-chat-backend/internal/config"
)

type stubSearcher struct {
	listings []bot.Listing
	err      error
}

func (s *stubSearcher) Search(_ context.Context, _ bot.Filters) ([]bot.Listing, error) {
	return s.listings, s.err
}

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func testConfig() config.Config {
	return config.Config{
		Port:          "0",
		AllowedOrigin: "*",
		SearchLimit:   5,
		SessionTTL:    time.Minute,
		MaxSessions:   100,
		StaticDir:     "testdata",
	}
}

func newTestServer(t *testing.T, se bot.Searcher, re bot.Responder) *Server {
	t.Helper()
	return newServer(testConfig(), bot.DefaultLexicon(), se, re, nil)
}

type chatBody struct {
	Results []map[string]any `json:"results"`
	Error   string           `json:"error"`
}

func postJSON(t *testing.T, s *Server, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, chatBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var out chatBody
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func chat(t *testing.T, s *Server, msg string, cookies []*http.Cookie) (*httptest.ResponseRecorder, chatBody) {
	t.Helper()
	b, err := json.Marshal(map[string]string{"message": msg})
	require.NoError(t, err)
	return postJSON(t, s, "/chat", string(b), cookies)
}

func TestChat_MissingMessage(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	for _, body := range []string{`{}`, `{"message":"   "}`, `not json`} {
		rec, out := postJSON(t, s, "/chat", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "Missing message", out.Error)
	}
	// No session was created or mutated.
	assert.Zero(t, s.store.Len())
}

func TestChat_LatinOnlyAdvisory(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	rec, out := chat(t, s, "apartment 5000", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, out.Results, 1)
	assert.Equal(t, bot.MsgHebrewOnly, out.Results[0]["text"])
}

func TestChat_SearchReturnsNumberedCards(t *testing.T) {
	price := 5500
	se := &stubSearcher{listings: []bot.Listing{
		{Zone: "מרכז העיר", City: "תל אביב", Address: "אלנבי 12", Price: &price},
	}}
	s := newTestServer(t, se, &stubResponder{})

	rec, out := chat(t, s, "דירות בתל אביב עד 6000", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	// header, numbered tag, card, closing prompt
	require.Len(t, out.Results, 4)
	card := out.Results[2]
	assert.Equal(t, "אלנבי 12", card["address"])
	assert.Equal(t, "תל אביב", card["city"])
	assert.Equal(t, float64(5500), card["price"])
	// Session cookie was issued.
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, CookieName, rec.Result().Cookies()[0].Name)
}

func TestChat_SearchFailureApology(t *testing.T) {
	s := newTestServer(t, &stubSearcher{err: errors.New("boom")}, &stubResponder{})

	rec, out := chat(t, s, "דירות בתל אביב", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, out.Results, 1)
	assert.Contains(t, out.Results[0]["text"], "מצטער")
}

func TestChat_LeadCaptureFlow(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	rec, out := chat(t, s, "אני מעוניין בדירה 2", nil)
	require.Len(t, out.Results, 2)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	_, out = chat(t, s, "050-7654321", cookies)
	_, out = chat(t, s, "יוסי", cookies)
	_, out = chat(t, s, "כהן", cookies)
	require.Len(t, out.Results, 2)
	conf, _ := out.Results[0]["text"].(string)
	assert.Contains(t, conf, "יוסי")
	assert.Contains(t, conf, "כהן")
	assert.Contains(t, conf, "2")
	assert.Contains(t, conf, "050-7654321")

	// Affirmative feedback ends with a restart action and clears the session.
	_, out = chat(t, s, "כן", cookies)
	require.Len(t, out.Results, 2)
	assert.Equal(t, true, out.Results[1]["button"])

	// The next message is handled statelessly.
	_, out = chat(t, s, "היי", cookies)
	require.Len(t, out.Results, 1)
	assert.NotEqual(t, true, out.Results[0]["button"])
}

func TestReset_Idempotent(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	rec1, out1 := postJSON(t, s, "/reset", "", nil)
	cookies := rec1.Result().Cookies()
	rec2, out2 := postJSON(t, s, "/reset", "", cookies)

	assert.Equal(t, http.StatusOK, rec1.Code)
	assert.Equal(t, http.StatusOK, rec2.Code)
	require.Len(t, out1.Results, 1)
	assert.Equal(t, bot.MsgResetAck, out1.Results[0]["text"])
	assert.Equal(t, out1, out2)
}

func TestReset_ClearsActiveFlow(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	rec, _ := chat(t, s, "אני מעוניין בדירה 9", nil)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	postJSON(t, s, "/reset", "", cookies)

	// A greeting is no longer swallowed as a phone number.
	_, out := chat(t, s, "היי", cookies)
	require.Len(t, out.Results, 1)
	text, _ := out.Results[0]["text"].(string)
	assert.Contains(t, text, "היי")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &stubSearcher{}, &stubResponder{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
