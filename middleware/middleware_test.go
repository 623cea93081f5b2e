package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupcakery/utils"
)

func echoSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Write([]byte(utils.GetSessionIDFromRequest(r)))
}

func TestAttachIssuesSession(t *testing.T) {
	s := NewSessions([]byte("secret"))
	rec := httptest.NewRecorder()

	s.Attach(echoSession)(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	sid := rec.Body.String()
	assert.True(t, utils.IsUUID(sid))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := s.Validate(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sid, claims.SessionID)
}

func TestAttachReusesValidSession(t *testing.T) {
	s := NewSessions([]byte("secret"))
	sid := utils.GetUUID()
	token, err := s.Issue(sid)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	s.Attach(echoSession)(rec, req, nil)

	assert.Equal(t, sid, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestAttachReplacesForgedSession(t *testing.T) {
	other := NewSessions([]byte("other-secret"))
	forged, err := other.Issue(utils.GetUUID())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: forged})
	rec := httptest.NewRecorder()
	NewSessions([]byte("secret")).Attach(echoSession)(rec, req, nil)

	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestValidateExpired(t *testing.T) {
	s := NewSessions([]byte("secret"))
	s.now = func() time.Time { return time.Now().Add(-2 * sessionMaxAge) }
	token, err := s.Issue(utils.GetUUID())
	require.NoError(t, err)

	_, err = NewSessions([]byte("secret")).Validate(token)
	assert.Error(t, err)
}
