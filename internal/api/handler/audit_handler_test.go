package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mavera/backoffice/internal/core/domain"
)

type stubAuditQuery struct {
	events    []domain.AuditEvent
	lastLimit int
}

func (s *stubAuditQuery) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	s.lastLimit = limit
	return s.events, nil
}

func TestAuditHandler_List(t *testing.T) {
	e := newEcho()
	q := &stubAuditQuery{events: []domain.AuditEvent{
		{ActorID: "u-003", Action: domain.AuditAccessDenied, Subject: "admin.view_audit", Timestamp: time.Now()},
	}}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/audit?limit=10", nil), rec)

	if err := NewAuditHandler(q).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if q.lastLimit != 10 {
		t.Fatalf("expected limit 10, got %d", q.lastLimit)
	}
	var resp auditResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Events[0].Action != domain.AuditAccessDenied {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuditHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/audit", nil), rec)

	if err := NewAuditHandler(&stubAuditQuery{}).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if want := `{"events":[],"count":0}`; rec.Body.String() != want+"\n" {
		t.Fatalf("expected %s, got %s", want, rec.Body.String())
	}
}

func TestAuditHandler_List_BadLimit(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/audit?limit=abc", nil), httptest.NewRecorder())

	expectHTTPError(t, NewAuditHandler(&stubAuditQuery{}).List(c), http.StatusBadRequest)
}
