package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodyou-backend/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name        string
		requestID   string
		traceID     string
		keepRequest bool
		wantTrace   string
	}{
		{name: "client ids kept", requestID: "req-1", traceID: "trace.1", keepRequest: true, wantTrace: "trace.1"},
		{name: "no headers", keepRequest: false},
		{name: "unsafe request id", requestID: "a b;c", keepRequest: false},
		{name: "oversized request id", requestID: strings.Repeat("x", 65), keepRequest: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *ctxutil.TraceData
			r := gin.New()
			r.Use(AttachTraceContext())
			r.GET("/api/goals", func(c *gin.Context) {
				seen = ctxutil.GetTraceData(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
			if tc.requestID != "" {
				req.Header.Set(headerRequestID, tc.requestID)
			}
			if tc.traceID != "" {
				req.Header.Set(headerTraceID, tc.traceID)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if seen == nil {
				t.Fatalf("trace data missing from request context")
			}
			if got := rec.Header().Get(headerRequestID); got != seen.RequestID || got == "" {
				t.Fatalf("request id header=%q context=%q", got, seen.RequestID)
			}
			if tc.keepRequest != (seen.RequestID == tc.requestID) {
				t.Fatalf("request id: sent=%q got=%q", tc.requestID, seen.RequestID)
			}
			want := tc.wantTrace
			if want == "" {
				want = seen.RequestID
			}
			if seen.TraceID != want || rec.Header().Get(headerTraceID) != want {
				t.Fatalf("trace id: want=%q got=%q", want, seen.TraceID)
			}
		})
	}
}
