package apierr

import (
	"fmt"
	"net/http"
	"testing"

	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
)

func TestFromMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("meal 3: %w", domainerr.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("bad kind: %w", domainerr.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{fmt.Errorf("barcode taken: %w", domainerr.ErrConflict), http.StatusConflict, "conflict"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		got := From(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("From(%v): want=%d/%s got=%d/%s", tc.err, tc.status, tc.code, got.Status, got.Code)
		}
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) should be nil")
	}
	explicit := New(http.StatusTeapot, "teapot", nil)
	if got := From(fmt.Errorf("wrap: %w", explicit)); got != explicit {
		t.Fatalf("From should unwrap an existing *Error")
	}
}
