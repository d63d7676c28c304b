package postgrest

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   Error
	}{
		{
			name:   "full body",
			status: http.StatusBadRequest,
			body:   `{"code":"22P02","message":"invalid input syntax","details":"bad int","hint":"check id"}`,
			want: Error{
				Status: http.StatusBadRequest, Code: "22P02", Message: "invalid input syntax",
				Details: "bad int", Hint: "check id",
			},
		},
		{
			name:   "null details",
			status: http.StatusNotFound,
			body:   `{"code":"42P01","message":"relation does not exist","details":null,"hint":null}`,
			want:   Error{Status: http.StatusNotFound, Code: "42P01", Message: "relation does not exist"},
		},
		{
			name:   "not json",
			status: http.StatusBadGateway,
			body:   "<html>bad gateway</html>",
			want:   Error{Status: http.StatusBadGateway, Message: "Bad Gateway"},
		},
		{
			name:   "empty body",
			status: http.StatusUnauthorized,
			want:   Error{Status: http.StatusUnauthorized, Message: "Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{
				StatusCode: tt.status,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}
			got := translateError(resp)
			if *got != tt.want {
				t.Errorf("translateError() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  Error
		want string
	}{
		{
			name: "status only",
			err:  Error{Status: 500},
			want: "postgrest: status 500",
		},
		{
			name: "code and message",
			err:  Error{Status: 409, Code: "23505", Message: "duplicate key"},
			want: "postgrest: status 409 code 23505: duplicate key",
		},
		{
			name: "with details",
			err:  Error{Status: 400, Message: "bad", Details: "column x"},
			want: "postgrest: status 400: bad (column x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
