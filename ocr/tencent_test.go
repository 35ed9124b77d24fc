package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func testTencent(t *testing.T, handler http.HandlerFunc) *TencentProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewTencent("sid", "skey", "")
	p.endpoint = srv.URL
	return p
}

var tc3AuthPattern = regexp.MustCompile(
	`^TC3-HMAC-SHA256 Credential=sid/\d{4}-\d{2}-\d{2}/ocr/tc3_request, ` +
		`SignedHeaders=content-type;host, Signature=[0-9a-f]{64}$`)

func TestTencentRecognize(t *testing.T) {
	p := testTencent(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-TC-Action"); got != "GeneralBasicOCR" {
			t.Errorf("X-TC-Action = %q", got)
		}
		if got := r.Header.Get("X-TC-Version"); got != "2018-11-19" {
			t.Errorf("X-TC-Version = %q", got)
		}
		if got := r.Header.Get("X-TC-Region"); got != "ap-beijing" {
			t.Errorf("X-TC-Region = %q", got)
		}
		if got := r.Header.Get("Authorization"); !tc3AuthPattern.MatchString(got) {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			ImageBase64 string `json:"ImageBase64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ImageBase64 == "" {
			t.Errorf("bad request body: %v", err)
		}
		fmt.Fprint(w, `{"Response":{"TextDetections":[{"DetectedText":"标题"},{"DetectedText":"正文"}]}}`)
	})

	text, err := p.Recognize(context.Background(), preparedFixture(t, p.Constraints()))
	if err != nil {
		t.Fatal(err)
	}
	if text != "标题\n正文" {
		t.Errorf("text = %q", text)
	}
}

func TestTencentEmptyResult(t *testing.T) {
	p := testTencent(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":{"TextDetections":[]}}`)
	})

	text, err := p.Recognize(context.Background(), preparedFixture(t, p.Constraints()))
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestTencentErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"AuthFailure.SignatureFailure", ErrAuthenticationFailed},
		{"AuthFailure.SecretIdNotFound", ErrAuthenticationFailed},
		{"UnauthorizedOperation", ErrAuthenticationFailed},
		{"RequestLimitExceeded", ErrQuotaExceeded},
		{"ResourceUnavailable.InArrears", ErrQuotaExceeded},
		{"FailedOperation.OcrFailed", ErrProviderFailure},
		{"InvalidParameterValue", ErrProviderFailure},
	}
	for _, tt := range tests {
		p := testTencent(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"Response":{"Error":{"Code":%q,"Message":"msg"}}}`, tt.code)
		})
		_, err := p.Recognize(context.Background(), preparedFixture(t, p.Constraints()))
		if !errors.Is(err, tt.want) {
			t.Errorf("code %q mapped to %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestTencentNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	p := NewTencent("sid", "skey", "")
	p.endpoint = srv.URL
	_, err := p.Recognize(context.Background(), preparedFixture(t, p.Constraints()))
	if !errors.Is(err, ErrNetworkFailure) {
		t.Errorf("got %v, want ErrNetworkFailure", err)
	}
}

func TestTencentRegionDefault(t *testing.T) {
	if p := NewTencent("sid", "skey", ""); p.region != TencentDefaultRegion {
		t.Errorf("region = %q", p.region)
	}
	if p := NewTencent("sid", "skey", "ap-guangzhou"); p.region != "ap-guangzhou" {
		t.Errorf("region = %q", p.region)
	}
}

func TestTencentConstraints(t *testing.T) {
	c := NewTencent("sid", "skey", "").Constraints()
	if c.MaxBytes != 8<<20 {
		t.Errorf("MaxBytes = %d, want 8MB", c.MaxBytes)
	}
	for _, format := range []string{"jpeg", "png", "bmp", "gif", "webp"} {
		if !c.Accepts(format) {
			t.Errorf("format %q should be accepted", format)
		}
	}
}

func TestTencentAuthenticate(t *testing.T) {
	if err := NewTencent("sid", "skey", "").Authenticate(context.Background()); err != nil {
		t.Errorf("complete credentials should authenticate: %v", err)
	}
	err := NewTencent("", "", "").Authenticate(context.Background())
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("got %v, want ErrAuthenticationFailed", err)
	}
}
