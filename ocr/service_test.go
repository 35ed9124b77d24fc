package ocr

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

// fakeProvider records calls and returns canned text.
type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Authenticate(ctx context.Context) error { return nil }
func (f *fakeProvider) ValidateCredentials() bool { return true }
func (f *fakeProvider) Constraints() imageprep.Constraints { return imageprep.Constraints{} }
func (f *fakeProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestNewServiceSelectsBackend(t *testing.T) {
	tests := []struct {
		service string
		want    string
	}{
		{"baidu", "baidu"},
		{"百度OCR", "baidu"},
		{"Tencent", "tencent"},
		{"腾讯云", "tencent"},
		{"aliyun", "aliyun"},
		{"阿里云OCR", "aliyun"},
	}
	for _, tt := range tests {
		s, err := NewService(Config{
			Service:               tt.service,
			BaiduAPIKey:           "ak",
			BaiduSecretKey:        "sk",
			TencentSecretID:       "sid",
			TencentSecretKey:      "skey",
			AliyunAccessKeyID:     "akid",
			AliyunAccessKeySecret: "aksecret",
		})
		if err != nil {
			t.Fatalf("NewService(%q): %v", tt.service, err)
		}
		if got := s.Provider().Name(); got != tt.want {
			t.Errorf("NewService(%q) selected %q, want %q", tt.service, got, tt.want)
		}
	}
}

func TestNewServiceUnknownBackend(t *testing.T) {
	_, err := NewService(Config{Service: "google"})
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("got %v, want ErrNoProvider", err)
	}
}

func TestNewServiceMissingCredentials(t *testing.T) {
	_, err := NewService(Config{Service: "baidu"})
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("got %v, want ErrAuthenticationFailed", err)
	}
}

func TestServiceRecognize(t *testing.T) {
	fake := &fakeProvider{name: "fake", text: "你好"}
	s := NewServiceWithProvider(fake, 100)

	img := preparedFixture(t, fake.Constraints())
	text, err := s.Recognize(context.Background(), img.SourcePath)
	if err != nil {
		t.Fatal(err)
	}
	if text != "你好" {
		t.Errorf("text = %q", text)
	}
	if fake.calls != 1 {
		t.Errorf("provider called %d times", fake.calls)
	}
}

func TestServiceRecognizeMissingFile(t *testing.T) {
	s := NewServiceWithProvider(&fakeProvider{name: "fake"}, 100)
	_, err := s.Recognize(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("got %v, want ErrImageNotFound", err)
	}
}

func TestServiceNilProvider(t *testing.T) {
	var s *Service
	if _, err := s.Recognize(context.Background(), "x.jpg"); !errors.Is(err, ErrNoProvider) {
		t.Errorf("got %v, want ErrNoProvider", err)
	}
}

func TestServicePropagatesProviderError(t *testing.T) {
	boom := fmt.Errorf("%w: backend melted", ErrProviderFailure)
	s := NewServiceWithProvider(&fakeProvider{name: "fake", err: boom}, 100)

	img := preparedFixture(t, imageprep.Constraints{})
	_, err := s.Recognize(context.Background(), img.SourcePath)
	if !errors.Is(err, ErrProviderFailure) {
		t.Errorf("got %v, want ErrProviderFailure", err)
	}
}

func TestNormalizeService(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"baidu", "baidu"},
		{" BAIDU ", "baidu"},
		{"百度ocr", "baidu"},
		{"tesseract", "local"},
		{"本地OCR", "local"},
		{"", ""},
		{"unknown", ""},
	}
	for _, tt := range tests {
		if got := normalizeService(tt.in); got != tt.want {
			t.Errorf("normalizeService(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
