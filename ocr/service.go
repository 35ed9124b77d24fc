package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/shuncox/rednote-pic2md/imageprep"
	"github.com/shuncox/rednote-pic2md/ratelimit"
)

// Config selects and configures an OCR backend. Service names are
// matched case-insensitively and accept both the English and the
// Chinese-suffixed spellings ("baidu", "百度ocr").
type Config struct {
	Service string

	BaiduAPIKey    string
	BaiduSecretKey string

	TencentSecretID  string
	TencentSecretKey string
	TencentRegion    string

	AliyunAccessKeyID     string
	AliyunAccessKeySecret string
	AliyunRegion          string

	// LocalLanguages configures the Tesseract language set for the
	// local backend.
	LocalLanguages string

	// QPS overrides the backend's default request rate when positive.
	QPS int
}

// Default request rates per backend, matching the free-tier limits the
// cloud services advertise.
const (
	DefaultBaiduQPS   = 2
	DefaultTencentQPS = 5
	DefaultAliyunQPS  = 5
	DefaultLocalQPS   = 100
)

// Service wraps a Provider with request pacing and image preparation.
type Service struct {
	provider    Provider
	limiter     *ratelimit.Limiter
	constraints imageprep.Constraints
}

// NewService builds a Service from cfg. It fails when the service name
// is unknown or the selected backend is missing credential material.
func NewService(cfg Config) (*Service, error) {
	var (
		p   Provider
		qps int
	)
	switch normalizeService(cfg.Service) {
	case "baidu":
		p, qps = NewBaidu(cfg.BaiduAPIKey, cfg.BaiduSecretKey), DefaultBaiduQPS
	case "tencent":
		p, qps = NewTencent(cfg.TencentSecretID, cfg.TencentSecretKey, cfg.TencentRegion), DefaultTencentQPS
	case "aliyun":
		p, qps = NewAliyun(cfg.AliyunAccessKeyID, cfg.AliyunAccessKeySecret, cfg.AliyunRegion), DefaultAliyunQPS
	case "local":
		p, qps = NewLocal(cfg.LocalLanguages), DefaultLocalQPS
	default:
		return nil, fmt.Errorf("%w: unknown service %q", ErrNoProvider, cfg.Service)
	}

	if !p.ValidateCredentials() {
		return nil, fmt.Errorf("%w: %s backend has no usable credentials", ErrAuthenticationFailed, p.Name())
	}
	if cfg.QPS > 0 {
		qps = cfg.QPS
	}
	return NewServiceWithProvider(p, qps), nil
}

// NewServiceWithProvider wraps an already-built provider. It is the
// injection point for custom backends.
func NewServiceWithProvider(p Provider, qps int) *Service {
	return &Service{
		provider:    p,
		limiter:     ratelimit.New(qps),
		constraints: p.Constraints(),
	}
}

// Provider returns the wrapped backend.
func (s *Service) Provider() Provider { return s.provider }

// Recognize prepares the image at path, waits out the request rate and
// submits it to the backend.
func (s *Service) Recognize(ctx context.Context, path string) (string, error) {
	if s == nil || s.provider == nil {
		return "", ErrNoProvider
	}

	img, err := imageprep.Prepare(path, s.constraints)
	if err != nil {
		return "", err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.provider.Recognize(ctx, img)
}

// normalizeService canonicalizes a configured service name.
func normalizeService(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "baidu", "百度", "百度ocr":
		return "baidu"
	case "tencent", "腾讯", "腾讯ocr", "腾讯云", "腾讯云ocr":
		return "tencent"
	case "aliyun", "alibaba", "阿里", "阿里云", "阿里云ocr":
		return "aliyun"
	case "local", "tesseract", "本地", "本地ocr":
		return "local"
	default:
		return ""
	}
}
