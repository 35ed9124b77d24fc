package ocr

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

const (
	aliyunAction  = "RecognizeGeneral"
	aliyunVersion = "2021-07-07"

	// AliyunDefaultRegion is used when no region is configured.
	AliyunDefaultRegion = "cn-shanghai"
)

// AliyunProvider implements Provider against Aliyun's RecognizeGeneral
// action. Requests carry an ACS3-HMAC-SHA256 signature; like Tencent,
// there is no session to establish.
type AliyunProvider struct {
	accessKeyID     string
	accessKeySecret string
	client          *http.Client

	endpoint string
}

// NewAliyun returns a provider using the given access key pair. An
// empty region selects AliyunDefaultRegion.
func NewAliyun(accessKeyID, accessKeySecret, region string) *AliyunProvider {
	if region == "" {
		region = AliyunDefaultRegion
	}
	return &AliyunProvider{
		accessKeyID:     accessKeyID,
		accessKeySecret: accessKeySecret,
		client:          &http.Client{Timeout: 30 * time.Second},
		endpoint:        fmt.Sprintf("https://ocr-api.%s.aliyuncs.com", region),
	}
}

// Name implements Provider.
func (a *AliyunProvider) Name() string { return "aliyun" }

// Authenticate implements Provider.
func (a *AliyunProvider) Authenticate(ctx context.Context) error {
	if !a.ValidateCredentials() {
		return fmt.Errorf("%w: missing access key id or secret", ErrAuthenticationFailed)
	}
	return nil
}

// ValidateCredentials implements Provider.
func (a *AliyunProvider) ValidateCredentials() bool {
	return a.accessKeyID != "" && a.accessKeySecret != ""
}

// Constraints implements Provider.
func (a *AliyunProvider) Constraints() imageprep.Constraints {
	return imageprep.Constraints{
		MaxBytes:        10 << 20,
		Formats:         map[string]bool{"jpeg": true, "png": true, "bmp": true, "gif": true, "webp": true},
		MaxDimension:    4096,
		MaxEncodedBytes: 10 << 20,
	}
}

// Recognize implements Provider. The request body is the base64 payload
// itself; the recognized text comes back as a JSON document nested in
// the response's Data string.
func (a *AliyunProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/", strings.NewReader(img.Base64))
	if err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("x-acs-action", aliyunAction)
	req.Header.Set("x-acs-version", aliyunVersion)
	req.Header.Set("x-acs-date", time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	req.Header.Set("x-acs-signature-nonce", nonce())
	req.Header.Set("x-acs-content-sha256", hexSHA256(img.Base64))
	req.Header.Set("Authorization", a.sign(req))

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrNetworkFailure, err)
	}

	var wrapper struct {
		Data    string `json:"Data"`
		Code    string `json:"Code"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrProviderFailure, err)
	}
	if wrapper.Code != "" {
		return "", aliyunError(wrapper.Code, wrapper.Message)
	}
	if wrapper.Data == "" {
		return "", nil
	}

	var data struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(wrapper.Data), &data); err != nil {
		return "", fmt.Errorf("%w: decoding data payload: %v", ErrProviderFailure, err)
	}
	return data.Content, nil
}

// sign builds the ACS3-HMAC-SHA256 Authorization header from the
// request's x-acs-* headers plus host and content-type.
func (a *AliyunProvider) sign(req *http.Request) string {
	host := req.Host
	if host == "" {
		if u, err := url.Parse(a.endpoint); err == nil {
			host = u.Host
		}
	}

	headers := map[string]string{
		"host":         host,
		"content-type": req.Header.Get("Content-Type"),
	}
	for name := range req.Header {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "x-acs-") {
			headers[lower] = req.Header.Get(name)
		}
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var canonicalHeaders strings.Builder
	for _, name := range names {
		canonicalHeaders.WriteString(name)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(strings.TrimSpace(headers[name]))
		canonicalHeaders.WriteString("\n")
	}
	signedHeaders := strings.Join(names, ";")

	canonicalRequest := strings.Join([]string{
		req.Method,
		req.URL.Path,
		req.URL.RawQuery,
		canonicalHeaders.String(),
		signedHeaders,
		req.Header.Get("x-acs-content-sha256"),
	}, "\n")

	stringToSign := "ACS3-HMAC-SHA256\n" + hexSHA256(canonicalRequest)
	signature := hex.EncodeToString(hmacSHA256([]byte(a.accessKeySecret), stringToSign))

	return fmt.Sprintf("ACS3-HMAC-SHA256 Credential=%s,SignedHeaders=%s,Signature=%s",
		a.accessKeyID, signedHeaders, signature)
}

// aliyunError maps an Aliyun error code to the package taxonomy.
func aliyunError(code, msg string) error {
	switch {
	case code == "InvalidAccessKeyId.NotFound",
		code == "SignatureDoesNotMatch",
		code == "Forbidden.AccessKeyDisabled",
		strings.HasPrefix(code, "InvalidAccessKeyId"),
		strings.HasPrefix(code, "Forbidden"):
		return fmt.Errorf("%w: %s: %s", ErrAuthenticationFailed, code, msg)
	case strings.HasPrefix(code, "Throttling"),
		code == "ServiceUnavailable":
		return fmt.Errorf("%w: %s: %s", ErrQuotaExceeded, code, msg)
	default:
		return fmt.Errorf("%w: %s: %s", ErrProviderFailure, code, msg)
	}
}

func nonce() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
