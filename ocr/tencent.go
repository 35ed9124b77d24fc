package ocr

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

const (
	tencentEndpoint = "https://ocr.tencentcloudapi.com"
	tencentAction   = "GeneralBasicOCR"
	tencentVersion  = "2018-11-19"
	tencentService  = "ocr"

	// TencentDefaultRegion is used when no region is configured.
	TencentDefaultRegion = "ap-beijing"
)

// TencentProvider implements Provider against Tencent Cloud's
// GeneralBasicOCR action. Every request is signed with the
// TC3-HMAC-SHA256 scheme, so Authenticate has nothing to cache.
type TencentProvider struct {
	secretID  string
	secretKey string
	region    string
	client    *http.Client

	endpoint string
}

// NewTencent returns a provider using the given secret pair. An empty
// region selects TencentDefaultRegion.
func NewTencent(secretID, secretKey, region string) *TencentProvider {
	if region == "" {
		region = TencentDefaultRegion
	}
	return &TencentProvider{
		secretID:  secretID,
		secretKey: secretKey,
		region:    region,
		client:    &http.Client{Timeout: 30 * time.Second},
		endpoint:  tencentEndpoint,
	}
}

// Name implements Provider.
func (t *TencentProvider) Name() string { return "tencent" }

// Authenticate implements Provider. Request signing is stateless, so
// only the credential shape is checked.
func (t *TencentProvider) Authenticate(ctx context.Context) error {
	if !t.ValidateCredentials() {
		return fmt.Errorf("%w: missing secret id or key", ErrAuthenticationFailed)
	}
	return nil
}

// ValidateCredentials implements Provider.
func (t *TencentProvider) ValidateCredentials() bool {
	return t.secretID != "" && t.secretKey != ""
}

// Constraints implements Provider.
func (t *TencentProvider) Constraints() imageprep.Constraints {
	return imageprep.Constraints{
		MaxBytes:        8 << 20,
		Formats:         map[string]bool{"jpeg": true, "png": true, "bmp": true, "gif": true, "webp": true},
		MaxDimension:    4096,
		MaxEncodedBytes: 10 << 20,
	}
}

// Recognize implements Provider.
func (t *TencentProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	payload, err := json.Marshal(map[string]string{"ImageBase64": img.Base64})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}

	now := time.Now()
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-TC-Action", tencentAction)
	req.Header.Set("X-TC-Version", tencentVersion)
	req.Header.Set("X-TC-Timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("X-TC-Region", t.region)
	req.Header.Set("Authorization", t.sign(req.Host, payload, now))

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrNetworkFailure, err)
	}

	var wrapper struct {
		Response struct {
			TextDetections []struct {
				DetectedText string `json:"DetectedText"`
			} `json:"TextDetections"`
			Error *struct {
				Code    string `json:"Code"`
				Message string `json:"Message"`
			} `json:"Error"`
		} `json:"Response"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrProviderFailure, err)
	}
	if e := wrapper.Response.Error; e != nil {
		return "", tencentError(e.Code, e.Message)
	}

	lines := make([]string, 0, len(wrapper.Response.TextDetections))
	for _, d := range wrapper.Response.TextDetections {
		lines = append(lines, d.DetectedText)
	}
	return strings.Join(lines, "\n"), nil
}

// sign builds the TC3-HMAC-SHA256 Authorization header for a POST to
// the service root with the given body.
func (t *TencentProvider) sign(host string, payload []byte, now time.Time) string {
	if host == "" {
		if u, err := url.Parse(t.endpoint); err == nil {
			host = u.Host
		}
	}

	canonicalHeaders := "content-type:application/json; charset=utf-8\nhost:" + host + "\n"
	signedHeaders := "content-type;host"
	canonicalRequest := strings.Join([]string{
		http.MethodPost,
		"/",
		"",
		canonicalHeaders,
		signedHeaders,
		hexSHA256(string(payload)),
	}, "\n")

	date := now.UTC().Format("2006-01-02")
	scope := date + "/" + tencentService + "/tc3_request"
	stringToSign := strings.Join([]string{
		"TC3-HMAC-SHA256",
		strconv.FormatInt(now.Unix(), 10),
		scope,
		hexSHA256(canonicalRequest),
	}, "\n")

	secretDate := hmacSHA256([]byte("TC3"+t.secretKey), date)
	secretService := hmacSHA256(secretDate, tencentService)
	secretSigning := hmacSHA256(secretService, "tc3_request")
	signature := hex.EncodeToString(hmacSHA256(secretSigning, stringToSign))

	return fmt.Sprintf("TC3-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		t.secretID, scope, signedHeaders, signature)
}

// tencentError maps a Tencent Cloud error code to the package taxonomy.
func tencentError(code, msg string) error {
	switch {
	case strings.HasPrefix(code, "AuthFailure"),
		strings.HasPrefix(code, "UnauthorizedOperation"):
		return fmt.Errorf("%w: %s: %s", ErrAuthenticationFailed, code, msg)
	case strings.Contains(code, "LimitExceeded"),
		strings.HasPrefix(code, "ResourceUnavailable"):
		return fmt.Errorf("%w: %s: %s", ErrQuotaExceeded, code, msg)
	default:
		return fmt.Errorf("%w: %s: %s", ErrProviderFailure, code, msg)
	}
}
