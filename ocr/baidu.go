package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shuncox/rednote-pic2md/imageprep"
)

const (
	baiduTokenURL = "https://aip.baidubce.com/oauth/2.0/token"
	baiduOCRURL   = "https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic"

	// baiduTokenSafetyMargin is subtracted from the reported lifetime so
	// a token is refreshed before the backend starts rejecting it.
	baiduTokenSafetyMargin = 5 * time.Minute

	// baiduDefaultExpiry is assumed when the token response carries no
	// expires_in field. Baidu tokens live thirty days.
	baiduDefaultExpiry = 2592000 * time.Second
)

// BaiduProvider implements Provider against the Baidu general_basic OCR
// endpoint. Authentication exchanges the API key pair for a bearer
// token, cached until shortly before expiry.
type BaiduProvider struct {
	apiKey    string
	secretKey string
	client    *http.Client

	tokenURL string
	ocrURL   string

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewBaidu returns a provider using the given API key pair.
func NewBaidu(apiKey, secretKey string) *BaiduProvider {
	return &BaiduProvider{
		apiKey:    apiKey,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
		tokenURL:  baiduTokenURL,
		ocrURL:    baiduOCRURL,
	}
}

// Name implements Provider.
func (b *BaiduProvider) Name() string { return "baidu" }

// ValidateCredentials implements Provider.
func (b *BaiduProvider) ValidateCredentials() bool {
	return b.apiKey != "" && b.secretKey != ""
}

// Constraints implements Provider.
func (b *BaiduProvider) Constraints() imageprep.Constraints {
	return imageprep.Constraints{
		MaxBytes:        8 << 20,
		Formats:         map[string]bool{"jpeg": true, "png": true, "bmp": true},
		MaxDimension:    4096,
		MaxEncodedBytes: 10 << 20,
	}
}

// Authenticate fetches an access token if the cached one is missing or
// about to expire.
func (b *BaiduProvider) Authenticate(ctx context.Context) error {
	_, err := b.accessToken(ctx)
	return err
}

func (b *BaiduProvider) accessToken(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.token != "" && time.Now().Before(b.expiry) {
		return b.token, nil
	}

	params := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {b.apiKey},
		"client_secret": {b.secretKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	var tr struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int64  `json:"expires_in"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", ErrNetworkFailure, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: %s: %s", ErrAuthenticationFailed, tr.Error, tr.ErrorDescription)
	}

	lifetime := baiduDefaultExpiry
	if tr.ExpiresIn > 0 {
		lifetime = time.Duration(tr.ExpiresIn) * time.Second
	}
	b.token = tr.AccessToken
	b.expiry = time.Now().Add(lifetime - baiduTokenSafetyMargin)
	return b.token, nil
}

// Recognize implements Provider.
func (b *BaiduProvider) Recognize(ctx context.Context, img *imageprep.Prepared) (string, error) {
	token, err := b.accessToken(ctx)
	if err != nil {
		return "", err
	}

	form := url.Values{"image": {img.Base64}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.ocrURL+"?access_token="+url.QueryEscape(token),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrNetworkFailure, err)
	}

	var or struct {
		WordsResult []struct {
			Words string `json:"words"`
		} `json:"words_result"`
		ErrorCode int    `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
	}
	if err := json.Unmarshal(body, &or); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrProviderFailure, err)
	}
	if or.ErrorCode != 0 {
		return "", baiduError(or.ErrorCode, or.ErrorMsg)
	}

	lines := make([]string, 0, len(or.WordsResult))
	for _, w := range or.WordsResult {
		lines = append(lines, w.Words)
	}
	return strings.Join(lines, "\n"), nil
}

// baiduError maps a Baidu error code to the package taxonomy.
func baiduError(code int, msg string) error {
	switch code {
	case 4:
		return fmt.Errorf("%w: api key or secret key rejected (code %d)", ErrAuthenticationFailed, code)
	case 17:
		return fmt.Errorf("%w: daily request limit reached (code %d)", ErrQuotaExceeded, code)
	case 18:
		return fmt.Errorf("%w: qps limit reached (code %d)", ErrQuotaExceeded, code)
	case 19:
		return fmt.Errorf("%w: total request limit reached (code %d)", ErrQuotaExceeded, code)
	case 100:
		return fmt.Errorf("%w: invalid access_token (code %d)", ErrAuthenticationFailed, code)
	case 110:
		return fmt.Errorf("%w: access token invalid (code %d)", ErrAuthenticationFailed, code)
	case 111:
		return fmt.Errorf("%w: access token expired (code %d)", ErrAuthenticationFailed, code)
	case 216100:
		return fmt.Errorf("%w: malformed image parameter (code %d)", ErrProviderFailure, code)
	case 216201:
		return fmt.Errorf("%w: backend rejected image content (code %d)", ErrEmptyImage, code)
	case 216202, 216203:
		return fmt.Errorf("%w: backend size limit (code %d)", ErrImageTooLarge, code)
	case 216630, 282000:
		return fmt.Errorf("%w: internal recognition error (code %d)", ErrProviderFailure, code)
	default:
		return fmt.Errorf("%w: %s (code %d)", ErrProviderFailure, msg, code)
	}
}
