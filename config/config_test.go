package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OCR.Service != "baidu" {
		t.Errorf("default service = %q", cfg.OCR.Service)
	}
	if cfg.Output.FilenamePattern != "{title}" {
		t.Errorf("default filename pattern = %q", cfg.Output.FilenamePattern)
	}
	if cfg.Performance.BaiduQPS != 2 || cfg.Performance.TencentQPS != 5 || cfg.Performance.AliyunQPS != 5 {
		t.Errorf("default rates = %+v", cfg.Performance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OCR.Service != "baidu" {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ocr:
  service: tencent
  tencent:
    secret_id: sid
    secret_key: skey
    region: ap-guangzhou
performance:
  tencent_qps: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OCR.Service != "tencent" {
		t.Errorf("service = %q", cfg.OCR.Service)
	}
	if cfg.OCR.Tencent.SecretID != "sid" || cfg.OCR.Tencent.Region != "ap-guangzhou" {
		t.Errorf("tencent section = %+v", cfg.OCR.Tencent)
	}
	if cfg.Performance.TencentQPS != 3 {
		t.Errorf("tencent qps = %d", cfg.Performance.TencentQPS)
	}
	// Untouched sections keep their defaults.
	if cfg.Output.FilenamePattern != "{title}" {
		t.Errorf("filename pattern = %q", cfg.Output.FilenamePattern)
	}
	if cfg.Performance.BaiduQPS != 2 {
		t.Errorf("baidu qps = %d", cfg.Performance.BaiduQPS)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ocr: [not a mapping"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.OCR.Service = "aliyun"
	cfg.OCR.Aliyun.AccessKeyID = "akid"
	cfg.OCR.Aliyun.AccessKeySecret = "aksecret"

	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.OCR.Service != "aliyun" || loaded.OCR.Aliyun.AccessKeyID != "akid" {
		t.Errorf("round trip lost data: %+v", loaded.OCR)
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := Default()
	cfg.OCR.Baidu = BaiduConfig{APIKey: "ak", SecretKey: "sk"}
	cfg.Performance.BaiduQPS = 1

	sc := cfg.ServiceConfig("")
	if sc.Service != "baidu" {
		t.Errorf("empty name should select configured default, got %q", sc.Service)
	}
	if sc.BaiduAPIKey != "ak" || sc.BaiduSecretKey != "sk" {
		t.Error("credentials not carried over")
	}
	if sc.QPS != 1 {
		t.Errorf("qps = %d", sc.QPS)
	}

	sc = cfg.ServiceConfig("tencent")
	if sc.Service != "tencent" {
		t.Errorf("explicit name ignored, got %q", sc.Service)
	}
	if sc.QPS != 5 {
		t.Errorf("tencent qps = %d", sc.QPS)
	}
}
