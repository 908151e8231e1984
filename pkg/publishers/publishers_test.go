package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: sns1
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-west-1:123:users
      region: eu-west-1
      credentials:
        access_key_id: AKIA
        secret_access_key: secret
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "sns1" {
		t.Fatalf("expected only sns1 enabled, got %#v", enabled)
	}
	if enabled[0].SNS.Credentials == nil || enabled[0].SNS.Credentials.AccessKeyID != "AKIA" {
		t.Fatalf("expected credentials to be parsed, got %#v", enabled[0].SNS)
	}

	http1, ok := reg.ByID("http1")
	if !ok {
		t.Fatalf("expected http1 to be indexed")
	}
	if http1.HTTP.Method != "POST" || http1.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults, got %#v", http1.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "publishers.json", `{"publishers":[{"id":"ps","type":"gcp_pubsub","gcp_pubsub":{"project_id":"p","topic":"t"}}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if all := reg.All(); len(all) != 1 || all[0].GCP.Topic != "t" {
		t.Fatalf("unexpected registry %#v", all)
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: dup
    type: http
    http: {url: https://a.example}
  - id: dup
    type: http
    http: {url: https://b.example}
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate publisher error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}},
		{ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "eu-west-1"}},
		{ID: "g1", Type: TypeGCPPubSub, GCP: &GCPQueueConfig{ProjectID: "p"}},
		{ID: "k1", Type: "kafka"},
		{Type: TypeHTTP},
	}
	for _, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Errorf("expected validation error for %#v", cfg)
		}
	}
}
