package credentials

import "testing"

func TestResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(Credentials{
		Provider:    "Playstar",
		Currency:    "idr",
		Environment: "Production",
		AgentCode:   "agent01",
		AgentSecret: "secret",
		APIURL:      "https://api.playstar.example",
	})

	c, err := r.Resolve("playstar", "IDR", "production")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.AgentCode != "agent01" {
		t.Fatalf("agent_code = %s, want agent01", c.AgentCode)
	}
}

func TestResolveNormalizesCase(t *testing.T) {
	r := NewRegistry()
	r.Register(Credentials{Provider: "sbo", Currency: "IDR", Environment: "staging", AgentCode: "a"})

	if _, err := r.Resolve("SBO", "idr", "STAGING"); err != nil {
		t.Fatalf("Resolve with mixed case: %v", err)
	}
}

func TestResolveMiss(t *testing.T) {
	r := NewRegistry()
	r.Register(Credentials{Provider: "sbo", Currency: "IDR", Environment: "production"})

	if _, err := r.Resolve("sbo", "THB", "production"); err == nil {
		t.Fatal("expected error for unregistered currency")
	}
	if _, err := r.Resolve("pragmatic", "IDR", "production"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}
