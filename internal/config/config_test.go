package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8090" {
		t.Fatalf("expected default server port 8090, got %q", cfg.ServerPort)
	}
	if cfg.AppURL != "https://swarmspace.dev" {
		t.Fatalf("expected default app URL, got %q", cfg.AppURL)
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("APP_URL", "https://staging.swarmspace.dev")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_VERIFIED_PRICE_ID", "price_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9999" {
		t.Fatalf("expected port 9999 from env, got %q", cfg.ServerPort)
	}
	if cfg.AppURL != "https://staging.swarmspace.dev" {
		t.Fatalf("expected app URL from env, got %q", cfg.AppURL)
	}
	if cfg.StripeSecretKey != "sk_test_123" || cfg.StripeVerifiedPriceID != "price_123" {
		t.Fatalf("expected stripe credentials from env, got %q / %q", cfg.StripeSecretKey, cfg.StripeVerifiedPriceID)
	}
	if cfg.SupabaseURL != "https://project.supabase.co" || cfg.SupabaseServiceRoleKey != "service-role" {
		t.Fatalf("expected datastore settings from env, got %q / %q", cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	}
	if !cfg.StripeConfigured() {
		t.Fatal("expected StripeConfigured to be true with key and price id set")
	}
}

func TestStripeConfigured_RequiresKeyAndPriceID(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		priceID string
		want    bool
	}{
		{name: "both present", key: "sk_test", priceID: "price_1", want: true},
		{name: "missing key", key: "", priceID: "price_1", want: false},
		{name: "missing price id", key: "sk_test", priceID: "", want: false},
		{name: "both missing", key: "", priceID: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{StripeSecretKey: tt.key, StripeVerifiedPriceID: tt.priceID}
			if got := cfg.StripeConfigured(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
