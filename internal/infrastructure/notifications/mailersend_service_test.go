package notifications

import (
	"context"
	"testing"
)

func TestMailerSendService_MockMode(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		fromEmail string
	}{
		{name: "no api key", apiKey: "", fromEmail: "login@x.com"},
		{name: "no sender address", apiKey: "key", fromEmail: ""},
		{name: "no configuration", apiKey: "", fromEmail: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMailerSendService(tt.apiKey, "Auth Service", tt.fromEmail)

			impl, ok := svc.(*MailerSendServiceImpl)
			if !ok {
				t.Fatal("expected MailerSendServiceImpl")
			}
			if impl.client != nil {
				t.Error("expected no client without full configuration")
			}

			// Without a client the code is logged, never sent.
			if err := svc.SendLoginCode(context.Background(), "a@x.com", "ABCDEF"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMailerSendService_ClientConfigured(t *testing.T) {
	svc := NewMailerSendService("key", "Auth Service", "login@x.com")

	impl, ok := svc.(*MailerSendServiceImpl)
	if !ok {
		t.Fatal("expected MailerSendServiceImpl")
	}
	if impl.client == nil {
		t.Error("expected client when api key and sender are configured")
	}
	if impl.from.Email != "login@x.com" {
		t.Errorf("expected sender login@x.com, got %s", impl.from.Email)
	}
}
