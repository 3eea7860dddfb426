package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

func TestVoiceServiceLogin(t *testing.T) {
	secret := "test-secret"
	issuer := "issuer"
	domain := "example.com"
	user := "user123"

	svc := NewVoiceService(secret, issuer, domain)
	grant, err := svc.Login(user)
	if err != nil {
		t.Fatalf("login token error: %v", err)
	}
	if grant.Channel != "" {
		t.Fatalf("login grant carries channel %q", grant.Channel)
	}

	claims := parseVoiceClaims(t, grant.Token, secret)
	userURI := fmt.Sprintf("sip:.%s.%s.@%s", issuer, user, domain)

	if got := stringClaim(t, claims, "vxa"); got != VoiceTokenActionLogin {
		t.Fatalf("vxa = %s, want %s", got, VoiceTokenActionLogin)
	}
	if got := stringClaim(t, claims, "f"); got != userURI {
		t.Fatalf("f = %s, want %s", got, userURI)
	}
	if got := stringClaim(t, claims, "t"); got != userURI {
		t.Fatalf("t = %s, want %s", got, userURI)
	}
	if got := stringClaim(t, claims, "sub"); got != user {
		t.Fatalf("sub = %s, want %s", got, user)
	}
}

func TestVoiceServiceJoinRoom(t *testing.T) {
	secret := "test-secret"
	domain := "example.com"
	channel := ChannelForMatch("4c2a.nakama1")
	if channel != "loto-4c2a-nakama1" {
		t.Fatalf("channel = %s", channel)
	}

	svc := NewVoiceService(secret, "issuer", domain)
	grant, err := svc.JoinRoom("user123", "4c2a.nakama1")
	if err != nil {
		t.Fatalf("join token error: %v", err)
	}
	if grant.Channel != channel {
		t.Fatalf("grant channel = %s, want %s", grant.Channel, channel)
	}

	claims := parseVoiceClaims(t, grant.Token, secret)
	channelURI := fmt.Sprintf("sip:confctl-g-%s@%s", channel, domain)
	if got := stringClaim(t, claims, "vxa"); got != VoiceTokenActionJoin {
		t.Fatalf("vxa = %s, want %s", got, VoiceTokenActionJoin)
	}
	if got := stringClaim(t, claims, "t"); got != channelURI {
		t.Fatalf("t = %s, want %s", got, channelURI)
	}
}

func TestVoiceServiceRejects(t *testing.T) {
	configured := NewVoiceService("secret", "issuer", "example.com")
	tests := []struct {
		name    string
		svc     *VoiceService
		user    string
		matchID string
	}{
		{"join without match", configured, "user", ""},
		{"missing secret", NewVoiceService("", "issuer", "example.com"), "user", "m.node"},
		{"missing user", configured, "", "m.node"},
		{"nil service", nil, "user", "m.node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.JoinRoom(tt.user, tt.matchID); err == nil {
				t.Fatal("expected join error")
			}
			if tt.matchID == "" {
				return
			}
			if _, err := tt.svc.Login(tt.user); err == nil {
				t.Fatal("expected login error")
			}
		})
	}
}

func TestVoiceServiceUnconfigured(t *testing.T) {
	_, err := NewVoiceService("secret", "", "example.com").Login("user")
	if !errors.Is(err, ErrVoiceUnconfigured) {
		t.Fatalf("err = %v, want ErrVoiceUnconfigured", err)
	}
}

func parseVoiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
