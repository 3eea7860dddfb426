package app

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

const (
	VoiceTokenActionLogin = "login"
	VoiceTokenActionJoin  = "join"

	voiceTokenTTL = time.Hour
)

// ErrVoiceUnconfigured is returned while the Vivox credentials are missing.
var ErrVoiceUnconfigured = errors.New("voice config is incomplete")

// VoiceGrant is a signed Vivox token. Channel is set for room tokens only.
type VoiceGrant struct {
	Token   string
	Channel string
}

// VoiceService signs Vivox access tokens. Players log in once and then join the channel of the
// room they are seated in, where the caller reads the numbers out.
type VoiceService struct {
	secret string
	issuer string
	domain string
	now    func() time.Time
}

func NewVoiceService(secret, issuer, domain string) *VoiceService {
	return &VoiceService{
		secret: secret,
		issuer: issuer,
		domain: domain,
		now:    time.Now,
	}
}

// ChannelForMatch names the voice channel of a match. Vivox channel names cannot hold dots.
func ChannelForMatch(matchID string) string {
	return "loto-" + strings.ReplaceAll(matchID, ".", "-")
}

// Login signs the token a client presents when it connects to Vivox.
func (s *VoiceService) Login(user string) (VoiceGrant, error) {
	if err := s.ready(user); err != nil {
		return VoiceGrant{}, err
	}
	token, err := s.sign(user, VoiceTokenActionLogin, s.userURI(user))
	if err != nil {
		return VoiceGrant{}, err
	}
	return VoiceGrant{Token: token}, nil
}

// JoinRoom signs the token that admits user to the channel of matchID. Seat checks are the
// caller's job.
func (s *VoiceService) JoinRoom(user, matchID string) (VoiceGrant, error) {
	if err := s.ready(user); err != nil {
		return VoiceGrant{}, err
	}
	if matchID == "" {
		return VoiceGrant{}, fmt.Errorf("match id is required for room tokens")
	}
	channel := ChannelForMatch(matchID)
	token, err := s.sign(user, VoiceTokenActionJoin, "sip:confctl-g-"+channel+"@"+s.domain)
	if err != nil {
		return VoiceGrant{}, err
	}
	return VoiceGrant{Token: token, Channel: channel}, nil
}

func (s *VoiceService) ready(user string) error {
	if s == nil {
		return fmt.Errorf("voice service is nil")
	}
	if user == "" {
		return fmt.Errorf("user is required")
	}
	if s.secret == "" || s.issuer == "" || s.domain == "" {
		return ErrVoiceUnconfigured
	}
	return nil
}

func (s *VoiceService) sign(user, action, target string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": now.Add(voiceTokenTTL).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", now.UnixNano(), rand.Int63()),
		"f":   s.userURI(user),
		"t":   target,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *VoiceService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}
