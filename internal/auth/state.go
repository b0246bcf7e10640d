package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The OAuth state parameter is the only handshake-scoped state: a signed,
// time-boxed nonce instead of a server-side session. Nothing survives the
// redirect round trip.
const stateValidity = 10 * time.Minute

type StateSigner struct {
	secret []byte
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret)}
}

func (s *StateSigner) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func (s *StateSigner) Sign() string {
	payload := []byte(fmt.Sprintf("%s:%d", uuid.NewString(), time.Now().Unix()))
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(s.sign(payload))
}

func (s *StateSigner) Verify(state string) bool {
	parts := strings.Split(state, ".")
	if len(parts) != 2 {
		return false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	if !hmac.Equal(sig, s.sign(payload)) {
		return false
	}

	fields := strings.Split(string(payload), ":")
	if len(fields) != 2 {
		return false
	}
	issued, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return false
	}

	age := time.Since(time.Unix(issued, 0))
	return age >= 0 && age <= stateValidity
}
