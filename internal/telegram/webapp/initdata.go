package webapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInitDataMissing = errors.New("init data is empty")
	ErrHashMissing     = errors.New("init data has no hash")
	ErrHashMismatch    = errors.New("init data signature mismatch")
	ErrInitDataExpired = errors.New("init data expired")
)

// User is the Telegram user that opened the mini app.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// InitData is the parsed and verified launch payload.
type InitData struct {
	QueryID  string
	User     *User
	AuthDate time.Time
	Raw      url.Values
}

// ValidateInitData checks the signature of raw against botToken and, when
// maxAge > 0, that auth_date is not older than maxAge relative to now.
func ValidateInitData(raw, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInitDataMissing
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse init data: %w", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrHashMissing
	}

	want := Sign(values, botToken)
	if !hmac.Equal([]byte(strings.ToLower(hash)), []byte(want)) {
		return nil, ErrHashMismatch
	}

	out := &InitData{QueryID: values.Get("query_id"), Raw: values}

	if v := values.Get("auth_date"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse auth_date: %w", err)
		}
		out.AuthDate = time.Unix(sec, 0).UTC()
	}
	if maxAge > 0 && (out.AuthDate.IsZero() || now.Sub(out.AuthDate) > maxAge) {
		return nil, ErrInitDataExpired
	}

	if v := values.Get("user"); v != "" {
		var u User
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			return nil, fmt.Errorf("parse user: %w", err)
		}
		out.User = &u
	}

	return out, nil
}

// Sign computes the init data hash for values (the "hash" key is ignored).
func Sign(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(strings.Join(pairs, "\n"))))
}

func hmacSHA256(key, msg []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(msg)
	return m.Sum(nil)
}
