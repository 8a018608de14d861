package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake id string
func UUID() string {
	return snowflakeNode.Generate().String()
}

// Sha256Hash returns the hex encoded sha256 of src
func Sha256Hash(src string) string {
	h := sha256.New()
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

// Sha256HashWithSalt returns the hex encoded sha256 of src+salt
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}

// GetSecretSalt reads the secret salt from env, falling back to a static default
func GetSecretSalt() string {
	salt := os.Getenv("PPSTORE_SECRET_SALT")
	if salt == "" {
		salt = "9b6d1bff"
	}
	return salt
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9\-\s()]{7,20}$`)
)

// IsEmailValid checks email format
func IsEmailValid(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsPhoneValid checks phone format, empty phone is not valid
func IsPhoneValid(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// EmptyOr returns dv if v is empty
func EmptyOr(v string, dv string) string {
	if strings.TrimSpace(v) == "" {
		return dv
	}
	return v
}

// File exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MustDir creates dir if missing
func MustDir(path string) string {
	if !FileExists(path) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			panic(fmt.Sprintf("create dir %s: %v", path, err))
		}
	}
	return path
}
