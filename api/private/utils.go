package private

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// GetKrakenSign builds the API-Sign header value:
// base64(HMAC-SHA512(base64decode(secret), path + SHA256(nonce + postdata))).
func GetKrakenSign(path string, nonce string, secret string, encodedParams string) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", errors.Wrap(err, "secret key is not valid base64")
	}

	shaSum := sha256.Sum256([]byte(nonce + encodedParams))

	mac := hmac.New(sha512.New, secretBytes)
	if _, err = mac.Write([]byte(path)); err != nil {
		return "", err
	}
	if _, err = mac.Write(shaSum[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// GetNonce returns an always-increasing nonce as unix seconds.
func GetNonce() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
