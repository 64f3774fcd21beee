package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yashovardan8harit/caption-backend/internal/config"
)

// ErrSignatureNotConfigured is returned when upload credentials are missing.
// The issuer fails closed rather than emit a signature that cannot verify.
var ErrSignatureNotConfigured = errors.New("missing upload signing credentials")

// UploadSignature is the signed payload a client uses for a direct upload.
type UploadSignature struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// SignatureService issues Cloudinary-style signed upload payloads.
// Stateless: the same parameters and timestamp always yield the same
// signature.
type SignatureService struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	now       func() time.Time
}

// NewSignatureService creates a new signature issuer.
// Parameters:
//   - cfg: Cloudinary credentials and upload folder.
// Returns:
//   - *SignatureService: initialized issuer.
func NewSignatureService(cfg *config.CloudinaryConfig) *SignatureService {
	folder := cfg.Folder
	if folder == "" {
		folder = "uploads"
	}
	return &SignatureService{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    folder,
		now:       time.Now,
	}
}

// Configured reports whether all signing credentials are present.
func (s *SignatureService) Configured() bool {
	return s.cloudName != "" && s.apiKey != "" && s.apiSecret != ""
}

// Issue produces a signed upload payload for the current time.
// Parameters: none.
// Returns:
//   - *UploadSignature: signed payload.
//   - error: ErrSignatureNotConfigured when credentials are missing.
func (s *SignatureService) Issue() (*UploadSignature, error) {
	if !s.Configured() {
		return nil, ErrSignatureNotConfigured
	}

	timestamp := s.now().Unix()
	params := map[string]string{
		"folder":    s.folder,
		"timestamp": strconv.FormatInt(timestamp, 10),
	}

	return &UploadSignature{
		Timestamp: timestamp,
		Signature: signParams(params, s.apiSecret),
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
		Folder:    s.folder,
	}, nil
}

// signParams signs a parameter set: keys sorted alphabetically, joined as
// key=value pairs with '&', the secret appended, and the whole string
// SHA-256 hashed to hex.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	toSign := strings.Join(pairs, "&") + secret
	digest := sha256.Sum256([]byte(toSign))
	return hex.EncodeToString(digest[:])
}
