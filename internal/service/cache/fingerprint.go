package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
)

// Bump when the serialized layout changes so old entries stop matching.
const fingerprintVersion = "v1"

const (
	FeatureAstrologyOverview = "astrology:overview"
	FeatureNumerology        = "numerology:life-path"
	FeatureHoroscope         = "horoscope:chart"
)

// FeatureAstrologyLove keys a love reading by the partner's canonical date.
func FeatureAstrologyLove(partner core.Date) string {
	return "astrology:love:" + partner.Canonical()
}

// ComputeFingerprint hashes normalized subject data with a feature id.
// birthTime must already be normalized (HH:MM, empty, or an unreadable-time token).
func ComputeFingerprint(date core.Date, birthTime string, gender core.Gender, featureID string) string {
	payload := strings.Join([]string{
		fingerprintVersion,
		date.Canonical(),
		birthTime,
		string(gender),
		featureID,
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
