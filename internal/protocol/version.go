package protocol

import (
	"fmt"
	"strings"
)

// Version is a protocol release line. Values are totally ordered.
type Version int

const (
	V1_12 Version = iota
	V1_13
	V1_16
	V1_20
	V1_20_2
	V1_20_3
)

var versionNames = [...]string{
	V1_12:   "1.12",
	V1_13:   "1.13",
	V1_16:   "1.16",
	V1_20:   "1.20",
	V1_20_2: "1.20.2",
	V1_20_3: "1.20.3",
}

// Versions lists every supported version in ascending order.
func Versions() []Version {
	return []Version{V1_12, V1_13, V1_16, V1_20, V1_20_2, V1_20_3}
}

// ParseVersion accepts "1.20.3", "v1.20.3" or "V1_20_3".
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	s = strings.ReplaceAll(s, "_", ".")
	for v, name := range versionNames {
		if s == name {
			return Version(v), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown version %q", ErrInvalidArgument, raw)
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v]
}

// Valid reports whether v is one of the declared versions.
func (v Version) Valid() bool {
	return v >= V1_12 && v <= V1_20_3
}

func (v Version) AtLeast(o Version) bool { return v >= o }

func (v Version) AtMost(o Version) bool { return v <= o }

// MarshalText lets versions round-trip through TOML and flags.
func (v Version) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, v)
	}
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Feature is a capability that appears or disappears at a version boundary.
type Feature int

const (
	// FeatureChatComponents: text fields are chat components, not plain strings.
	FeatureChatComponents Feature = iota
	// FeatureHexColors: legacy markup accepts §x extended colors.
	FeatureHexColors
	// FeatureVarIntDisplaySlot: display slot is a varint instead of a byte.
	FeatureVarIntDisplaySlot
	// FeatureNBTComponents: chat components travel as structured tags.
	FeatureNBTComponents
	// FeatureNumberFormat: objectives and scores carry a number format.
	FeatureNumberFormat
	// FeatureScoreDisplayName: scores carry a display-text override.
	FeatureScoreDisplayName
	// FeatureResetScore: score removal uses the dedicated reset message.
	FeatureResetScore
	// FeatureScoreAction: score messages carry an update/remove action.
	FeatureScoreAction
	// FeatureUncappedNames: objective, team and entity names have no length cap.
	FeatureUncappedNames
	// FeatureUncappedText: display names, prefixes and suffixes have no length cap.
	FeatureUncappedText
)

var featureNames = [...]string{
	FeatureChatComponents:    "chat-components",
	FeatureHexColors:         "hex-colors",
	FeatureVarIntDisplaySlot: "varint-display-slot",
	FeatureNBTComponents:     "nbt-components",
	FeatureNumberFormat:      "number-format",
	FeatureScoreDisplayName:  "score-display-name",
	FeatureResetScore:        "reset-score",
	FeatureScoreAction:       "score-action",
	FeatureUncappedNames:     "uncapped-names",
	FeatureUncappedText:      "uncapped-text",
}

func (f Feature) String() string {
	if f < 0 || int(f) >= len(featureNames) {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureNames[f]
}

// Features lists every declared feature.
func Features() []Feature {
	out := make([]Feature, len(featureNames))
	for i := range featureNames {
		out[i] = Feature(i)
	}
	return out
}

// Supports reports whether f is available on v.
func (v Version) Supports(f Feature) bool {
	switch f {
	case FeatureChatComponents, FeatureUncappedText:
		return v >= V1_13
	case FeatureHexColors:
		return v >= V1_16
	case FeatureVarIntDisplaySlot:
		return v >= V1_20_2
	case FeatureNBTComponents, FeatureNumberFormat, FeatureScoreDisplayName, FeatureResetScore:
		return v >= V1_20_3
	case FeatureScoreAction:
		return v < V1_20_3
	case FeatureUncappedNames:
		return v > V1_20
	default:
		return false
	}
}

// Require returns ErrUnsupported when f is unavailable on v.
func (v Version) Require(f Feature, what string) error {
	if v.Supports(f) {
		return nil
	}
	return fmt.Errorf("%w: %s requires %s, running %s", ErrUnsupported, what, f, v)
}
