package setting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sellaids/backend/internal/domain/shared"
)

// Kind is the value type of a setting key
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
)

// Definition describes a known setting key
type Definition struct {
	Key     string
	Kind    Kind
	Default string
	Min     int
	Max     int
}

// Group names
const (
	GroupGeneral       = "general"
	GroupNotifications = "notifications"
	GroupSecurity      = "security"
	GroupPayments      = "payments"
)

// Well-known keys read by other modules
const (
	KeySMSEnabled     = "sms_enabled"
	KeyNewVendorAlert = "new_vendor_alert"
	KeyNewReviewAlert = "new_review_alert"
)

// Catalog is the whitelist of groups and keys with their defaults
var Catalog = map[string][]Definition{
	GroupGeneral: {
		{Key: "site_name", Kind: KindString, Default: "Sellaids"},
		{Key: "support_email", Kind: KindString, Default: "support@sellaids.com"},
		{Key: "support_phone", Kind: KindString, Default: ""},
		{Key: "currency", Kind: KindString, Default: "INR"},
	},
	GroupNotifications: {
		{Key: "email_enabled", Kind: KindBool, Default: "true"},
		{Key: KeySMSEnabled, Kind: KindBool, Default: "false"},
		{Key: KeyNewVendorAlert, Kind: KindBool, Default: "true"},
		{Key: KeyNewReviewAlert, Kind: KindBool, Default: "true"},
	},
	GroupSecurity: {
		{Key: "session_timeout_minutes", Kind: KindInt, Default: "60", Min: 5, Max: 1440},
		{Key: "require_strong_passwords", Kind: KindBool, Default: "true"},
	},
	GroupPayments: {
		{Key: "commission_rate", Kind: KindInt, Default: "10", Min: 0, Max: 100},
		{Key: "payout_cycle_days", Kind: KindInt, Default: "7", Min: 1, Max: 90},
	},
}

// Groups returns the known group names in sorted order
func Groups() []string {
	groups := make([]string, 0, len(Catalog))
	for g := range Catalog {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Setting is a persisted override of a default value
type Setting struct {
	Group string
	Key   string
	Value string
}

// Defaults returns the default values of a group
func Defaults(group string) (map[string]string, error) {
	defs, ok := Catalog[group]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown settings group: "+group)
	}
	values := make(map[string]string, len(defs))
	for _, d := range defs {
		values[d.Key] = d.Default
	}
	return values, nil
}

// Validate checks a set of updates against the group definition and
// returns the normalized values.
func Validate(group string, values map[string]string) ([]Setting, error) {
	defs, ok := Catalog[group]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown settings group: "+group)
	}
	if len(values) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No settings provided")
	}
	byKey := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byKey[d.Key] = d
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Setting, 0, len(values))
	for _, key := range keys {
		def, ok := byKey[key]
		if !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown setting "+group+"."+key)
		}
		normalized, err := def.normalize(values[key])
		if err != nil {
			return nil, err
		}
		out = append(out, Setting{Group: group, Key: key, Value: normalized})
	}
	return out, nil
}

func (d Definition) normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", shared.NewDomainError("VALIDATION_ERROR", d.Key+" must be true or false")
		}
		return strconv.FormatBool(b), nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", shared.NewDomainError("VALIDATION_ERROR", d.Key+" must be a whole number")
		}
		if n < d.Min || n > d.Max {
			return "", shared.NewDomainError("VALIDATION_ERROR",
				d.Key+" must be between "+strconv.Itoa(d.Min)+" and "+strconv.Itoa(d.Max))
		}
		return strconv.Itoa(n), nil
	default:
		if len(raw) > 500 {
			return "", shared.NewDomainError("VALIDATION_ERROR", d.Key+" cannot exceed 500 characters")
		}
		return raw, nil
	}
}

// IsEnabled interprets a stored boolean value
func IsEnabled(value string) bool {
	b, _ := strconv.ParseBool(value)
	return b
}
