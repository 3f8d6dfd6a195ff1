package users

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// TimeLayout is the on-disk timestamp format, in local time.
const TimeLayout = "2006-01-02 15:04:05"

const (
	keyID         = "id"
	keySurname    = "surname"
	keyName       = "name"
	keyLogin      = "login"
	keyPassword   = "password"
	keyRole       = "role"
	keyStatus     = "status"
	keyLoginCount = "login_count"
	keyLoginTime  = "login_time"
	keyLogoutTime = "logout_time"
)

var knownKeys = []string{
	keyID, keySurname, keyName, keyLogin, keyPassword,
	keyRole, keyStatus, keyLoginCount, keyLoginTime, keyLogoutTime,
}

// decodeRecord converts one persisted object into a User. Structural errors
// (a key holding the wrong JSON type) fail the record. Unknown enum values fall
// back to the least privileged value and keep the raw value in Unparsed.
// Unparsable timestamps are treated as absent. Both are reported as warnings.
func decodeRecord(raw map[string]json.RawMessage) (*models.User, []string, error) {
	u := &models.User{Role: models.RoleStandard, Status: models.StatusActive}
	var warnings []string

	fields := []struct {
		key string
		dst any
	}{
		{keyID, &u.ID},
		{keySurname, &u.Surname},
		{keyName, &u.Name},
		{keyLogin, &u.Login},
		{keyPassword, &u.Password},
		{keyLoginCount, &u.LoginCount},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok || isNull(v) {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", f.key, err)
		}
	}

	if v, ok := raw[keyRole]; ok && !isNull(v) {
		role, err := decodeRole(v)
		if err != nil {
			warnings = append(warnings, err.Error())
			keepUnparsed(u, keyRole, v)
		}
		u.Role = role
	}

	if v, ok := raw[keyStatus]; ok && !isNull(v) {
		status, err := decodeStatus(v)
		if err != nil {
			warnings = append(warnings, err.Error())
			keepUnparsed(u, keyStatus, v)
		}
		u.Status = status
	}

	for _, tf := range []struct {
		key string
		dst **time.Time
	}{{keyLoginTime, &u.LoginTime}, {keyLogoutTime, &u.LogoutTime}} {
		v, ok := raw[tf.key]
		if !ok || isNull(v) {
			continue
		}
		ts, err := decodeTime(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("field %q: %v", tf.key, err))
			continue
		}
		*tf.dst = ts
	}

	for k, v := range raw {
		if isKnown(k) {
			continue
		}
		if u.Extra == nil {
			u.Extra = make(map[string]json.RawMessage)
		}
		u.Extra[k] = v
	}

	return u, warnings, nil
}

func keepUnparsed(u *models.User, key string, v json.RawMessage) {
	if u.Unparsed == nil {
		u.Unparsed = make(map[string]json.RawMessage)
	}
	u.Unparsed[key] = v
}

// encodeRecord converts a User into its persisted object. Extra keys are
// written first so known fields always win. An unparsed value is written back
// as read while the typed field still holds its fallback.
func encodeRecord(u *models.User) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(knownKeys)+len(u.Extra))
	for k, v := range u.Extra {
		out[k] = v
	}

	values := map[string]any{
		keyID:         u.ID,
		keySurname:    u.Surname,
		keyName:       u.Name,
		keyLogin:      u.Login,
		keyPassword:   u.Password,
		keyRole:       int(u.Role),
		keyStatus:     u.Status.String(),
		keyLoginCount: u.LoginCount,
		keyLoginTime:  encodeTime(u.LoginTime),
		keyLogoutTime: encodeTime(u.LogoutTime),
	}
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = b
	}

	for k, v := range u.Unparsed {
		if unchangedFallback(u, k) {
			out[k] = v
		}
	}
	return out, nil
}

func unchangedFallback(u *models.User, key string) bool {
	switch key {
	case keyRole:
		return u.Role == models.RoleStandard
	case keyStatus:
		return u.Status == models.StatusInactive
	}
	return false
}

func decodeRole(v json.RawMessage) (models.Role, error) {
	var n int
	if err := json.Unmarshal(v, &n); err == nil {
		if r := models.Role(n); r.Valid() {
			return r, nil
		}
		return models.RoleStandard, fmt.Errorf("unknown role %d", n)
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return models.RoleStandard, fmt.Errorf("unknown role %s", string(v))
	}
	switch s {
	case "0", models.RoleStandard.String():
		return models.RoleStandard, nil
	case "1", models.RoleAdmin.String():
		return models.RoleAdmin, nil
	}
	return models.RoleStandard, fmt.Errorf("unknown role %q", s)
}

func decodeStatus(v json.RawMessage) (models.Status, error) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return models.StatusInactive, fmt.Errorf("unknown status %s", string(v))
	}
	switch s {
	case models.StatusActive.String():
		return models.StatusActive, nil
	case models.StatusInactive.String():
		return models.StatusInactive, nil
	}
	return models.StatusInactive, fmt.Errorf("unknown status %q", s)
}

func decodeTime(v json.RawMessage) (*time.Time, error) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(time.Local).Format(TimeLayout)
	return &s
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

func isKnown(k string) bool {
	for _, kk := range knownKeys {
		if kk == k {
			return true
		}
	}
	return false
}

// extraKeys lists u's unknown keys in a stable order, for diagnostics.
func extraKeys(u *models.User) []string {
	keys := make([]string, 0, len(u.Extra))
	for k := range u.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recordRef(i int, raw map[string]json.RawMessage) string {
	if v, ok := raw[keyLogin]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return "#" + strconv.Itoa(i)
}
