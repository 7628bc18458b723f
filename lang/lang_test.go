package lang

import (
	"strings"
	"testing"
	"time"

	"hourglass/models"
)

// Keys and the argument shapes their call sites pass. A verb/argument
// mismatch surfaces as a %! marker in the output.
func TestGetfFormatsCleanly(t *testing.T) {
	cases := []struct {
		key  string
		args []interface{}
	}{
		{"denied/restricted", []interface{}{"$"}},
		{"denied/managed", []interface{}{"$"}},
		{"info", []interface{}{"bot", "$", "$"}},
		{"prefix/no_argument", []interface{}{"$"}},
		{"prefix/success", []interface{}{"!!"}},
		{"timezone/no_argument", []interface{}{"$", "UTC"}},
		{"timezone/set", []interface{}{"Europe/London", "10:00:00"}},
		{"timezone/set_p", []interface{}{"Europe/London", "10:00:00"}},
		{"lang/invalid", []interface{}{"English (EN)"}},
		{"clock/time", []interface{}{"10:00:00"}},
		{"natural/no_argument", []interface{}{"$"}},
		{"natural/bulk_set", []interface{}{3}},
		{"natural/success", []interface{}{"<#1>", "2 hours from now"}},
		{"remind/no_argument", []interface{}{"$"}},
		{"remind/success", []interface{}{"<#1>", "2 hours from now"}},
		{"remind/long_time", []interface{}{int64(18250)}},
		{"interval/no_argument", []interface{}{"$"}},
		{"interval/donor", []interface{}{"$"}},
		{"interval/short_interval", []interface{}{int64(800)}},
		{"interval/long_interval", []interface{}{int64(18250)}},
		{"timer/help", []interface{}{"$"}},
		{"timer/name_length", []interface{}{40}},
		{"del/count", []interface{}{2}},
		{"look/listing_limited", []interface{}{5}},
		{"todo/help", []interface{}{"$", "todo"}},
		{"todo/add", []interface{}{"$", "todos"}},
		{"todo/added", []interface{}{"water plants"}},
		{"todo/removed", []interface{}{"water plants"}},
		{"todo/error_value", []interface{}{"$", "todo"}},
		{"offset/help", []interface{}{"$", "$", "$"}},
		{"offset/success", []interface{}{"10m"}},
		{"nudge/success", []interface{}{"-5m"}},
		{"restrict/allowed", []interface{}{"<@&1> can use `remind`"}},
		{"restrict/help", []interface{}{"$", "$", "$"}},
		{"restrict/failure", []interface{}{"help"}},
	}
	for _, tc := range cases {
		got := Getf("EN", tc.key, tc.args...)
		if strings.Contains(got, "%!") {
			t.Errorf("Getf(%q, %v) = %q", tc.key, tc.args, got)
		}
		if strings.Contains(got, "%v") || strings.Contains(got, "%d") {
			t.Errorf("Getf(%q, %v) left a verb unfilled: %q", tc.key, tc.args, got)
		}
	}
}

func TestGetFallsBack(t *testing.T) {
	if got := Get("EN", "timer/success"); got == "timer/success" {
		t.Error("known key resolved to itself")
	}
	if got := Get("ZZ", "timer/success"); got != Get("EN", "timer/success") {
		t.Errorf("unknown code did not fall back to default: %q", got)
	}
	if got := Get("EN", "no/such/key"); got != "no/such/key" {
		t.Errorf("missing key = %q, want the key itself", got)
	}
}

func TestAvailableMatchesBundles(t *testing.T) {
	rows := Available()
	if len(rows) != len(bundles) {
		t.Fatalf("Available() = %d rows, want %d", len(rows), len(bundles))
	}
	for _, row := range rows {
		if _, ok := bundles[row.Code]; !ok {
			t.Errorf("row %q has no bundle", row.Code)
		}
		if row.Name == "" {
			t.Errorf("row %q has no display name", row.Code)
		}
	}
}

func TestPreferencesPrefix(t *testing.T) {
	dm := NewPreferences(nil, &models.User{})
	if got := dm.Prefix(); got != models.DefaultPrefix {
		t.Errorf("DM prefix = %q, want %q", got, models.DefaultPrefix)
	}

	p := NewPreferences(&models.Guild{Prefix: "!!"}, &models.User{})
	if got := p.Prefix(); got != "!!" {
		t.Errorf("guild prefix = %q, want !!", got)
	}
}

func TestPreferencesLocation(t *testing.T) {
	berlin, _ := time.LoadLocation("Europe/Berlin")
	tokyo, _ := time.LoadLocation("Asia/Tokyo")

	tests := []struct {
		name  string
		prefs *Preferences
		want  *time.Location
	}{
		{"user wins", &Preferences{
			Guild: &models.Guild{Timezone: "Asia/Tokyo"},
			User:  &models.User{Timezone: "Europe/Berlin"},
		}, berlin},
		{"guild next", &Preferences{
			Guild: &models.Guild{Timezone: "Asia/Tokyo"},
			User:  &models.User{},
		}, tokyo},
		{"fallback", &Preferences{
			User:     &models.User{},
			Fallback: berlin,
		}, berlin},
		{"utc last", &Preferences{User: &models.User{}}, time.UTC},
		{"bad name uses fallback", &Preferences{
			User:     &models.User{Timezone: "Nowhere/Special"},
			Fallback: tokyo,
		}, tokyo},
	}
	for _, tt := range tests {
		if got := tt.prefs.Location(); got.String() != tt.want.String() {
			t.Errorf("%s: Location() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
