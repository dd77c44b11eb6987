package utils

import (
	"testing"
	"time"
)

func TestIsAbsoluteURL(t *testing.T) {
	valid := []string{
		"https://pay.example.com/checkout",
		"http://pay.example.com",
		" https://pay.example.com/x?y=1 ",
	}
	for _, u := range valid {
		if !IsAbsoluteURL(u) {
			t.Errorf("expected valid: %q", u)
		}
	}

	invalid := []string{
		"",
		"   ",
		"pay.example.com/checkout",
		"/relative/path",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"https://",
	}
	for _, u := range invalid {
		if IsAbsoluteURL(u) {
			t.Errorf("expected invalid: %q", u)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount(" 50.00 "); err != nil {
		t.Errorf("50.00 should parse: %v", err)
	}
	for _, raw := range []string{"0", "-1", "abc", ""} {
		if _, err := ParseAmount(raw); err == nil {
			t.Errorf("%q should not parse", raw)
		}
	}
}

func TestSignRoundTrip(t *testing.T) {
	params := map[string]string{
		"merchant_id": "7",
		"timestamp":   "1724900000000",
		"status":      "completed",
	}
	sign := GenerateSign(params, "secret-key")
	if sign == "" {
		t.Fatal("empty sign")
	}

	params["sign"] = sign
	if !VerifySign(params, "secret-key") {
		t.Error("sign should verify")
	}
	if VerifySign(params, "wrong-key") {
		t.Error("wrong key must not verify")
	}

	params["status"] = "failed"
	if VerifySign(params, "secret-key") {
		t.Error("tampered params must not verify")
	}
}

func TestGenerateSignSkipsEmptyAndSign(t *testing.T) {
	a := GenerateSign(map[string]string{"a": "1", "b": ""}, "k")
	b := GenerateSign(map[string]string{"a": "1"}, "k")
	if a != b {
		t.Error("empty values must not affect the sign")
	}
	c := GenerateSign(map[string]string{"a": "1", "sign": "XYZ"}, "k")
	if c != b {
		t.Error("sign field must not sign itself")
	}
}

func TestIsTimestampValid(t *testing.T) {
	now := time.Now().UnixMilli()
	if !IsTimestampValid(now, time.Minute) {
		t.Error("current timestamp should be valid")
	}
	if IsTimestampValid(now-2*60*1000, time.Minute) {
		t.Error("2 minutes old should be rejected")
	}
	if IsTimestampValid(now+2*60*1000, time.Minute) {
		t.Error("2 minutes in the future should be rejected")
	}
}
