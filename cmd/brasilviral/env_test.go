// cmd/brasilviral/env_test.go
package main

import "testing"

func TestGetEnvString(t *testing.T) {
	t.Setenv("BV_TEST_STR", "valor")
	if got := GetEnvString("BV_TEST_STR", "padrao"); got != "valor" {
		t.Errorf("got %q", got)
	}
	if got := GetEnvString("BV_TEST_STR_MISSING", "padrao"); got != "padrao" {
		t.Errorf("default not used: %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BV_TEST_INT", "42")
	if got := GetEnvInt("BV_TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
	t.Setenv("BV_TEST_INT", "not-a-number")
	if got := GetEnvInt("BV_TEST_INT", 7); got != 7 {
		t.Errorf("invalid value should fall back, got %d", got)
	}
	if got := GetEnvInt("BV_TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("default not used: %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("BV_TEST_BOOL", "true")
	if !GetEnvBool("BV_TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("BV_TEST_BOOL", "nope")
	if !GetEnvBool("BV_TEST_BOOL", true) {
		t.Error("invalid value should fall back to default")
	}
	if GetEnvBool("BV_TEST_BOOL_MISSING", false) {
		t.Error("default not used")
	}
}
