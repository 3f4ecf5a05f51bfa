package validation

import "testing"

func TestValidateSnowflake(t *testing.T) {
	valid := []string{
		"12345678901234567",
		"100000000000000001",
		"  100000000000000001  ", // trimmed before matching
		"12345678901234567890",
	}
	for _, id := range valid {
		if !ValidateSnowflake(id) {
			t.Errorf("expected %q to validate", id)
		}
	}

	invalid := []string{
		"",
		"abc",
		"1234",                  // too short
		"123456789012345678901", // too long
		"1234567890123456a",
	}
	for _, id := range invalid {
		if ValidateSnowflake(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}

func TestValidateMultiplier(t *testing.T) {
	for mult := 1; mult <= 10; mult++ {
		if !ValidateMultiplier(mult) {
			t.Errorf("expected %d to validate", mult)
		}
	}
	for _, mult := range []int{0, -5, 11, 1000} {
		if ValidateMultiplier(mult) {
			t.Errorf("expected %d to be rejected", mult)
		}
	}
}

func TestValidateAmountRange(t *testing.T) {
	if !ValidateAmountRange(1, 1) || !ValidateAmountRange(10, 50) {
		t.Error("expected ordered positive ranges to validate")
	}
	if ValidateAmountRange(0, 10) || ValidateAmountRange(-5, 10) || ValidateAmountRange(50, 10) {
		t.Error("expected invalid ranges to be rejected")
	}
}

func TestValidateDuration(t *testing.T) {
	if !ValidateDuration(nil) {
		t.Error("expected nil duration to validate")
	}
	zero, positive, negative := int64(0), int64(600), int64(-1)
	if !ValidateDuration(&zero) || !ValidateDuration(&positive) {
		t.Error("expected non-negative durations to validate")
	}
	if ValidateDuration(&negative) {
		t.Error("expected negative duration to be rejected")
	}
}
