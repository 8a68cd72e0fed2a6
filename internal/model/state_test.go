package model

import "testing"

func TestInstallState_IsReady(t *testing.T) {
	tests := []struct {
		state    InstallState
		expected bool
	}{
		{StateUnknown, false},
		{StateDownloading, false},
		{StateReady, true},
	}

	for _, test := range tests {
		result := test.state.IsReady()
		if result != test.expected {
			t.Errorf("InstallState(%s).IsReady() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestInstallState_IsActive(t *testing.T) {
	tests := []struct {
		state    InstallState
		expected bool
	}{
		{StateUnknown, false},
		{StateDownloading, true},
		{StateReady, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("InstallState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestInstallState_String(t *testing.T) {
	state := StateDownloading
	expected := "downloading"
	result := state.String()

	if result != expected {
		t.Errorf("InstallState.String() = %s, expected %s", result, expected)
	}
}
