package core

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    GameMode
		wantErr bool
	}{
		{"TB1", ModeTB1, false},
		{"TB2", ModeTB2, false},
		{"HR1", ModeHR1, false},
		{"HR2", ModeHR2, false},
		{"XX1", DefaultMode, true},
		{"", DefaultMode, true},
		{"tb1", DefaultMode, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if got != tc.want {
				t.Errorf("ParseMode(%q) = %q, expected %q", tc.in, got, tc.want)
			}
			if tc.wantErr && !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, expected ErrUnknownMode", tc.in, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ParseMode(%q) unexpected error: %v", tc.in, err)
			}
		})
	}
}

func TestParseUISize(t *testing.T) {
	for _, p := range UISizes() {
		got, err := ParseUISize(string(p))
		if err != nil || got != p {
			t.Errorf("ParseUISize(%q) = %q, %v", p, got, err)
		}
	}

	got, err := ParseUISize("XL")
	if !errors.Is(err, ErrUnknownUISize) {
		t.Errorf("ParseUISize(XL) error = %v, expected ErrUnknownUISize", err)
	}
	if got != DefaultUISize {
		t.Errorf("ParseUISize(XL) = %q, expected default %q", got, DefaultUISize)
	}
}

func TestPresetScalesGrow(t *testing.T) {
	s, m, l := UISizeS.Preset(), UISizeM.Preset(), UISizeL.Preset()
	if !(s.Scale < m.Scale && m.Scale < l.Scale) {
		t.Errorf("scales should grow S < M < L, got %v %v %v", s.Scale, m.Scale, l.Scale)
	}
	if UISizePreset("?").Preset() != m {
		t.Error("unknown size should use the default preset")
	}
}

func TestSettingsNormalize(t *testing.T) {
	in := GameSettings{Name: "Ava", Mode: "XX1", UISize: UISizeL}
	got := in.Normalize()

	want := GameSettings{Name: "Ava", Mode: ModeTB1, UISize: UISizeL}
	if got != want {
		t.Errorf("Normalize() = %+v, expected %+v", got, want)
	}
}

func TestDefaultSettings(t *testing.T) {
	d := DefaultSettings()
	if d.Name != "" || d.Mode != ModeTB1 || d.UISize != UISizeM {
		t.Errorf("DefaultSettings() = %+v", d)
	}
}
