package capture

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   Outcome
	}{
		{"empty", "", OutcomeSuccess},
		{"english claim", "Could not claim interface 0", OutcomeTransient},
		{"full english", "An error occurred in the io-library ('Could not claim the USB device')", OutcomeTransient},
		{"portuguese", "Não foi possível contactar o dispositivo USB", OutcomeTransient},
		{"error code", "*** Error (-53: 'Could not claim the USB device') ***", OutcomeTransient},
		{"portuguese error code", "*** Erro (-53: 'dispositivo ocupado') ***", OutcomeTransient},
		{"no camera", "*** Error: No camera found. ***", OutcomeFailed},
		{"other code", "*** Error (-7: 'I/O problem') ***", OutcomeFailed},
		{"whitespace only", "\n", OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.stderr); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.stderr, got, tt.want)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeTransient.String() != "transient-usb-error" {
		t.Errorf("unexpected string %q", OutcomeTransient.String())
	}
	if Outcome(9).String() != "unknown" {
		t.Errorf("unexpected string %q", Outcome(9).String())
	}
}
