package limits

import "testing"

func TestValidateMessageSize(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		maxSize int
		wantErr error
	}{
		{"empty", []byte{}, 100, ErrMessageEmpty},
		{"nil", nil, 100, ErrMessageEmpty},
		{"within limit", make([]byte, 50), 100, nil},
		{"at exact limit", make([]byte, 100), 100, nil},
		{"exceeds limit", make([]byte, 101), 100, ErrMessageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageSize(tt.payload, tt.maxSize)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMessageSize() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateMessageSize() = nil, want error wrapping %v", tt.wantErr)
			}
		})
	}
}

func TestValidateDatagramSize(t *testing.T) {
	if err := ValidateDatagramSize(make([]byte, RecommendedDatagramSize)); err != nil {
		t.Errorf("payload at RecommendedDatagramSize should pass: %v", err)
	}
	if err := ValidateDatagramSize(make([]byte, RecommendedDatagramSize+1)); err == nil {
		t.Error("payload over RecommendedDatagramSize should fail")
	}
}

func TestValidateWireMessageSize(t *testing.T) {
	if err := ValidateWireMessageSize(make([]byte, HeaderSize)); err != nil {
		t.Errorf("header-only payload should pass: %v", err)
	}
	if err := ValidateWireMessageSize(make([]byte, MaxMessageSize+1)); err == nil {
		t.Error("payload over MaxMessageSize should fail")
	}
}

func TestConstantConsistency(t *testing.T) {
	if MaxMessageSize != HeaderSize+MaxAttributesSize {
		t.Errorf("MaxMessageSize (%d) != HeaderSize (%d) + MaxAttributesSize (%d)",
			MaxMessageSize, HeaderSize, MaxAttributesSize)
	}
	if RecommendedDatagramSize <= HeaderSize {
		t.Errorf("RecommendedDatagramSize (%d) should exceed HeaderSize (%d)", RecommendedDatagramSize, HeaderSize)
	}
}
