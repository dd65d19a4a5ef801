package util

import "testing"

func TestHashKey(t *testing.T) {
	id := `{"budget":1200}`
	got := HashKey(id)
	if got != HashKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got != HashBytes([]byte(id)) {
		t.Fatalf("expected HashKey and HashBytes to agree")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "state.json", want: "state.json"},
		{in: "/nested//state.json", want: "nested/state.json"},
		{in: `win\style\key`, want: "win/style/key"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "/", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("SanitizeKey(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeKey(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("SanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
