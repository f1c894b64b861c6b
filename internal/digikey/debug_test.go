package digikey

import "testing"

func TestSanitizeQuery(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{in: "LM358N", want: "LM358N"},
		{in: "RC0402JR-070RL", want: "RC0402JR_070RL"},
		{in: "10uF/16V 0402", want: "10uF_16V_0402"},
		{in: "10kΩ ±1%", want: "10k___1_"},
		{in: "", want: ""},
	} {
		if got := sanitizeQuery(tc.in); got != tc.want {
			t.Fatalf("sanitizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
