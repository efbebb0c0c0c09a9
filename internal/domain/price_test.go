package domain

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    Price
		wantErr bool
	}{
		{"500.12", 50012, false},
		{"0.00", 0, false},
		{"0", 0, false},
		{"9999.99", 999999, false},
		{"500", 50000, false},
		{"500.1", 50010, false},
		{"10000.00", 0, true},
		{"-1.00", 0, true},
		{"1.234", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		// A sign inside either part must be rejected, not folded into
		// the amount.
		{"5.-1", 0, true},
		{"5.+1", 0, true},
		{"+5.10", 0, true},
		{"5.1e1", 0, true},
	}

	for _, c := range cases {
		got, err := ParsePrice(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPriceString(t *testing.T) {
	if s := Price(50012).String(); s != "500.12" {
		t.Errorf("expected 500.12, got %s", s)
	}
	if s := Price(5).String(); s != "0.05" {
		t.Errorf("expected 0.05, got %s", s)
	}
}

func TestPriceJSONRoundTrip(t *testing.T) {
	// Two decimal places must survive marshalling regardless of input form.
	for _, in := range []string{`"500.12"`, `500.12`} {
		var p Price
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("unmarshal %s failed: %v", in, err)
		}
		out, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(out) != `"500.12"` {
			t.Errorf("round trip of %s produced %s", in, out)
		}
	}
}

func TestPriceScan(t *testing.T) {
	var p Price
	if err := p.Scan([]byte("9999.99")); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if p != MaxPrice {
		t.Errorf("expected %d, got %d", MaxPrice, p)
	}
}
