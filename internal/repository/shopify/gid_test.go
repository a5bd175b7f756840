package shopify

import "testing"

func TestBareID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Product", "gid://shopify/Product/123", "123"},
		{"Variant", "gid://shopify/ProductVariant/456", "456"},
		{"OtherType", "gid://shopify/Collection/789", "789"},
		{"AlreadyBare", "123", "123"},
		{"Empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BareID(tc.in); got != tc.want {
				t.Errorf("BareID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestProductGID(t *testing.T) {
	if got := ProductGID("123"); got != "gid://shopify/Product/123" {
		t.Errorf("got %q", got)
	}

	prefixed := "gid://shopify/Product/123"
	if got := ProductGID(prefixed); got != prefixed {
		t.Errorf("already-prefixed id mangled: %q", got)
	}
}

func TestBareIDRoundTrip(t *testing.T) {
	if got := BareID(ProductGID("42")); got != "42" {
		t.Errorf("round trip: got %q, want 42", got)
	}
}
