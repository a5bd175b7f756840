package shopify

import "strings"

const (
	productGIDPrefix = "gid://shopify/Product/"
	variantGIDPrefix = "gid://shopify/ProductVariant/"
)

// BareID strips the platform's gid prefix. The rest of the system only
// ever sees bare ids; this is the single place the transform happens.
func BareID(gid string) string {
	switch {
	case strings.HasPrefix(gid, productGIDPrefix):
		return strings.TrimPrefix(gid, productGIDPrefix)
	case strings.HasPrefix(gid, variantGIDPrefix):
		return strings.TrimPrefix(gid, variantGIDPrefix)
	}

	// any other gid://shopify/<Type>/<id> form
	if strings.HasPrefix(gid, "gid://") {
		if i := strings.LastIndex(gid, "/"); i >= 0 && i+1 < len(gid) {
			return gid[i+1:]
		}
	}

	return gid
}

// ProductGID restores the prefixed form expected by the platform's
// GraphQL node lookups. Already-prefixed ids pass through untouched.
func ProductGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}

	return productGIDPrefix + id
}
