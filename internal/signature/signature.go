// Package signature derives stable identifiers from heterogeneous,
// partially-missing post fields. Signatures are the dedup cache keys:
// a post ID when the source exposes one, otherwise a canonical URL,
// otherwise a content hash over normalized text + author.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Namespace prefixes distinguish the three signature forms so a post ID can
// never collide with a URL that happens to contain the same digits.
const (
	PrefixPostID  = "pid:"
	PrefixURL     = "url:"
	PrefixContent = "sha:"
)

// NormalizeText lowercases, NFKC-folds and collapses whitespace runs to
// single spaces. Two texts differing only by case, compatibility forms or
// whitespace normalize identically.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// ContentSignature hashes normalized text and author into a fixed-length
// digest. The author is part of the hash so two empty-text posts from
// different authors never collide.
func ContentSignature(text, author string) string {
	sum := sha256.Sum256([]byte(NormalizeText(text) + "|" + NormalizeText(author)))
	return PrefixContent + hex.EncodeToString(sum[:])
}

// ContentPseudoID returns a short content-derived identifier for posts with
// no recognizable permalink. It is a truncation of ContentSignature, kept
// separate so callers can tell it apart from a real post ID.
func ContentPseudoID(text, author string) string {
	sig := ContentSignature(text, author)
	return strings.TrimPrefix(sig, PrefixContent)[:16]
}

// URLSignature canonicalizes a permalink: scheme, query string and fragment
// are dropped (tracking parameters vary per session), host is lowercased and
// a trailing slash is trimmed. An unparseable URL falls back to the trimmed
// raw string so it still yields a stable key.
func URLSignature(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return PrefixURL + strings.ToLower(raw)
	}
	path := strings.TrimSuffix(u.Path, "/")
	return PrefixURL + strings.ToLower(u.Host) + path
}

// PostIDSignature namespaces a source-assigned post identifier.
func PostIDSignature(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return PrefixPostID + id
}

// Composite selects the most specific available signature, in priority order
// post ID > URL > content hash. It returns "" only when every input is
// empty; callers must treat an empty signature as "cannot deduplicate,
// always process".
func Composite(postID, rawURL, text, author string) string {
	if sig := PostIDSignature(postID); sig != "" {
		return sig
	}
	if sig := URLSignature(rawURL); sig != "" {
		return sig
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(author) == "" {
		return ""
	}
	return ContentSignature(text, author)
}
