package credstore

import (
	"encoding/base32"
	"fmt"
	"regexp"
	"strings"
)

// base32Encoding is the RFC-4648-ish, lower-case, unpadded alphabet spec
// §4.1 specifies for params_b32. Stdlib's encoding/base32 covers this
// exactly via a custom alphabet and WithPadding(NoPadding); no repo in the
// retrieved pack reaches for a third-party base32 variant, so there is
// nothing to wire here instead.
var base32Encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// aliasGrammar is the decode grammar from spec §4.1:
//
//	(.+)/([a-z0-9_]+)/([-a-z0-9_]+)?/([2-7a-z]+)?$
//
// Group 1: alias_lc. Group 2: credential_type_token. Group 3: algorithm_lc
// (optional). Group 4: params_b32 (optional).
var aliasGrammar = regexp.MustCompile(`^(.+)/([a-z0-9_]+)/([-a-z0-9_]+)?/([2-7a-z]+)?$`)

// encodedAlias is the parsed/to-be-built form of an underlying alias.
type encodedAlias struct {
	aliasLC  string
	credType CredentialType
	algLC    string // "" if none
	paramsB32 string // "" if none
}

// lowerLocaleIndependent folds s the way spec §4.1 requires: locale
// independent, so it must not use strings.ToLower's default Unicode tables
// in a way that special-cases Turkish-style dotless-i, etc. ASCII-only
// aliases and algorithm names are what every credential variant in this
// store actually uses, so a byte-wise ASCII fold is both correct and
// faithfully "locale independent" (there is no locale to consult).
func lowerLocaleIndependent(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// encodeAlias builds the underlying alias string for (alias, credType,
// algorithm, params) per spec §4.1.
func encodeAlias(alias string, credType CredentialType, algorithm string, params []byte) (string, error) {
	aliasLC := lowerLocaleIndependent(alias)
	if strings.Contains(aliasLC, "/") {
		return "", fmt.Errorf("%w: alias %q must not contain '/'", ErrCannotWrite, alias)
	}
	algLC := lowerLocaleIndependent(algorithm)
	paramsB32 := ""
	if len(params) > 0 {
		paramsB32 = base32Encoding.EncodeToString(params)
	}
	return fmt.Sprintf("%s/%s/%s/%s", aliasLC, credType, algLC, paramsB32), nil
}

// decodeAlias parses an underlying alias per the spec §4.1 grammar. ok is
// false when underlying does not match the grammar at all — an
// "unrecognized entry" to be skipped, never an error.
func decodeAlias(underlying string) (ea encodedAlias, ok bool) {
	m := aliasGrammar.FindStringSubmatch(underlying)
	if m == nil {
		return encodedAlias{}, false
	}
	return encodedAlias{
		aliasLC:   m[1],
		credType:  CredentialType(m[2]),
		algLC:     m[3],
		paramsB32: m[4],
	}, true
}

// decodeParams base32-decodes the params_b32 component of a parsed alias.
// Empty input means "no parameters".
func decodeParams(paramsB32 string) ([]byte, error) {
	if paramsB32 == "" {
		return nil, nil
	}
	return base32Encoding.DecodeString(paramsB32)
}
