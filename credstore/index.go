package credstore

// index is the three-level in-memory map spec §3/§4.4 describes:
// alias -> type -> algorithm -> (parameters -> underlying alias). It owns
// every entity reachable from it; back-pointers are relational only and are
// not modeled at all here, since cascade-delete is driven top-down by the
// Store façade (spec §9 "Three-level index" note).
type index struct {
	top map[string]*topEntry
}

func newIndex() *index {
	return &index{top: make(map[string]*topEntry)}
}

// topEntry exclusively owns a mapping credentialType -> midEntry (spec §3).
type topEntry struct {
	mid map[CredentialType]*midEntry
	// order preserves first-insertion order across credential types so
	// loose-type matching (spec §4.4 step 2) is deterministic: "first
	// insertion wins" on ties.
	order []CredentialType
}

// midEntry exclusively owns a mapping algorithm -> bottomEntry, plus at
// most one algorithm-less slot (spec §3).
type midEntry struct {
	byAlg       map[string]*bottomEntry
	noAlgorithm *bottomEntry
}

// bottomEntry exclusively owns a mapping ParamKey -> underlying alias, plus
// at most one params-less slot (spec §3).
type bottomEntry struct {
	byParam  map[[32]byte]paramSlot
	noParams string // "" means absent; "" is never a valid underlying alias
}

type paramSlot struct {
	key   ParamKey
	alias string
}

func (b *bottomEntry) isEmpty() bool {
	return len(b.byParam) == 0 && b.noParams == ""
}

func (m *midEntry) isEmpty() bool {
	return len(m.byAlg) == 0 && m.noAlgorithm == nil
}

// put records that (alias, credType, algorithm, params) maps to underlying.
// If the same tuple already had a different underlying alias, put returns
// it so the caller can delete the orphaned engine entry (spec §4.4 store
// semantics: atomic replace, never orphan).
func (ix *index) put(aliasLC string, credType CredentialType, algorithm string, params []byte, underlying string) (previous string, hadPrevious bool) {
	t, ok := ix.top[aliasLC]
	if !ok {
		t = &topEntry{mid: make(map[CredentialType]*midEntry)}
		ix.top[aliasLC] = t
	}
	m, ok := t.mid[credType]
	if !ok {
		m = &midEntry{byAlg: make(map[string]*bottomEntry)}
		t.mid[credType] = m
		t.order = append(t.order, credType)
	}

	var b *bottomEntry
	if algorithm == "" {
		if m.noAlgorithm == nil {
			m.noAlgorithm = &bottomEntry{byParam: make(map[[32]byte]paramSlot)}
		}
		b = m.noAlgorithm
	} else {
		b, ok = m.byAlg[algorithm]
		if !ok {
			b = &bottomEntry{byParam: make(map[[32]byte]paramSlot)}
			m.byAlg[algorithm] = b
		}
	}

	if len(params) == 0 {
		previous, hadPrevious = b.noParams, b.noParams != ""
		b.noParams = underlying
		return previous, hadPrevious
	}

	pk := NewParamKey(params)
	mk := pk.mapKey()
	if slot, ok := b.byParam[mk]; ok && slot.key.Equal(pk) {
		previous, hadPrevious = slot.alias, true
	}
	b.byParam[mk] = paramSlot{key: pk, alias: underlying}
	return previous, hadPrevious
}

// lookupResult carries, alongside the underlying alias, the concrete
// algorithm and parameters that were actually matched — which may differ
// from the caller's (possibly empty) query when an "arbitrary" selection
// happened at the algorithm or parameter level (spec §4.4 steps 3-4).
type lookupResult struct {
	underlying string
	matchedType CredentialType
	algorithm   string
	params      []byte
}

// lookup implements spec §4.4's retrieve algorithm. ok is false on any
// missing link.
func (ix *index) lookup(aliasLC string, credType CredentialType, algorithm string, params []byte) (lookupResult, bool) {
	t, exists := ix.top[aliasLC]
	if !exists {
		return lookupResult{}, false
	}

	m, exists := t.mid[credType]
	matchedType := credType
	if !exists {
		// Loose match: first insertion-order type that is a subtype of
		// credType.
		for _, candidate := range t.order {
			if isSubtype(candidate, credType) {
				m = t.mid[candidate]
				matchedType = candidate
				exists = true
				break
			}
		}
		if !exists {
			return lookupResult{}, false
		}
	}

	b, matchedAlg, exists := bottomFor(m, algorithm)
	if !exists {
		return lookupResult{}, false
	}

	underlying, matchedParams, ok := paramFor(b, params)
	if !ok {
		return lookupResult{}, false
	}
	return lookupResult{underlying: underlying, matchedType: matchedType, algorithm: matchedAlg, params: matchedParams}, true
}

// bottomFor implements spec §4.4 step 3, also reporting which algorithm key
// was actually selected.
func bottomFor(m *midEntry, algorithm string) (*bottomEntry, string, bool) {
	if algorithm != "" {
		b, ok := m.byAlg[algorithm]
		return b, algorithm, ok
	}
	// No algorithm specified: take any arbitrary bottom entry, else the
	// noAlgorithm slot.
	for alg, b := range m.byAlg {
		return b, alg, true
	}
	if m.noAlgorithm != nil {
		return m.noAlgorithm, "", true
	}
	return nil, "", false
}

// paramFor implements spec §4.4 step 4, also reporting which parameter
// bytes were actually selected.
func paramFor(b *bottomEntry, params []byte) (underlying string, matchedParams []byte, ok bool) {
	if len(params) != 0 {
		pk := NewParamKey(params)
		slot, found := b.byParam[pk.mapKey()]
		if found && slot.key.Equal(pk) {
			return slot.alias, slot.key.DER(), true
		}
		return "", nil, false
	}
	for _, slot := range b.byParam {
		return slot.alias, slot.key.DER(), true
	}
	if b.noParams != "" {
		return b.noParams, nil, true
	}
	return "", nil, false
}

// removeMatch describes one underlying alias removed by the remove
// algorithm (spec §4.4), so the caller can delete the matching engine
// entries.
type removeMatch struct {
	underlying string
}

// remove implements spec §4.4's remove algorithm: it matches every entry
// consistent with the supplied, possibly-partial tuple, prunes empty
// mid/bottom entries, and evicts the top entry only once it, too, is left
// empty. Spec §9 flags the source's unconditional top-entry eviction as a
// bug (it drops still-referenced sibling credential types) and leaves
// fixing it as an explicit choice; this is fixed rather than preserved — see
// DESIGN.md and testable property 5 / scenario S2, both of which require
// siblings to survive a narrower remove.
func (ix *index) remove(aliasLC string, credType CredentialType, algorithm string, params []byte) []removeMatch {
	t, exists := ix.top[aliasLC]
	if !exists {
		return nil
	}

	m, exists := t.mid[credType]
	if !exists {
		return nil
	}

	matches := removeFromMid(m, algorithm, params)
	if m.isEmpty() {
		delete(t.mid, credType)
		for i, mt := range t.order {
			if mt == credType {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	if len(t.mid) == 0 {
		delete(ix.top, aliasLC)
	}
	return matches
}

func removeFromMid(m *midEntry, algorithm string, params []byte) []removeMatch {
	var matches []removeMatch
	if algorithm == "" {
		for alg, b := range m.byAlg {
			matches = append(matches, removeFromBottom(b, params)...)
			if b.isEmpty() {
				delete(m.byAlg, alg)
			}
		}
		if m.noAlgorithm != nil {
			matches = append(matches, removeFromBottom(m.noAlgorithm, params)...)
			if m.noAlgorithm.isEmpty() {
				m.noAlgorithm = nil
			}
		}
		return matches
	}

	if b, ok := m.byAlg[algorithm]; ok {
		matches = append(matches, removeFromBottom(b, params)...)
		if b.isEmpty() {
			delete(m.byAlg, algorithm)
		}
	}
	return matches
}

func removeFromBottom(b *bottomEntry, params []byte) []removeMatch {
	var matches []removeMatch
	if len(params) == 0 {
		for mk, slot := range b.byParam {
			matches = append(matches, removeMatch{underlying: slot.alias})
			delete(b.byParam, mk)
		}
		if b.noParams != "" {
			matches = append(matches, removeMatch{underlying: b.noParams})
			b.noParams = ""
		}
		return matches
	}

	pk := NewParamKey(params)
	mk := pk.mapKey()
	if slot, ok := b.byParam[mk]; ok && slot.key.Equal(pk) {
		matches = append(matches, removeMatch{underlying: slot.alias})
		delete(b.byParam, mk)
	}
	return matches
}

// aliases returns every alias currently indexed, lower-cased.
func (ix *index) aliases() []string {
	out := make([]string, 0, len(ix.top))
	for a := range ix.top {
		out = append(out, a)
	}
	return out
}

// allUnderlying returns every underlying alias reachable from the index, in
// no particular order. Nothing in the package calls it at present.
func (ix *index) allUnderlying() []string {
	var out []string
	for _, t := range ix.top {
		for _, m := range t.mid {
			for _, b := range m.byAlg {
				out = append(out, underlyingOf(b)...)
			}
			if m.noAlgorithm != nil {
				out = append(out, underlyingOf(m.noAlgorithm)...)
			}
		}
	}
	return out
}

func underlyingOf(b *bottomEntry) []string {
	var out []string
	for _, slot := range b.byParam {
		out = append(out, slot.alias)
	}
	if b.noParams != "" {
		out = append(out, b.noParams)
	}
	return out
}
