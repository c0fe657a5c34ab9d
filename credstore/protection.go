package credstore

import "fmt"

// ProtectionParameter is the caller-supplied secret material guarding either
// the backing file or a single entry (spec §6). The only concrete shape
// this store understands is ClearPassword; nil means "no password" when
// configuring Initialize, and "use the store's own" when passed as a
// per-operation override to Store/Retrieve.
type ProtectionParameter interface {
	isProtectionParameter()
}

// ClearPassword is a credential source producing a clear password — the
// only accepted ProtectionParameter shape (spec §4.5/§6).
type ClearPassword struct {
	Password string
}

func (ClearPassword) isProtectionParameter() {}

// protectionAdapterBytes is the ProtectionAdapter component (spec §2,
// §4.5): it translates a ProtectionParameter into the byte-slice password
// form the underlying container engine expects. Any shape other than
// ClearPassword (or nil) is rejected — the type switch's default branch is
// what actually enforces the "only accepted shape" rule at runtime, since
// ProtectionParameter is an interface a caller could otherwise satisfy with
// anything.
func protectionAdapterBytes(p ProtectionParameter) ([]byte, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case ClearPassword:
		return []byte(v.Password), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidProtectionParameter, p)
	}
}
