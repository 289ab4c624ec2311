package crypto

import "fmt"

// DecryptKind classifies a [DecryptError].
type DecryptKind string

const (
	KindBadPassword   DecryptKind = "bad_password"
	KindBadKey        DecryptKind = "bad_key"
	KindBadCiphertext DecryptKind = "bad_ciphertext"
)

// DecryptError is returned by [Decryptor.Decrypt]. Match a kind with
// errors.Is against ErrBadPassword, ErrBadKey or ErrBadCiphertext.
type DecryptError struct {
	Kind DecryptKind
	Err  error
}

var (
	ErrBadPassword   = &DecryptError{Kind: KindBadPassword}
	ErrBadKey        = &DecryptError{Kind: KindBadKey}
	ErrBadCiphertext = &DecryptError{Kind: KindBadCiphertext}
)

// errUnwrapKey is the single error for every private key unwrap failure, so
// a wrong password cannot be told apart from a corrupted key.
var errUnwrapKey = &DecryptError{Kind: KindBadKey, Err: fmt.Errorf("private key could not be unlocked")}

func (e *DecryptError) Error() string {
	if e.Err == nil {
		return "decrypt: " + string(e.Kind)
	}
	return fmt.Sprintf("decrypt: %s: %v", e.Kind, e.Err)
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DecryptError of the same kind.
func (e *DecryptError) Is(target error) bool {
	t, ok := target.(*DecryptError)
	return ok && t.Kind == e.Kind
}
