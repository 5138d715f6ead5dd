package script

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SignatureCache remembers signatures that already verified against a digest and public key.
	SignatureCache interface {
		Exists(digest, signature, publicKey []byte) bool
		Add(digest, signature, publicKey []byte)
	}
)
