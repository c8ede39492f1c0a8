package signature

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

// HeaderSignatureCEK carries the Clova request signature.
const HeaderSignatureCEK = "SignatureCEK"

// DefaultClovaCertURL is the well-known location of the CEK signing
// key.
const DefaultClovaCertURL = "https://clova-cek-requests.line.me/.well-known/signature-public-key.pem"

// ClovaVerifier verifies CEK request signatures against a public key
// fetched once and kept for the process lifetime. The stored key is
// never refreshed; if LINE rotates it the process must restart.
type ClovaVerifier struct {
	store   ports.CertificateStore
	fetcher ports.CertificateFetcher
	certURL string

	// fetchMu serializes the lazy first fetch. A double fetch is
	// harmless (the result is idempotent) but pointless.
	fetchMu sync.Mutex
	log     *zap.Logger
}

func NewClovaVerifier(store ports.CertificateStore, fetcher ports.CertificateFetcher, certURL string, log *zap.Logger) ports.RequestVerifier {
	if certURL == "" {
		certURL = DefaultClovaCertURL
	}
	return &ClovaVerifier{
		store:   store,
		fetcher: fetcher,
		certURL: certURL,
		log:     log,
	}
}

// Verify checks the SignatureCEK header against the raw request bytes.
// The signature covers the bytes as sent, so the body must never be
// re-serialized before reaching here.
func (v *ClovaVerifier) Verify(ctx context.Context, headers map[string]string, raw []byte) error {
	sig := headers[HeaderSignatureCEK]
	if sig == "" {
		return fmt.Errorf("%w: missing %s header", domain.ErrAuthentication, HeaderSignatureCEK)
	}

	pub, err := v.publicKey(ctx)
	if err != nil {
		return err
	}

	decoded, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64: %v", domain.ErrAuthentication, err)
	}

	digest := sha256.Sum256(raw)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], decoded); err != nil {
		v.log.Warn("Clova signature mismatch")
		return fmt.Errorf("%w: signature mismatch", domain.ErrAuthentication)
	}
	return nil
}

// publicKey returns the CEK signing key, fetching and caching the PEM
// on first use. A failed fetch leaves the store empty, so the next
// request triggers a fresh attempt.
func (v *ClovaVerifier) publicKey(ctx context.Context) (*rsa.PublicKey, error) {
	pemText, ok, err := v.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: certificate store: %v", domain.ErrNetwork, err)
	}
	if !ok {
		v.fetchMu.Lock()
		defer v.fetchMu.Unlock()

		// Re-check under the lock; a concurrent first use may have
		// populated the store already.
		pemText, ok, err = v.store.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: certificate store: %v", domain.ErrNetwork, err)
		}
		if !ok {
			fetched, err := v.fetcher.Fetch(ctx, v.certURL)
			if err != nil {
				return nil, err
			}
			pemText = string(fetched)
			if err := v.store.Set(ctx, pemText); err != nil {
				return nil, fmt.Errorf("%w: certificate store: %v", domain.ErrNetwork, err)
			}
			v.log.Info("Cached Clova signing certificate", zap.String("url", v.certURL))
		}
	}
	return parsePublicKey(pemText)
}

func parsePublicKey(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, fmt.Errorf("%w: certificate is not PEM", domain.ErrAuthentication)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key: %v", domain.ErrAuthentication, err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: signing key is not RSA", domain.ErrAuthentication)
	}
	return pub, nil
}
