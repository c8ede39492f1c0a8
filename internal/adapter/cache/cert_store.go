package cache

import (
	"context"

	"github.com/seu-repo/vui-gateway/internal/ports"
)

const certKey = "clova:signature-cert"

// CertificateStore keeps the Clova signing certificate in a ports.Cache
// with no expiry: populate on first use, keep for the process lifetime.
// If the upstream key rotates the stale copy stays until restart; that
// staleness risk is accepted.
type CertificateStore struct {
	cache ports.Cache
}

func NewCertificateStore(cache ports.Cache) ports.CertificateStore {
	return &CertificateStore{cache: cache}
}

func (s *CertificateStore) Get(ctx context.Context) (string, bool, error) {
	pem, err := s.cache.Get(ctx, certKey)
	if err != nil || pem == "" {
		// A miss is an expected state, not a failure.
		return "", false, nil
	}
	return pem, true, nil
}

func (s *CertificateStore) Set(ctx context.Context, pem string) error {
	return s.cache.Set(ctx, certKey, pem, 0)
}
