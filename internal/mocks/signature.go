package mocks

import "context"

// MockCertificateFetcher is a mock implementation of CertificateFetcher interface
type MockCertificateFetcher struct {
	FetchedURLs []string
	FetchFunc   func(ctx context.Context, url string) ([]byte, error)
}

func NewMockCertificateFetcher() *MockCertificateFetcher {
	return &MockCertificateFetcher{}
}

func (m *MockCertificateFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.FetchedURLs = append(m.FetchedURLs, url)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return nil, nil
}

// MockSignatureValidator is a mock implementation of SignatureValidator interface
type MockSignatureValidator struct {
	ValidatedChainURLs []string
	ValidateFunc       func(ctx context.Context, signature, certChainURL string, payload []byte) error
}

func NewMockSignatureValidator() *MockSignatureValidator {
	return &MockSignatureValidator{}
}

func (m *MockSignatureValidator) Validate(ctx context.Context, signature, certChainURL string, payload []byte) error {
	m.ValidatedChainURLs = append(m.ValidatedChainURLs, certChainURL)
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, signature, certChainURL, payload)
	}
	return nil
}

// MockCertificateStore is a mock implementation of CertificateStore interface
type MockCertificateStore struct {
	PEM     string
	Gets    int
	Sets    int
	GetFunc func(ctx context.Context) (string, bool, error)
	SetFunc func(ctx context.Context, pem string) error
}

func NewMockCertificateStore() *MockCertificateStore {
	return &MockCertificateStore{}
}

func (m *MockCertificateStore) Get(ctx context.Context) (string, bool, error) {
	m.Gets++
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return m.PEM, m.PEM != "", nil
}

func (m *MockCertificateStore) Set(ctx context.Context, pem string) error {
	m.Sets++
	if m.SetFunc != nil {
		return m.SetFunc(ctx, pem)
	}
	m.PEM = pem
	return nil
}

// MockRequestVerifier is a mock implementation of RequestVerifier interface
type MockRequestVerifier struct {
	Calls      int
	VerifyFunc func(ctx context.Context, headers map[string]string, raw []byte) error
}

func NewMockRequestVerifier() *MockRequestVerifier {
	return &MockRequestVerifier{}
}

func (m *MockRequestVerifier) Verify(ctx context.Context, headers map[string]string, raw []byte) error {
	m.Calls++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, headers, raw)
	}
	return nil
}
