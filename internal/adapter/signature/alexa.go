package signature

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

// Header names carrying Alexa signature material.
const (
	HeaderSignature        = "Signature"
	HeaderSignatureCertURL = "SignatureCertChainUrl"
)

const defaultTimestampTolerance = 150 * time.Second

// AlexaVerifier checks the signature headers and the request timestamp,
// then delegates the cryptographic check to a SignatureValidator
// capability.
type AlexaVerifier struct {
	validator ports.SignatureValidator
	tolerance time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewAlexaVerifier(validator ports.SignatureValidator, tolerance time.Duration, log *zap.Logger) ports.RequestVerifier {
	if tolerance <= 0 {
		tolerance = defaultTimestampTolerance
	}
	return &AlexaVerifier{
		validator: validator,
		tolerance: tolerance,
		now:       time.Now,
		log:       log,
	}
}

func (v *AlexaVerifier) Verify(ctx context.Context, headers map[string]string, raw []byte) error {
	certURL := headers[HeaderSignatureCertURL]
	if certURL == "" {
		return fmt.Errorf("%w: missing %s header", domain.ErrAuthentication, HeaderSignatureCertURL)
	}
	if err := checkCertURL(certURL); err != nil {
		return err
	}

	sig := headers[HeaderSignature]
	if sig == "" {
		return fmt.Errorf("%w: missing %s header", domain.ErrAuthentication, HeaderSignature)
	}

	if err := v.checkTimestamp(raw); err != nil {
		return err
	}

	if err := v.validator.Validate(ctx, sig, certURL, raw); err != nil {
		v.log.Warn("Alexa signature validation failed", zap.Error(err))
		return err
	}
	return nil
}

// checkCertURL enforces Amazon's certificate URL rules: https on the
// default port, host s3.amazonaws.com, path under /echo.api/.
func checkCertURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: malformed certificate url: %v", domain.ErrAuthentication, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("%w: certificate url scheme must be https, got %q", domain.ErrAuthentication, u.Scheme)
	}
	if !strings.EqualFold(u.Hostname(), "s3.amazonaws.com") {
		return fmt.Errorf("%w: unexpected certificate host %q", domain.ErrAuthentication, u.Hostname())
	}
	if port := u.Port(); port != "" && port != "443" {
		return fmt.Errorf("%w: unexpected certificate port %q", domain.ErrAuthentication, port)
	}
	if !strings.HasPrefix(u.Path, "/echo.api/") {
		return fmt.Errorf("%w: unexpected certificate path %q", domain.ErrAuthentication, u.Path)
	}
	return nil
}

// checkTimestamp rejects requests whose embedded timestamp falls
// outside the clock-skew tolerance, closing the replay window.
func (v *AlexaVerifier) checkTimestamp(raw []byte) error {
	var envelope struct {
		Request struct {
			Timestamp string `json:"timestamp"`
		} `json:"request"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: request timestamp: %v", domain.ErrParse, err)
	}
	if envelope.Request.Timestamp == "" {
		return fmt.Errorf("%w: request carries no timestamp", domain.ErrAuthentication)
	}

	ts, err := time.Parse(time.RFC3339, envelope.Request.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: malformed request timestamp %q", domain.ErrAuthentication, envelope.Request.Timestamp)
	}

	if drift := v.now().Sub(ts); drift > v.tolerance || drift < -v.tolerance {
		return fmt.Errorf("%w: request timestamp outside tolerance (drift %s)", domain.ErrAuthentication, drift)
	}
	return nil
}

// CertChainValidator performs the actual Alexa signature check: fetch
// the certificate chain, take the signing certificate, verify the
// SHA-1 RSA signature over the raw payload.
type CertChainValidator struct {
	fetcher ports.CertificateFetcher
	log     *zap.Logger
}

func NewCertChainValidator(fetcher ports.CertificateFetcher, log *zap.Logger) ports.SignatureValidator {
	return &CertChainValidator{fetcher: fetcher, log: log}
}

func (c *CertChainValidator) Validate(ctx context.Context, sig, certChainURL string, payload []byte) error {
	pemChain, err := c.fetcher.Fetch(ctx, certChainURL)
	if err != nil {
		return err
	}

	block, _ := pem.Decode(pemChain)
	if block == nil || block.Type != "CERTIFICATE" {
		return fmt.Errorf("%w: certificate chain contains no certificate", domain.ErrAuthentication)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("%w: parse signing certificate: %v", domain.ErrAuthentication, err)
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: signing certificate carries no RSA key", domain.ErrAuthentication)
	}

	decoded, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64: %v", domain.ErrAuthentication, err)
	}

	digest := sha1.Sum(payload)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA1, digest[:], decoded); err != nil {
		return fmt.Errorf("%w: signature mismatch", domain.ErrAuthentication)
	}
	return nil
}
