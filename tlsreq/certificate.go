package tlsreq

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // fingerprint, not a security boundary
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// TlsCertificate wraps a parsed X.509 certificate plus, for
// self-signed certificates minted by SelfSign, the matching private
// key.
type TlsCertificate struct {
	cert       *x509.Certificate
	privateKey *rsa.PrivateKey
}

// ParseCertificatePEM parses a single PEM-encoded certificate.
func ParseCertificatePEM(data []byte) (*TlsCertificate, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("tlsreq: no CERTIFICATE PEM block found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	return &TlsCertificate{cert: cert}, nil
}

// SelfSignCertificate mints a new RSA-backed, self-signed certificate
// for the given name components (the first is also the subject
// CommonName; every name, the first included, becomes a DNSName/SAN),
// valid for validity starting now.
func SelfSignCertificate(names []string, validity time.Duration) (*TlsCertificate, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("tlsreq: SelfSignCertificate requires at least one name")
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: names[0]},
		DNSNames:              names,
		NotBefore:             now,
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return &TlsCertificate{cert: cert, privateKey: key}, nil
}

func (c *TlsCertificate) Subject() string { return c.cert.Subject.CommonName }

func (c *TlsCertificate) ValidUntil() time.Time { return c.cert.NotAfter }

func (c *TlsCertificate) IsExpired() bool { return time.Now().After(c.cert.NotAfter) }

// VerifyDomain checks domain against the certificate's DNSNames, with
// OpenSSL-style single-level wildcard matching: "*.example.org"
// matches "foo.example.org" but not "a.foo.example.org".
func (c *TlsCertificate) VerifyDomain(domain string) bool {
	domain = strings.ToLower(domain)
	for _, name := range c.cert.DNSNames {
		if matchesDomain(strings.ToLower(name), domain) {
			return true
		}
	}
	return matchesDomain(strings.ToLower(c.cert.Subject.CommonName), domain)
}

func matchesDomain(pattern, domain string) bool {
	if pattern == domain {
		return true
	}
	if !strings.HasPrefix(pattern, "*.") {
		return false
	}
	suffix := pattern[1:] // ".example.org"
	if !strings.HasSuffix(domain, suffix) {
		return false
	}
	label := strings.TrimSuffix(domain, suffix)
	return label != "" && !strings.Contains(label, ".")
}

// Equal compares the raw DER encoding.
func (c *TlsCertificate) Equal(other *TlsCertificate) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.cert.Equal(other.cert)
}

// PEM returns the PEM-encoded certificate.
func (c *TlsCertificate) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.cert.Raw})
}

// PrivateKeyPEM returns the PEM-encoded PKCS#1 private key, or nil if
// this TlsCertificate was parsed (not self-signed) and so has no key.
func (c *TlsCertificate) PrivateKeyPEM() []byte {
	if c.privateKey == nil {
		return nil
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(c.privateKey),
	})
}

// Fingerprint is the raw SHA-1 digest of the DER form.
func (c *TlsCertificate) Fingerprint() [sha1.Size]byte {
	return sha1.Sum(c.cert.Raw)
}

// X509 exposes the parsed certificate for use building a tls.Config.
func (c *TlsCertificate) X509() *x509.Certificate { return c.cert }
