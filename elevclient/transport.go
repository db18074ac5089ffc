package elevclient

import (
	"crypto/tls"
	"net/http"
	"time"

	quic "github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"

	"elevsim/common"
)

const (
	QUIC_KEEPALIVE      = 2 * time.Second
	QUIC_HANDSHAKE_IDLE = 3 * time.Second
	QUIC_MAX_IDLE       = 6 * time.Second
)

// NewClientTLSConfig returns the client TLS settings. The simulator is usually
// served on localhost with a development certificate, hence insecure.
func NewClientTLSConfig(insecure bool, nextProtos ...string) *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: insecure,
		NextProtos:         nextProtos,
		MinVersion:         tls.VersionTLS12,
	}
}

func NewQUICConfig() *quic.Config {
	return &quic.Config{
		KeepAlivePeriod:      QUIC_KEEPALIVE,
		HandshakeIdleTimeout: QUIC_HANDSHAKE_IDLE,
		MaxIdleTimeout:       QUIC_MAX_IDLE,
	}
}

// NewHTTPClient builds the HTTP client for cfg.Transport. The returned close
// function releases pooled connections (and the QUIC transport for http3).
func NewHTTPClient(cfg common.Config) (*http.Client, func() error) {
	if cfg.Transport == common.TRANSPORT_HTTP3 {
		tlsConf := NewClientTLSConfig(cfg.InsecureTLS, http3.NextProtoH3)
		tlsConf.MinVersion = tls.VersionTLS13
		tr := &http3.Transport{
			TLSClientConfig: tlsConf,
			QUICConfig:      NewQUICConfig(),
		}
		return &http.Client{Transport: tr}, tr.Close
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = NewClientTLSConfig(cfg.InsecureTLS)
	return &http.Client{Transport: tr}, func() error {
		tr.CloseIdleConnections()
		return nil
	}
}
