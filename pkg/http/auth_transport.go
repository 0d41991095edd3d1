package http

import "net/http"

type apiKeyTransport struct {
	header    string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.key != "" {
		reqCopy.Header.Set(t.header, t.key)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKey sets the given header to key on every outbound request.
// Azure services expect the key in the "api-key" header.
func WithAPIKey(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			header:    header,
			key:       key,
			transport: rt,
		}
	})
}
