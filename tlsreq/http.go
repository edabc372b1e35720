package tlsreq

import (
	"bufio"
	"bytes"

	"github.com/valyala/fasthttp"
)

// BuildHTTPRequest renders a minimal HTTP/1.1 request for use as a
// TlsRequest's requestContent, via fasthttp's request writer rather
// than hand-assembling the header/CRLF framing.
func BuildHTTPRequest(method, host, path string, body []byte) []byte {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	req.Header.SetHost(host)
	req.Header.Set("Connection", "close")
	if len(body) > 0 {
		req.SetBody(body)
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := req.Write(w); err != nil {
		return nil
	}
	if err := w.Flush(); err != nil {
		return nil
	}
	return buf.Bytes()
}
