package ucsc

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

// xmlPath is the endpoint path the UCS Central XML API listens on.
const xmlPath = "/xmlIM"

// Error codes the client has to recognize.  The endpoint reports many more;
// anything else is surfaced verbatim as an *APIError.
const (
	errCodeNotFound    = 103 // "cannot find dn"
	errCodeStaleCookie = 552 // session cookie expired or invalidated
)

// APIError is an error reported by the UCS Central endpoint itself, via the
// errorCode/errorDescr attributes on a response element.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("UCS error %d: %s", e.Code, e.Description)
}

// HTTPError is a non-200 HTTP response from the endpoint (as opposed to an
// API-level error, which comes back as a 200 with error attributes).
type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

// result is the attribute set common to every XML API response element.
type result struct {
	Cookie     string `xml:"cookie,attr"`
	Response   string `xml:"response,attr"`
	ErrorCode  string `xml:"errorCode,attr"`
	ErrorDescr string `xml:"errorDescr,attr"`
}

func (r result) apiErr() error {
	if r.ErrorCode == "" || r.ErrorCode == "0" {
		return nil
	}
	code, err := strconv.Atoi(r.ErrorCode)
	if err != nil {
		return fmt.Errorf("malformed errorCode %q (errorDescr: %q)", r.ErrorCode, r.ErrorDescr)
	}
	return &APIError{Code: code, Description: r.ErrorDescr}
}

// response is implemented by every XML API response struct, via an embedded
// result.
type response interface {
	apiErr() error
}

// outConfig is the <outConfig> (or <outConfigs> pair body) element: a bag of
// MO elements of any class.
type outConfig struct {
	MOs []*mo.MO `xml:",any"`
}

// aaaLogin
type aaaLoginReq struct {
	XMLName    xml.Name `xml:"aaaLogin"`
	InName     string   `xml:"inName,attr"`
	InPassword string   `xml:"inPassword,attr"`
}
type aaaLoginResp struct {
	XMLName xml.Name `xml:"aaaLogin"`
	result
	OutCookie        string `xml:"outCookie,attr"`
	OutRefreshPeriod int    `xml:"outRefreshPeriod,attr"`
	OutVersion       string `xml:"outVersion,attr"`
}

// aaaRefresh
type aaaRefreshReq struct {
	XMLName    xml.Name `xml:"aaaRefresh"`
	InName     string   `xml:"inName,attr"`
	InPassword string   `xml:"inPassword,attr"`
	InCookie   string   `xml:"inCookie,attr"`
}
type aaaRefreshResp struct {
	XMLName xml.Name `xml:"aaaRefresh"`
	result
	OutCookie        string `xml:"outCookie,attr"`
	OutRefreshPeriod int    `xml:"outRefreshPeriod,attr"`
}

// aaaLogout
type aaaLogoutReq struct {
	XMLName  xml.Name `xml:"aaaLogout"`
	InCookie string   `xml:"inCookie,attr"`
}
type aaaLogoutResp struct {
	XMLName xml.Name `xml:"aaaLogout"`
	result
	OutStatus string `xml:"outStatus,attr"`
}

// configResolveDn
type configResolveDnReq struct {
	XMLName        xml.Name `xml:"configResolveDn"`
	Cookie         string   `xml:"cookie,attr"`
	DN             string   `xml:"dn,attr"`
	InHierarchical bool     `xml:"inHierarchical,attr"`
}
type configResolveDnResp struct {
	XMLName xml.Name `xml:"configResolveDn"`
	result
	OutConfig outConfig `xml:"outConfig"`
}

// configResolveClass
type configResolveClassReq struct {
	XMLName        xml.Name `xml:"configResolveClass"`
	Cookie         string   `xml:"cookie,attr"`
	ClassID        string   `xml:"classId,attr"`
	InHierarchical bool     `xml:"inHierarchical,attr"`
}
type configResolveClassResp struct {
	XMLName xml.Name `xml:"configResolveClass"`
	result
	OutConfigs outConfig `xml:"outConfigs"`
}

// configResolveChildren
type configResolveChildrenReq struct {
	XMLName        xml.Name `xml:"configResolveChildren"`
	Cookie         string   `xml:"cookie,attr"`
	ClassID        string   `xml:"classId,attr,omitempty"`
	InDN           string   `xml:"inDn,attr"`
	InHierarchical bool     `xml:"inHierarchical,attr"`
}
type configResolveChildrenResp struct {
	XMLName xml.Name `xml:"configResolveChildren"`
	result
	OutConfigs outConfig `xml:"outConfigs"`
}

// configConfMos
type configConfMosReq struct {
	XMLName        xml.Name `xml:"configConfMos"`
	Cookie         string   `xml:"cookie,attr"`
	InHierarchical bool     `xml:"inHierarchical,attr"`
	InConfigs      inConfigs
}
type inConfigs struct {
	XMLName xml.Name `xml:"inConfigs"`
	Pairs   []inPair
}
type inPair struct {
	XMLName xml.Name `xml:"pair"`
	Key     string   `xml:"key,attr"`
	MO      *mo.MO
}
type configConfMosResp struct {
	XMLName xml.Name `xml:"configConfMos"`
	result
	OutConfigs struct {
		Pairs []outPair `xml:"pair"`
	} `xml:"outConfigs"`
}
type outPair struct {
	Key string   `xml:"key,attr"`
	MOs []*mo.MO `xml:",any"`
}

// post sends a single XML API request and decodes the response in to resp.
// API-level errors (errorCode attributes) are returned as *APIError.
func (h *Handle) post(ctx context.Context, method string, req interface{}, resp response) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%s %s => %w", method, h.endpoint, err)
		}
	}()

	body, err := xml.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.endpoint+xmlPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "text/xml")
	httpReq.Header.Set("User-Agent", h.userAgent)

	// Deliberately not logging the request body; aaaLogin carries the
	// password in an attribute.
	dlog.Debugf(ctx, "ucsc: %s", method)

	start := time.Now()
	httpResp, err := h.httpClient.Do(httpReq)
	if err != nil {
		h.observe(method, "transport", time.Since(start))
		return err
	}
	content, err := io.ReadAll(httpResp.Body)
	if err != nil {
		_ = httpResp.Body.Close()
		return err
	}
	if err := httpResp.Body.Close(); err != nil {
		return err
	}
	if httpResp.StatusCode != http.StatusOK {
		h.observe(method, strconv.Itoa(httpResp.StatusCode), time.Since(start))
		return &HTTPError{Status: httpResp.Status, StatusCode: httpResp.StatusCode}
	}

	if err := xml.Unmarshal(content, resp); err != nil {
		h.observe(method, "decode", time.Since(start))
		return err
	}
	if err := resp.apiErr(); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			h.observe(method, strconv.Itoa(apiErr.Code), time.Since(start))
		}
		return err
	}
	h.observe(method, "ok", time.Since(start))
	return nil
}
